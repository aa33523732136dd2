package ledger

import (
	"golang.org/x/exp/slices"

	"github.com/shopspring/decimal"

	"github.com/granadev/grana/ast"
)

// AccountTotal aggregates one account's movements: the gross (unsigned) sum
// and the signed sum under double-entry conventions.
type AccountTotal struct {
	Account ast.Account
	Gross   decimal.Decimal
	Signed  decimal.Decimal
}

// KindTotal aggregates all accounts of one kind.
type KindTotal struct {
	Kind   ast.AccountKind
	Gross  decimal.Decimal
	Signed decimal.Decimal
}

// Totals summarizes the ledger per account and per account kind, each sorted
// by account order. It is a pure read over the built ledger; openings and
// verifications do not contribute.
type Totals struct {
	ByAccount []AccountTotal
	ByKind    []KindTotal
}

// Totals computes the balance summary used by reporting.
func (l *Ledger) Totals() Totals {
	byAccount := make(map[string]*AccountTotal)
	byKind := make(map[ast.AccountKind]*KindTotal)

	for _, txn := range l.Transactions {
		key := txn.Account.String()

		at, ok := byAccount[key]
		if !ok {
			at = &AccountTotal{Account: txn.Account}
			byAccount[key] = at
		}
		at.Gross = at.Gross.Add(txn.Amount.Value)
		at.Signed = at.Signed.Add(txn.SignedAmount())

		kt, ok := byKind[txn.Account.Kind]
		if !ok {
			kt = &KindTotal{Kind: txn.Account.Kind}
			byKind[txn.Account.Kind] = kt
		}
		kt.Gross = kt.Gross.Add(txn.Amount.Value)
		kt.Signed = kt.Signed.Add(txn.SignedAmount())
	}

	totals := Totals{
		ByAccount: make([]AccountTotal, 0, len(byAccount)),
		ByKind:    make([]KindTotal, 0, len(byKind)),
	}
	for _, at := range byAccount {
		totals.ByAccount = append(totals.ByAccount, *at)
	}
	for _, kt := range byKind {
		totals.ByKind = append(totals.ByKind, *kt)
	}

	slices.SortFunc(totals.ByAccount, func(a, b AccountTotal) int {
		return a.Account.Compare(b.Account)
	})
	slices.SortFunc(totals.ByKind, func(a, b KindTotal) int {
		return int(a.Kind) - int(b.Kind)
	})

	return totals
}
