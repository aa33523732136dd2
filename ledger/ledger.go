// Package ledger builds and validates a double-entry ledger from the parsed
// operation stream.
//
// Building is a pure flattening transform: every operation becomes one or
// more materialized records carrying a globally unique id, and movements from
// one transaction statement share a parent id. No validation happens during
// construction; the three invariant checks run afterwards over the finished,
// immutable ledger.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/granadev/grana/ast"
)

// Transaction is one materialized movement: a single leg of a source
// transaction statement, labeled with its own id and the id reserved for
// its statement group.
type Transaction struct {
	ID          uint64
	Date        ast.Date
	Description string
	Kind        ast.MovementKind
	Account     ast.Account
	Amount      ast.Amount
	Span        ast.Span
	ParentID    *uint64
}

// SignedAmount applies the account's double-entry sign convention to the
// written amount.
func (t *Transaction) SignedAmount() decimal.Decimal {
	factor := t.Account.SignedFactor(t.Kind)
	if factor < 0 {
		return t.Amount.Value.Neg()
	}
	return t.Amount.Value
}

// BalanceVerification asserts that, as of Date, the account's cumulative
// signed balance equals Amount.
type BalanceVerification struct {
	ID      uint64
	Account ast.Account
	Date    ast.Date
	Amount  ast.Amount
	Span    ast.Span
}

// AccountOpening declares an account's existence, start date and home
// currency. Openings are not balance-checked by the validators but are
// available to reporting.
type AccountOpening struct {
	ID       uint64
	Account  ast.Account
	Date     ast.Date
	Currency string
	Span     ast.Span
}

// Ledger is the materialized, read-only result of folding an operation
// stream. Once built it is never mutated; validation and reporting only
// read from it.
type Ledger struct {
	Transactions  []*Transaction
	Verifications []*BalanceVerification
	Openings      []*AccountOpening
}

// Build folds operations into a Ledger. Ids are assigned from a single
// monotonically increasing counter across all operation kinds in source
// order and never reused. A transaction statement first reserves one id as
// the group's parent, then each movement consumes its own id.
//
// Build never fails: syntactically valid input always constructs.
func Build(ops []ast.Spanned[ast.Operation]) *Ledger {
	l := &Ledger{}

	var id uint64 = 1
	next := func() uint64 {
		n := id
		id++
		return n
	}

	for _, op := range ops {
		switch v := op.Value.(type) {
		case *ast.Open:
			l.Openings = append(l.Openings, &AccountOpening{
				ID:       next(),
				Account:  v.Account,
				Date:     v.Date,
				Currency: v.Currency,
				Span:     op.Span,
			})

		case *ast.Balance:
			l.Verifications = append(l.Verifications, &BalanceVerification{
				ID:      next(),
				Account: v.Account,
				Date:    v.Date,
				Amount:  v.Amount,
				Span:    op.Span,
			})

		case *ast.Transaction:
			parent := next()
			for _, m := range v.Movements {
				l.Transactions = append(l.Transactions, &Transaction{
					ID:          next(),
					Date:        v.Date,
					Description: v.Description,
					Kind:        m.Kind,
					Account:     m.Account,
					Amount:      m.Amount,
					Span:        op.Span,
					ParentID:    &parent,
				})
			}
		}
	}

	return l
}
