package ast

import (
	"fmt"
	"strings"
)

// AccountKind is one of the five double-entry account categories.
type AccountKind uint8

const (
	Assets AccountKind = iota
	Liabilities
	Income
	Equity
	Expenses
)

// String returns the kind as written in ledger source (lowercase).
func (k AccountKind) String() string {
	switch k {
	case Assets:
		return "assets"
	case Liabilities:
		return "liabilities"
	case Income:
		return "income"
	case Equity:
		return "equity"
	case Expenses:
		return "expenses"
	default:
		return "unknown"
	}
}

// AccountKindFromIdent maps a lowercase identifier to its account kind.
func AccountKindFromIdent(ident string) (AccountKind, bool) {
	switch ident {
	case "assets":
		return Assets, true
	case "liabilities":
		return Liabilities, true
	case "income":
		return Income, true
	case "equity":
		return Equity, true
	case "expenses":
		return Expenses, true
	default:
		return 0, false
	}
}

// MaxAccountSegments caps how many identifier segments an account may carry
// beyond its kind.
const MaxAccountSegments = 3

// Account identifies a ledger account: a kind plus 1 to 3 identifier
// segments. Accounts are immutable once parsed and compare structurally,
// which makes their printable path usable as a map key.
type Account struct {
	Kind     AccountKind
	Segments []string
}

// NewAccount constructs an account, enforcing the segment cap.
func NewAccount(kind AccountKind, segments ...string) (Account, error) {
	if len(segments) == 0 {
		return Account{}, fmt.Errorf("account %s has no segments", kind)
	}
	if len(segments) > MaxAccountSegments {
		return Account{}, fmt.Errorf("accounts may contain at most %d segments beyond their kind", MaxAccountSegments)
	}
	return Account{Kind: kind, Segments: segments}, nil
}

// String returns the full account path as written in source,
// e.g. "assets:bank:checking".
func (a Account) String() string {
	return a.Kind.String() + ":" + strings.Join(a.Segments, ":")
}

// Equal reports structural equality of kind and segments.
func (a Account) Equal(other Account) bool {
	return a.Compare(other) == 0
}

// Compare orders accounts by kind, then segments lexicographically.
func (a Account) Compare(other Account) int {
	if a.Kind != other.Kind {
		if a.Kind < other.Kind {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Segments) && i < len(other.Segments); i++ {
		if c := strings.Compare(a.Segments[i], other.Segments[i]); c != 0 {
			return c
		}
	}
	return len(a.Segments) - len(other.Segments)
}

// MovementKind is the direction of one transaction leg as written in source:
// '<' is a debit, '>' is a credit.
type MovementKind uint8

const (
	Credit MovementKind = iota
	Debit
)

func (k MovementKind) String() string {
	if k == Credit {
		return "credit"
	}
	return "debit"
}

// SignedFactor returns the +1/-1 factor applied to a movement of the given
// kind posted against this account. Balances are kept debit-normal for every
// account kind: debits count positive, credits negative. The table is fixed
// and never mutated; only a uniform table keeps cross-kind transactions
// summing to zero.
func (a Account) SignedFactor(kind MovementKind) int64 {
	if kind == Debit {
		return 1
	}
	return -1
}
