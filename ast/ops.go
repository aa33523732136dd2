package ast

// Operation is one parsed ledger statement. The parser emits a flat
// Spanned[Operation] sequence in source order; nothing downstream mutates it.
type Operation interface {
	date() Date

	// Statement returns the statement keyword this operation was parsed from.
	Statement() string
}

// Open declares an account's existence, start date and home currency.
//
// Example:
//
//	2020-01-01 open assets:cash_account BRL
type Open struct {
	Date     Date
	Account  Account
	Currency string
}

var _ Operation = &Open{}

func (o *Open) date() Date        { return o.Date }
func (o *Open) Statement() string { return "open" }

// Balance asserts that an account's cumulative signed balance equals Amount
// as of Date, transactions on that date included. The asserted amount may
// be negative.
//
// Example:
//
//	2020-01-02 balance assets:cash_account 100 BRL
type Balance struct {
	Date    Date
	Account Account
	Amount  Amount
}

var _ Operation = &Balance{}

func (b *Balance) date() Date        { return b.Date }
func (b *Balance) Statement() string { return "balance" }

// Movement is one leg of a transaction statement as written in source,
// not yet signed by any account convention.
type Movement struct {
	Kind    MovementKind
	Amount  Amount
	Account Account
}

// Transaction is a dated, described group of one or more movements.
//
// Example:
//
//	2020-01-02 transaction "Buy some books"
//	  < 100 BRL expenses:stuff
//	  > 100 BRL assets:cash_account
type Transaction struct {
	Date        Date
	Description string
	Movements   []Movement
}

var _ Operation = &Transaction{}

func (t *Transaction) date() Date        { return t.Date }
func (t *Transaction) Statement() string { return "transaction" }
