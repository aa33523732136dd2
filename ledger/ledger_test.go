package ledger

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/granadev/grana/ast"
	"github.com/granadev/grana/parser"
)

func mustBuild(t *testing.T, source string) *Ledger {
	t.Helper()

	ops, lexErrs, parseErrs := parser.ParseBytes([]byte(source))
	assert.Equal(t, 0, len(lexErrs))
	assert.Equal(t, 0, len(parseErrs))

	return Build(ops)
}

func TestBuildEmpty(t *testing.T) {
	l := Build(nil)

	assert.Equal(t, 0, len(l.Transactions))
	assert.Equal(t, 0, len(l.Verifications))
	assert.Equal(t, 0, len(l.Openings))
}

func TestBuildAssignsSequentialIDs(t *testing.T) {
	l := mustBuild(t, `2020-01-01 open assets:cash BRL
2020-01-02 balance assets:cash 0 BRL
2020-01-03 transaction "groceries"
    < 50 BRL expenses:food
    > 50 BRL assets:cash
`)

	assert.Equal(t, 1, len(l.Openings))
	assert.Equal(t, 1, len(l.Verifications))
	assert.Equal(t, 2, len(l.Transactions))

	assert.Equal(t, uint64(1), l.Openings[0].ID)
	assert.Equal(t, uint64(2), l.Verifications[0].ID)

	// The statement reserves id 3 as the group parent, movements take 4 and 5.
	assert.Equal(t, uint64(4), l.Transactions[0].ID)
	assert.Equal(t, uint64(5), l.Transactions[1].ID)

	assert.NotZero(t, l.Transactions[0].ParentID)
	assert.NotZero(t, l.Transactions[1].ParentID)
	assert.Equal(t, uint64(3), *l.Transactions[0].ParentID)
	assert.Equal(t, uint64(3), *l.Transactions[1].ParentID)
}

func TestBuildPreservesMovementOrder(t *testing.T) {
	l := mustBuild(t, `2020-01-03 transaction "groceries"
    < 50 BRL expenses:food
    > 50 BRL assets:cash
`)

	assert.Equal(t, 2, len(l.Transactions))

	first := l.Transactions[0]
	assert.Equal(t, ast.Debit, first.Kind)
	assert.Equal(t, "expenses:food", first.Account.String())
	assert.Equal(t, "50 BRL", first.Amount.String())
	assert.Equal(t, "groceries", first.Description)

	second := l.Transactions[1]
	assert.Equal(t, ast.Credit, second.Kind)
	assert.Equal(t, "assets:cash", second.Account.String())
}

func TestBuildCopiesStatementSpan(t *testing.T) {
	source := `2020-01-03 transaction "groceries"
    < 50 BRL expenses:food
    > 50 BRL assets:cash
`
	l := mustBuild(t, source)

	assert.Equal(t, 2, len(l.Transactions))
	assert.Equal(t, l.Transactions[0].Span, l.Transactions[1].Span)

	text := l.Transactions[0].Span.Text([]byte(source))
	assert.True(t, strings.HasPrefix(text, `2020-01-03 transaction "groceries"`))
	assert.Contains(t, text, "< 50 BRL expenses:food")
	assert.Contains(t, text, "> 50 BRL assets:cash")
}

func TestSignedAmount(t *testing.T) {
	cash, err := ast.NewAccount(ast.Assets, "cash")
	assert.NoError(t, err)

	debit := &Transaction{
		Kind:    ast.Debit,
		Account: cash,
		Amount:  ast.MustNewAmount("100", "BRL"),
	}
	assert.Equal(t, "100", debit.SignedAmount().String())

	credit := &Transaction{
		Kind:    ast.Credit,
		Account: cash,
		Amount:  ast.MustNewAmount("100", "BRL"),
	}
	assert.Equal(t, "-100", credit.SignedAmount().String())
}
