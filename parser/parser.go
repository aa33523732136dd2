// Package parser implements the front-end for grana ledger files: a
// zero-copy lexer and a recursive-descent parser producing a span-annotated
// operation stream.
//
// Both stages recover from errors instead of aborting. The lexer skips
// unrecognized byte runs; the parser skips to the next statement boundary
// (every statement starts with a date literal, which makes boundaries cheap
// to find). Errors accumulate alongside the best-effort output and the
// caller decides whether they are fatal.
package parser

import (
	"strconv"

	"github.com/granadev/grana/ast"
)

// Parser consumes a token sequence and produces spanned Operations.
type Parser struct {
	source []byte
	tokens []Token
	pos    int
	errs   []*ParseError
}

// Parse consumes the tokens produced by Lex over the same source buffer and
// returns the operation sequence in source order, plus any syntax errors.
// A file with zero valid statements yields an empty sequence, not an error.
func Parse(source []byte, tokens []Token) ([]ast.Spanned[ast.Operation], []*ParseError) {
	p := &Parser{source: source, tokens: tokens}
	return p.parseAll()
}

// ParseBytes lexes and parses source in one call.
func ParseBytes(source []byte) ([]ast.Spanned[ast.Operation], []*LexError, []*ParseError) {
	tokens, lexErrs := Lex(source)
	ops, parseErrs := Parse(source, tokens)
	return ops, lexErrs, parseErrs
}

func (p *Parser) parseAll() ([]ast.Spanned[ast.Operation], []*ParseError) {
	ops := make([]ast.Spanned[ast.Operation], 0, 16)

	for !p.atEOF() {
		start := p.pos

		op, err := p.parseOperation()
		if err != nil {
			p.errs = append(p.errs, err)
			p.synchronize(start)
			continue
		}

		ops = append(ops, op)
	}

	return ops, p.errs
}

// synchronize skips tokens until the next possible statement start (a
// date-shaped token run) so one malformed statement cannot take the rest of
// the file with it. It always makes progress.
func (p *Parser) synchronize(statementStart int) {
	if p.pos == statementStart {
		p.advance()
	}
	for !p.atEOF() && !p.atDate() {
		p.advance()
	}
}

// parseOperation parses one statement: a date, a keyword, and the keyword's
// grammar.
func (p *Parser) parseOperation() (ast.Spanned[ast.Operation], *ParseError) {
	var spanned ast.Spanned[ast.Operation]

	start := p.peek().Start

	date, err := p.parseDate()
	if err != nil {
		return spanned, err
	}

	kw := p.peek()
	if kw.Type != IDENT {
		return spanned, p.errorAtToken(kw, "expected a statement keyword", "open, balance or transaction")
	}

	var op ast.Operation
	switch kw.String(p.source) {
	case "open":
		p.advance()
		op, err = p.parseOpen(date)
	case "balance":
		p.advance()
		op, err = p.parseBalance(date)
	case "transaction":
		p.advance()
		op, err = p.parseTransaction(date)
	default:
		return spanned, p.errorAtToken(kw, "unknown statement keyword", "open, balance or transaction")
	}
	if err != nil {
		return spanned, err
	}

	spanned.Value = op
	spanned.Span = ast.Span{Start: start, End: p.previous().End}
	return spanned, nil
}

// parseOpen parses: DATE open ACCOUNT CURRENCY
func (p *Parser) parseOpen(date ast.Date) (ast.Operation, *ParseError) {
	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}

	currency, err := p.expect(CURRENCY, "a currency code")
	if err != nil {
		return nil, err
	}

	return &ast.Open{
		Date:     date,
		Account:  account,
		Currency: currency.String(p.source),
	}, nil
}

// parseBalance parses: DATE balance ACCOUNT [-]NUMBER CURRENCY
// Balance assertions are the one place an amount may be negative.
func (p *Parser) parseBalance(date ast.Date) (ast.Operation, *ParseError) {
	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}

	amount, err := p.parseAmount(true)
	if err != nil {
		return nil, err
	}

	return &ast.Balance{
		Date:    date,
		Account: account,
		Amount:  amount,
	}, nil
}

// parseTransaction parses: DATE transaction STRING MOVEMENT+
func (p *Parser) parseTransaction(date ast.Date) (ast.Operation, *ParseError) {
	desc, err := p.expect(STRING, "a quoted description")
	if err != nil {
		return nil, err
	}

	txn := &ast.Transaction{
		Date:        date,
		Description: unquote(desc.String(p.source)),
	}

	for p.check(MOVEMENT) {
		movement, err := p.parseMovement()
		if err != nil {
			return nil, err
		}
		txn.Movements = append(txn.Movements, movement)
	}

	if len(txn.Movements) == 0 {
		return nil, p.errorAtToken(p.peek(), "transaction requires at least one movement", "'<' or '>'")
	}

	return txn, nil
}

// parseMovement parses one leg: ('<' | '>') NUMBER CURRENCY ACCOUNT
func (p *Parser) parseMovement() (ast.Movement, *ParseError) {
	var movement ast.Movement

	tok, err := p.expect(MOVEMENT, "'<' or '>'")
	if err != nil {
		return movement, err
	}

	kind := ast.Credit
	if p.source[tok.Start] == '<' {
		kind = ast.Debit
	}

	amount, err := p.parseAmount(false)
	if err != nil {
		return movement, err
	}

	account, err := p.parseAccount()
	if err != nil {
		return movement, err
	}

	movement.Kind = kind
	movement.Amount = amount
	movement.Account = account
	return movement, nil
}

// parseAccount parses: KIND (':' IDENT)+ with at most ast.MaxAccountSegments
// identifier segments beyond the kind. The whole token run is consumed before
// the cap is checked so the error span covers the full account.
func (p *Parser) parseAccount() (ast.Account, *ParseError) {
	var account ast.Account

	kindTok, err := p.expect(IDENT, "an account kind")
	if err != nil {
		return account, err
	}

	kind, ok := ast.AccountKindFromIdent(kindTok.String(p.source))
	if !ok {
		return account, p.errorAtToken(kindTok, "unknown account kind", "assets, liabilities, income, equity or expenses")
	}

	var segments []string
	for p.check(COLON) {
		p.advance()
		seg, err := p.expect(IDENT, "an account segment")
		if err != nil {
			return account, err
		}
		segments = append(segments, seg.String(p.source))
	}

	if len(segments) == 0 {
		return account, p.errorAtToken(p.peek(), "account requires at least one segment", "':' followed by a segment")
	}

	if len(segments) > ast.MaxAccountSegments {
		return account, &ParseError{
			Span:    ast.Span{Start: kindTok.Start, End: p.previous().End},
			Line:    kindTok.Line,
			Message: "accounts may contain at most 3 segments beyond their kind",
		}
	}

	account.Kind = kind
	account.Segments = segments
	return account, nil
}

// parseAmount parses: ['-'] NUMBER CURRENCY. The literal text goes straight
// into an exact decimal; no float ever sees it.
func (p *Parser) parseAmount(allowNegative bool) (ast.Amount, *ParseError) {
	var amount ast.Amount

	negative := false
	if allowNegative && p.check(DASH) {
		p.advance()
		negative = true
	}

	numTok, err := p.expect(NUMBER, "a number")
	if err != nil {
		return amount, err
	}

	curTok, err := p.expect(CURRENCY, "a currency code")
	if err != nil {
		return amount, err
	}

	value := numTok.String(p.source)
	if negative {
		value = "-" + value
	}

	amount, aerr := ast.NewAmount(value, curTok.String(p.source))
	if aerr != nil {
		return amount, &ParseError{
			Span:    ast.Span{Start: numTok.Start, End: numTok.End},
			Line:    numTok.Line,
			Message: aerr.Error(),
		}
	}

	return amount, nil
}

// parseDate parses: NUMBER '-' NUMBER '-' NUMBER combined through the
// calendar-aware constructor. Each component is bounds-checked, and the
// combination itself must be a real calendar date.
func (p *Parser) parseDate() (ast.Date, *ParseError) {
	var zero ast.Date

	yearTok, err := p.expect(NUMBER, "a date")
	if err != nil {
		return zero, err
	}
	if _, derr := p.expect(DASH, "'-'"); derr != nil {
		return zero, derr
	}
	monthTok, err := p.expect(NUMBER, "a month")
	if err != nil {
		return zero, err
	}
	if _, derr := p.expect(DASH, "'-'"); derr != nil {
		return zero, derr
	}
	dayTok, err := p.expect(NUMBER, "a day")
	if err != nil {
		return zero, err
	}

	span := ast.Span{Start: yearTok.Start, End: dayTok.End}

	year, yerr := strconv.Atoi(yearTok.String(p.source))
	month, merr := strconv.Atoi(monthTok.String(p.source))
	day, serr := strconv.Atoi(dayTok.String(p.source))
	if yerr != nil || merr != nil || serr != nil {
		return zero, &ParseError{
			Span:    span,
			Line:    yearTok.Line,
			Message: "date components must be integers",
			Found:   span.Text(p.source),
		}
	}

	date, cerr := ast.NewDate(year, month, day)
	if cerr != nil {
		return zero, &ParseError{
			Span:    span,
			Line:    yearTok.Line,
			Message: cerr.Error(),
			Found:   span.Text(p.source),
		}
	}

	return date, nil
}

// Cursor helpers.

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) peekAhead(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Type == typ
}

func (p *Parser) atEOF() bool {
	return p.peek().Type == EOF
}

// atDate reports whether the cursor sits on a date-shaped token run, the
// only thing that can start a statement.
func (p *Parser) atDate() bool {
	return p.peek().Type == NUMBER &&
		p.peekAhead(1).Type == DASH &&
		p.peekAhead(2).Type == NUMBER &&
		p.peekAhead(3).Type == DASH &&
		p.peekAhead(4).Type == NUMBER
}

// expect consumes a token of the given type or produces a ParseError
// describing what the grammar wanted.
func (p *Parser) expect(typ TokenType, expected string) (Token, *ParseError) {
	tok := p.peek()
	if tok.Type != typ {
		return tok, p.errorAtToken(tok, "expected "+expected, expected)
	}
	return p.advance(), nil
}

func (p *Parser) errorAtToken(tok Token, message, expected string) *ParseError {
	found := tok.String(p.source)
	if tok.Type == EOF {
		found = "end of file"
	}
	return &ParseError{
		Span:     ast.Span{Start: tok.Start, End: tok.End},
		Line:     tok.Line,
		Message:  message,
		Expected: expected,
		Found:    found,
	}
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
