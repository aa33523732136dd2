package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func lexTypes(t *testing.T, input string) []TokenType {
	t.Helper()

	tokens, errs := Lex([]byte(input))
	assert.Equal(t, 0, len(errs))

	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{
			name:  "empty input",
			input: "",
			want:  []TokenType{EOF},
		},
		{
			name:  "identifier",
			input: "cash_account",
			want:  []TokenType{IDENT, EOF},
		},
		{
			name:  "integer",
			input: "200",
			want:  []TokenType{NUMBER, EOF},
		},
		{
			name:  "decimal",
			input: "200.01",
			want:  []TokenType{NUMBER, EOF},
		},
		{
			name:  "currency",
			input: "BRL",
			want:  []TokenType{CURRENCY, EOF},
		},
		{
			name:  "five letter currency",
			input: "USDTX",
			want:  []TokenType{CURRENCY, EOF},
		},
		{
			name:  "string",
			input: `"Buy some books"`,
			want:  []TokenType{STRING, EOF},
		},
		{
			name:  "movements",
			input: "< >",
			want:  []TokenType{MOVEMENT, MOVEMENT, EOF},
		},
		{
			name:  "separators",
			input: ": -",
			want:  []TokenType{COLON, DASH, EOF},
		},
		{
			name:  "date",
			input: "2020-01-01",
			want:  []TokenType{NUMBER, DASH, NUMBER, DASH, NUMBER, EOF},
		},
		{
			name:  "account",
			input: "assets:cash:omg",
			want:  []TokenType{IDENT, COLON, IDENT, COLON, IDENT, EOF},
		},
		{
			name:  "comment only",
			input: "// nothing to see\n",
			want:  []TokenType{EOF},
		},
		{
			name:  "comment between tokens",
			input: "200 // amount\nBRL",
			want:  []TokenType{NUMBER, CURRENCY, EOF},
		},
		{
			name:  "open statement",
			input: "2020-01-01 open assets:cash_account BRL",
			want: []TokenType{
				NUMBER, DASH, NUMBER, DASH, NUMBER,
				IDENT, IDENT, COLON, IDENT, CURRENCY, EOF,
			},
		},
		{
			name:  "movement line",
			input: "< 100 BRL assets:cash",
			want:  []TokenType{MOVEMENT, NUMBER, CURRENCY, IDENT, COLON, IDENT, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexTypes(t, tt.input))
		})
	}
}

func TestLexerTokenText(t *testing.T) {
	source := []byte(`2020-01-01 balance assets:cash 200.01 BRL`)
	tokens, errs := Lex(source)
	assert.Equal(t, 0, len(errs))

	var texts []string
	for _, tok := range tokens[:len(tokens)-1] {
		texts = append(texts, tok.String(source))
	}

	assert.Equal(t, []string{
		"2020", "-", "01", "-", "01",
		"balance", "assets", ":", "cash", "200.01", "BRL",
	}, texts)
}

func TestLexerSpansAreOrderedAndDisjoint(t *testing.T) {
	source := []byte("2020-01-01 transaction \"books\"\n< 100 BRL assets:cash\n")
	tokens, errs := Lex(source)
	assert.Equal(t, 0, len(errs))

	prevEnd := 0
	for _, tok := range tokens {
		assert.True(t, tok.Start >= prevEnd)
		assert.True(t, tok.End >= tok.Start)
		assert.True(t, tok.End <= len(source))
		prevEnd = tok.End
	}
}

func TestLexerRecovery(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantErrs   int
		wantTokens []TokenType
	}{
		{
			name:       "lone garbage",
			input:      "@#!",
			wantErrs:   1,
			wantTokens: []TokenType{EOF},
		},
		{
			name:       "garbage between tokens",
			input:      "200 ??? BRL",
			wantErrs:   1,
			wantTokens: []TokenType{NUMBER, CURRENCY, EOF},
		},
		{
			name:       "currency too short",
			input:      "AB",
			wantErrs:   1,
			wantTokens: []TokenType{EOF},
		},
		{
			name:       "currency too long",
			input:      "TOOLONG",
			wantErrs:   1,
			wantTokens: []TokenType{EOF},
		},
		{
			name:       "unterminated string",
			input:      "\"no closing quote\n200",
			wantErrs:   1,
			wantTokens: []TokenType{NUMBER, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Lex([]byte(tt.input))
			assert.Equal(t, tt.wantErrs, len(errs))

			types := make([]TokenType, len(tokens))
			for i, tok := range tokens {
				types[i] = tok.Type
			}
			assert.Equal(t, tt.wantTokens, types)

			for _, e := range errs {
				assert.True(t, e.Span.Start >= 0)
				assert.True(t, e.Span.End <= len(tt.input))
			}
		})
	}
}

func TestLexerLineTracking(t *testing.T) {
	source := []byte("200\nBRL\n\nassets")
	tokens, errs := Lex(source)
	assert.Equal(t, 0, len(errs))

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 4, tokens[2].Line)
}
