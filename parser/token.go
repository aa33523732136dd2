package parser

// TokenType represents the type of token scanned from ledger source.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT    // lowercase identifier: open, balance, assets, cash_account
	NUMBER   // 123 or 123.45 (unsigned; '-' is a separate DASH token)
	CURRENCY // 3-5 uppercase letters: BRL, USD, USDT
	STRING   // "quoted description"

	// Symbols
	MOVEMENT // < (debit) or > (credit)
	COLON    // :
	DASH     // -
)

var tokenNames = map[TokenType]string{
	EOF:      "EOF",
	ILLEGAL:  "ILLEGAL",
	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	CURRENCY: "CURRENCY",
	STRING:   "STRING",
	MOVEMENT: "MOVEMENT",
	COLON:    ":",
	DASH:     "-",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token with zero-copy semantics. Instead of
// storing the token text as a string (which would allocate), it stores byte
// offsets into the original source buffer.
type Token struct {
	Type  TokenType
	Start int // Byte offset into source buffer
	End   int // End offset (exclusive)
	Line  int // Line number (1-indexed)
}

// String materializes the token text from the source buffer.
func (t Token) String(source []byte) string {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return ""
	}
	return string(source[t.Start:t.End])
}

// Bytes returns a zero-copy view of the token text.
func (t Token) Bytes(source []byte) []byte {
	if t.Start >= len(source) || t.End > len(source) || t.Start > t.End {
		return nil
	}
	return source[t.Start:t.End]
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
