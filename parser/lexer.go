package parser

import "github.com/granadev/grana/ast"

// Lexer tokenizes grana ledger source.
//
// It is a single-pass byte scanner with no backtracking. Tokens store byte
// offsets rather than strings, so lexing itself allocates nothing beyond the
// token buffer. An unrecognized byte run never aborts the scan: the lexer
// records a spanned error, skips forward to the next point at which any token
// rule matches, and keeps going.
type Lexer struct {
	source []byte
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	tokens []Token
	errs   []*LexError
}

// Lex scans the entire source and returns the token sequence along with any
// lexical errors encountered. The token slice is always usable; a non-empty
// error list means parts of the input were skipped. Lex never panics.
func Lex(source []byte) ([]Token, []*LexError) {
	// Roughly one token per 6 bytes of ledger text.
	l := &Lexer{
		source: source,
		line:   1,
		tokens: make([]Token, 0, len(source)/6+16),
	}
	return l.scanAll()
}

func (l *Lexer) scanAll() ([]Token, []*LexError) {
	for l.pos < len(l.source) {
		l.skipInsignificant()
		if l.pos >= len(l.source) {
			break
		}
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{Type: EOF, Start: l.pos, End: l.pos, Line: l.line})
	return l.tokens, l.errs
}

// scanToken scans one token from the current position, or recovers from an
// unrecognized byte run.
func (l *Lexer) scanToken() {
	start := l.pos
	startLine := l.line
	ch := l.advance()

	switch {
	case ch >= '0' && ch <= '9':
		l.scanNumber(start, startLine)

	case ch >= 'a' && ch <= 'z':
		l.scanIdent(start, startLine)

	case ch >= 'A' && ch <= 'Z':
		l.scanCurrency(start, startLine)

	case ch == '"':
		l.scanString(start, startLine)

	case ch == '<' || ch == '>':
		l.emit(MOVEMENT, start, startLine)

	case ch == ':':
		l.emit(COLON, start, startLine)

	case ch == '-':
		l.emit(DASH, start, startLine)

	default:
		l.recover(start)
	}
}

func (l *Lexer) emit(typ TokenType, start, line int) {
	l.tokens = append(l.tokens, Token{Type: typ, Start: start, End: l.pos, Line: line})
}

// scanNumber scans an unsigned integer or decimal literal. The text is kept
// verbatim; conversion to an exact decimal happens in the parser, never
// through a float.
func (l *Lexer) scanNumber(start, line int) {
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.pos++
	}

	// Fractional part only when a digit follows the dot.
	if l.pos+1 < len(l.source) && l.source[l.pos] == '.' && isDigit(l.source[l.pos+1]) {
		l.pos++
		for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			l.pos++
		}
	}

	l.emit(NUMBER, start, line)
}

// scanIdent scans a lowercase identifier: [a-z][a-z_]*
func (l *Lexer) scanIdent(start, line int) {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if (ch < 'a' || ch > 'z') && ch != '_' {
			break
		}
		l.pos++
	}

	l.emit(IDENT, start, line)
}

// scanCurrency scans an uppercase currency code. Codes must be 3 to 5
// letters; anything else is a lexical error spanning the whole run.
func (l *Lexer) scanCurrency(start, line int) {
	for l.pos < len(l.source) && l.source[l.pos] >= 'A' && l.source[l.pos] <= 'Z' {
		l.pos++
	}

	length := l.pos - start
	if length < 3 || length > 5 {
		l.errs = append(l.errs, &LexError{
			Span:    ast.Span{Start: start, End: l.pos},
			Message: "currency codes must be 3 to 5 uppercase letters",
		})
		return
	}

	l.emit(CURRENCY, start, line)
}

// scanString scans a quoted description. Strings do not span lines; a newline
// or EOF before the closing quote is a lexical error.
func (l *Lexer) scanString(start, line int) {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		if ch == '"' {
			l.pos++
			l.emit(STRING, start, line)
			return
		}
		if ch == '\n' {
			break
		}
		l.pos++
	}

	l.errs = append(l.errs, &LexError{
		Span:    ast.Span{Start: start, End: l.pos},
		Message: "unterminated string",
	})
}

// recover discards input from an unrecognized byte until the next position
// where any token rule matches, then records the skipped span as an error.
func (l *Lexer) recover(start int) {
	for l.pos < len(l.source) && !l.startsToken(l.source[l.pos]) {
		l.pos++
	}

	l.errs = append(l.errs, &LexError{
		Span:    ast.Span{Start: start, End: l.pos},
		Message: "unrecognized input",
	})
}

// startsToken reports whether a byte can begin a token, whitespace or
// a comment.
func (l *Lexer) startsToken(ch byte) bool {
	switch {
	case isDigit(ch),
		ch >= 'a' && ch <= 'z',
		ch >= 'A' && ch <= 'Z':
		return true
	}
	switch ch {
	case '"', '<', '>', ':', '-', '/', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// skipInsignificant consumes whitespace and // line comments.
func (l *Lexer) skipInsignificant() {
	for l.pos < len(l.source) {
		ch := l.source[l.pos]
		switch {
		case ch == '\n':
			l.line++
			l.pos++
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.pos++
		case ch == '/' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '/':
			for l.pos < len(l.source) && l.source[l.pos] != '\n' {
				l.pos++
			}
		case ch == '/':
			// A lone slash is not a comment; let scanToken report it.
			return
		default:
			return
		}
	}
}

func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
	}
	return ch
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
