// Package ast declares the types produced by parsing a grana ledger file.
//
// A parse yields a flat stream of Operation values (account openings, balance
// assertions and transactions), each paired with the byte range of source text
// it was parsed from. The types here are pure data; building and validating a
// ledger from them is the ledger package's job.
package ast

// Span is a half-open byte-offset range into the original source text.
type Span struct {
	Start int // Starting byte offset (inclusive)
	End   int // Ending byte offset (exclusive)
}

// IsZero returns true if this is an uninitialized span.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	if s.IsZero() {
		return other
	}
	if other.IsZero() {
		return s
	}
	u := s
	if other.Start < u.Start {
		u.Start = other.Start
	}
	if other.End > u.End {
		u.End = other.End
	}
	return u
}

// Text extracts the source text for this span (zero-copy slice).
// Returns empty string if the span is invalid or zero.
func (s Span) Text(source []byte) string {
	if s.Start < 0 || s.End <= s.Start || s.End > len(source) {
		return ""
	}
	return string(source[s.Start:s.End])
}

// Spanned pairs a value with the span of source text it came from.
// Span propagation stays mechanical: a production's span is the union of the
// spans of its parts.
type Spanned[T any] struct {
	Value T
	Span  Span
}
