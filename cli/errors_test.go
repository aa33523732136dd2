package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/granadev/grana/ast"
	"github.com/granadev/grana/ledger"
	"github.com/granadev/grana/parser"
)

func TestErrorRendererParseError(t *testing.T) {
	source := []byte(`2020-01-01 open assets:cash BRL
2020-01-02 open assets:a:b:c:d BRL
`)

	_, lexErrs, parseErrs := parser.ParseBytes(source)
	assert.Equal(t, 0, len(lexErrs))
	assert.Equal(t, 1, len(parseErrs))

	renderer := NewErrorRenderer(source)
	output := renderer.Render(parseErrs[0])

	assert.Contains(t, output, "accounts may contain at most 3 segments beyond their kind")
	assert.Contains(t, output, "assets:a:b:c:d")
	assert.Contains(t, output, "^")

	// Source context lines are indented with 3 spaces.
	foundIndented := false
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "   ") && strings.Contains(line, "assets:a:b:c:d") {
			foundIndented = true
			break
		}
	}
	assert.True(t, foundIndented)
}

func TestErrorRendererCaretCoversSpan(t *testing.T) {
	source := []byte("2020-01-01 open assets:cash BRL")

	renderer := NewErrorRenderer(source)
	output := renderer.renderWithSpan(ast.Span{Start: 16, End: 27}, "boom")

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	caretLine := lines[len(lines)-1]

	assert.Equal(t, "   "+strings.Repeat(" ", 16)+strings.Repeat("^", 11), caretLine)
}

func TestErrorRendererTrace(t *testing.T) {
	source := []byte(`2020-01-01 balance assets:cash 0 BRL
`)
	span := ast.Span{Start: 0, End: 36}

	renderer := NewErrorRenderer(source)
	output := renderer.RenderTrace(ledger.Trace{
		Message:  "Balance statement does not hold",
		Details:  "The asserted amount must equal the account's running balance as of that date.",
		Span:     &span,
		Found:    "100",
		Expected: "0",
	})

	assert.Contains(t, output, "Balance statement does not hold")
	assert.Contains(t, output, "found 100, expected 0")
	assert.Contains(t, output, "balance assets:cash")
}

func TestErrorRendererTraceWithoutSpan(t *testing.T) {
	renderer := NewErrorRenderer(nil)
	output := renderer.RenderTrace(ledger.Trace{
		Message:  "Budget does not balance",
		Found:    "-1",
		Expected: "0",
	})

	assert.Contains(t, output, "Budget does not balance")
	assert.Contains(t, output, "found -1, expected 0")
}

func TestLineBounds(t *testing.T) {
	source := []byte("first\nsecond\nthird")

	tests := []struct {
		name      string
		offset    int
		wantStart int
		wantEnd   int
	}{
		{name: "first line", offset: 2, wantStart: 0, wantEnd: 5},
		{name: "second line", offset: 8, wantStart: 6, wantEnd: 12},
		{name: "last line without newline", offset: 15, wantStart: 13, wantEnd: 18},
		{name: "at line start", offset: 6, wantStart: 6, wantEnd: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := lineBounds(source, tt.offset)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
