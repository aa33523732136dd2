package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/granadev/grana/ast"
	"github.com/granadev/grana/ledger"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error with styling and source context.
func (r *ErrorRenderer) Render(err error) string {
	if e, ok := err.(interface {
		GetSpan() ast.Span
		Error() string
	}); ok && r.source != nil {
		return r.renderWithSpan(e.GetSpan(), e.Error())
	}

	return err.Error()
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// RenderTrace formats one validation failure, including its found/expected
// values and source context when a span is attached.
func (r *ErrorRenderer) RenderTrace(t ledger.Trace) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(t.Message))
	if t.Details != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Details)
	}
	if t.Found != "" || t.Expected != "" {
		buf.WriteString("\n")
		buf.WriteString(errContextStyle.Render(fmt.Sprintf("found %s, expected %s", t.Found, t.Expected)))
	}

	if t.Span != nil && r.source != nil {
		buf.WriteString("\n\n")
		buf.WriteString(r.renderContext(*t.Span))
	}

	return buf.String()
}

func (r *ErrorRenderer) renderWithSpan(span ast.Span, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")
	buf.WriteString(r.renderContext(span))

	return buf.String()
}

// renderContext prints the source line containing the span's start with a
// caret run underneath. Multi-line spans are marked on their first line only.
func (r *ErrorRenderer) renderContext(span ast.Span) string {
	lineStart, lineEnd := lineBounds(r.source, span.Start)
	line := string(r.source[lineStart:lineEnd])

	markEnd := span.End
	if markEnd > lineEnd {
		markEnd = lineEnd
	}

	indent := runewidth.StringWidth(string(r.source[lineStart:span.Start]))
	carets := runewidth.StringWidth(string(r.source[span.Start:markEnd]))
	if carets < 1 {
		carets = 1
	}

	var buf strings.Builder
	buf.WriteString("   ")
	buf.WriteString(errContextStyle.Render(line))
	buf.WriteByte('\n')
	buf.WriteString("   ")
	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString(errCaretStyle.Render(strings.Repeat("^", carets)))
	buf.WriteByte('\n')

	return buf.String()
}

// lineBounds returns the byte range of the line containing offset, excluding
// the trailing newline.
func lineBounds(source []byte, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}

	start := bytes.LastIndexByte(source[:offset], '\n') + 1

	end := bytes.IndexByte(source[offset:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += offset
	}

	return start, end
}
