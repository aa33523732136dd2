package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFromContextDefaultsToNoOp(t *testing.T) {
	collector := FromContext(context.Background())
	assert.NotZero(t, collector)

	// No-op timers must be safe to use without a collector attached.
	timer := StartTimer(context.Background(), "anything")
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	assert.Equal(t, "", buf.String())
}

func TestWithCollectorRoundTrip(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	assert.Equal[Collector](t, collector, FromContext(ctx))
}

func TestTimingCollectorReportTree(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("check main.grana")
	lex := collector.Start("lex")
	lex.End()
	parse := collector.Start("parse")
	parse.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "check main.grana: "))
	assert.True(t, strings.HasPrefix(lines[1], "├─ lex: "))
	assert.True(t, strings.HasPrefix(lines[2], "└─ parse: "))
}

func TestTimingCollectorNesting(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("root")
	outer := collector.Start("outer")
	inner := collector.Start("inner")
	inner.End()
	outer.End()
	sibling := collector.Start("sibling")
	sibling.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	out := buf.String()

	assert.Contains(t, out, "├─ outer: ")
	assert.Contains(t, out, "│  └─ inner: ")
	assert.Contains(t, out, "└─ sibling: ")
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewTimingCollector().Report(&buf)
	assert.Equal(t, "", buf.String())
}
