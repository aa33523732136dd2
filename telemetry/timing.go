package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// TimingCollector collects hierarchical timing data as a tree of timers.
type TimingCollector struct {
	root    *timerNode
	current *timerNode
	mu      sync.Mutex
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
	parent   *timerNode
}

// NewTimingCollector creates an empty timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation. The first timer becomes the root; later
// timers nest under whichever timer is currently open.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}

	if c.root == nil {
		c.root = node
	} else {
		node.parent = c.current
		c.current.children = append(c.current.children, node)
	}
	c.current = node

	return &timingTimer{collector: c, node: node}
}

// Report writes the timing tree:
//
//	check main.grana: 1.2ms
//	├─ lex: 310µs
//	├─ parse: 420µs
//	├─ build: 45µs
//	└─ validate that credits and debits balance: 12µs
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "%s: %s\n", c.root.name, formatDuration(c.root.duration()))
	for i, child := range c.root.children {
		reportNode(w, child, "", i == len(c.root.children)-1)
	}
}

func reportNode(w io.Writer, node *timerNode, prefix string, isLast bool) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, formatDuration(node.duration()))

	childPrefix := prefix + extension
	for i, child := range node.children {
		reportNode(w, child, childPrefix, i == len(node.children)-1)
	}
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return time.Since(n.start)
	}
	return n.end.Sub(n.start)
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

// End stops the timer and reopens its parent for further children.
func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = time.Now()
	if t.node.parent != nil {
		t.collector.current = t.node.parent
	}
}
