package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Progress reports completed sessions during a benchmark run. It is safe
// for concurrent use by runner workers.
type Progress struct {
	mu     sync.Mutex
	total  int
	done   int
	passed int
	writer io.Writer
}

// NewProgress creates a progress reporter for total sessions, writing to w.
// A nil writer defaults to os.Stdout.
func NewProgress(total int, w io.Writer) *Progress {
	if w == nil {
		w = os.Stdout
	}
	return &Progress{total: total, writer: w}
}

// Record notes one finished session and re-renders the counter line.
func (p *Progress) Record(pass bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if pass {
		p.passed++
	}
	fmt.Fprintf(p.writer, "\r[%d/%d] sessions scored, %d passed", p.done, p.total, p.passed)
	if p.done == p.total {
		fmt.Fprintln(p.writer)
	}
}

// Passed returns how many recorded sessions passed.
func (p *Progress) Passed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passed
}
