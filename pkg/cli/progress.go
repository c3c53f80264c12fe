package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ProgressReporter reports progress for long-running batch decodes.
type ProgressReporter interface {
	Start(total int64)
	Update(current int64)
	Finish()
	Error(err error)
}

// lineProgress rewrites a single status line with the running decode
// count and rate. Safe for concurrent Update calls from worker
// goroutines.
type lineProgress struct {
	mu      sync.Mutex
	total   int64
	current int64
	started time.Time
	writer  io.Writer
}

// NewProgressReporter creates a progress reporter that writes to w.
// If w is nil, it defaults to os.Stderr so machine-readable output on
// stdout stays clean.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &lineProgress{writer: w}
}

// Start initializes the reporter with the total number of reports.
func (p *lineProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	p.started = time.Now()
	p.render()
}

// Update sets the number of reports decoded so far.
func (p *lineProgress) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.render()
}

// Finish completes the status line.
func (p *lineProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

// Error reports a failure without disturbing the running count.
func (p *lineProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "\nerror: %v\n", err)
}

func (p *lineProgress) render() {
	if p.total == 0 {
		return
	}
	percent := float64(p.current) / float64(p.total) * 100
	rate := float64(p.current) / time.Since(p.started).Seconds()
	fmt.Fprintf(p.writer, "\rdecoded %d/%d reports (%.0f%%, %.0f reports/s)",
		p.current, p.total, percent, rate)
}
