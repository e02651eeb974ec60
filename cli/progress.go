package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ScanProgressReporter prints scan progress lines for non-interactive runs
// of 'pulse scan --wait'. Repeated identical progress messages are collapsed.
type ScanProgressReporter struct {
	mu    sync.Mutex
	out   io.Writer
	last  string
	start time.Time
}

// NewScanProgressReporter creates a reporter writing to out
func NewScanProgressReporter(out io.Writer) *ScanProgressReporter {
	return &ScanProgressReporter{
		out:   out,
		start: time.Now(),
	}
}

// Update prints a progress line when the backend's message changed
func (p *ScanProgressReporter) Update(progress string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if progress == "" || progress == p.last {
		return
	}
	p.last = progress

	elapsed := time.Since(p.start).Round(time.Second)
	fmt.Fprintf(p.out, "[%s] %s\n", elapsed, progress)
}

// Done prints the completion line with the registered subject id
func (p *ScanProgressReporter) Done(subjectID int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.out, "Scan finished for subject %d in %s\n", subjectID, elapsed)
}
