package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ImportProgress prints a running count of stored items while an import
// writes its batches. Items rejected before writing are shown alongside.
type ImportProgress struct {
	mu sync.Mutex

	w        io.Writer
	accepted int
	rejected int
	every    int

	stored  int
	batches int
	printed int
	began   time.Time
	now     func() time.Time
}

// NewImportProgress prints to w at most once every `every` stored items.
// accepted is the number of items queued for writing and rejected the
// number dropped by the checks.
func NewImportProgress(w io.Writer, accepted, rejected, every int) *ImportProgress {
	if every < 1 {
		every = 1
	}
	return &ImportProgress{
		w:        w,
		accepted: accepted,
		rejected: rejected,
		every:    every,
		now:      time.Now,
	}
}

// Begin starts the clock.
func (ip *ImportProgress) Begin() {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ip.began = ip.now()
}

// BatchStored records a batch of n items written to the store.
func (ip *ImportProgress) BatchStored(n int) {
	ip.mu.Lock()
	defer ip.mu.Unlock()

	if ip.began.IsZero() || n <= 0 {
		return
	}
	ip.stored = min(ip.stored+n, ip.accepted)
	ip.batches++
	if ip.stored-ip.printed >= ip.every {
		ip.printLine()
		ip.printed = ip.stored
	}
}

// Stored returns the number of items written so far.
func (ip *ImportProgress) Stored() int {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return ip.stored
}

// Done ends the progress line. A non-nil err marks the import as stopped.
func (ip *ImportProgress) Done(err error) {
	ip.mu.Lock()
	defer ip.mu.Unlock()

	if ip.began.IsZero() {
		return
	}
	ip.printLine()
	if err != nil {
		fmt.Fprintf(ip.w, " - stopped after %d batches", ip.batches)
	}
	fmt.Fprintln(ip.w)
}

// printLine rewrites the current line. Callers hold mu.
func (ip *ImportProgress) printLine() {
	var pct, rate float64
	if ip.accepted > 0 {
		pct = 100 * float64(ip.stored) / float64(ip.accepted)
	}
	if secs := ip.now().Sub(ip.began).Seconds(); secs > 0 {
		rate = float64(ip.stored) / secs
	}
	fmt.Fprintf(ip.w, "\rStored %d/%d titles (%.1f%%), %d rejected, %.1f titles/s",
		ip.stored, ip.accepted, pct, ip.rejected, rate)
}
