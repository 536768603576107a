// Package progressbar prints a textual progress bar for long training
// runs
package progressbar

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressBar displays the progress of a bounded computation in the
// terminal. The bar is refreshed on a fixed interval by a background
// goroutine; Increment is safe to call from the computation's
// goroutine.
type ProgressBar struct {
	width int
	max   int

	mu      sync.Mutex
	current int

	out      io.Writer
	interval time.Duration
	start    time.Time
	done     chan struct{}
	closed   bool
}

// New returns a new progress bar that is width characters wide and
// reaches 100% after max Increment calls. The bar redraws every
// interval.
func New(width, max int, interval time.Duration) *ProgressBar {
	return &ProgressBar{
		width:    width,
		max:      max,
		out:      os.Stdout,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Increment advances the progress bar by one step
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	if p.current < p.max {
		p.current++
	}
	p.mu.Unlock()
}

// Display starts drawing the progress bar. It should be called once.
func (p *ProgressBar) Display() {
	p.start = time.Now()

	go func() {
		tick := time.NewTicker(p.interval)
		defer tick.Stop()

		for {
			select {
			case <-tick.C:
				p.draw()

			case <-p.done:
				p.draw()
				fmt.Fprintln(p.out)
				return
			}
		}
	}()
}

// Close stops the progress bar and releases its resources. Close
// panics if called twice.
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	p.closed = true
	close(p.done)
}

// draw renders the bar on the current terminal line
func (p *ProgressBar) draw() {
	p.mu.Lock()
	current := p.current
	p.mu.Unlock()

	fraction := float64(current) / float64(p.max)
	filled := int(fraction * float64(p.width))

	var bar strings.Builder
	bar.WriteString("|")
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))
	bar.WriteString(fmt.Sprintf("| [%.2f%% | elapsed: %v]", fraction*100,
		time.Since(p.start).Round(time.Second)))

	fmt.Fprintf(p.out, "\r\033[K%v", bar.String())
}
