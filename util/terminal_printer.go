package util

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// TerminalPrinter redraws a set of status lines in place at a fixed frequency.
type TerminalPrinter struct {
	outputs   []*ParallelOutput
	frequency time.Duration
	doneCh    chan struct{}
	stopped   chan struct{}
	started   bool
	once      sync.Once

	writer  *uilive.Writer
	writers []io.Writer
}

func NewTerminalPrinter(out io.Writer, frequency time.Duration) *TerminalPrinter {
	writer := uilive.New()
	writer.Out = out
	return &TerminalPrinter{
		outputs:   make([]*ParallelOutput, 0),
		frequency: frequency,
		doneCh:    make(chan struct{}),
		stopped:   make(chan struct{}),

		writer:  writer,
		writers: make([]io.Writer, 0),
	}
}

// NewOutput adds a status line. Call before Start.
func (t *TerminalPrinter) NewOutput() *ParallelOutput {
	out := NewParallelOutput()
	t.outputs = append(t.outputs, out)
	if len(t.outputs) == 1 {
		t.writers = append(t.writers, t.writer)
	} else {
		t.writers = append(t.writers, t.writer.Newline())
	}
	return out
}

func (t *TerminalPrinter) Start(ctx context.Context) {
	t.started = true
	go func() {
		defer close(t.stopped)
		ticker := time.NewTicker(t.frequency)
		defer ticker.Stop()
		for {
			select {
			case <-t.doneCh:
				t.print()
				return
			case <-ctx.Done():
				t.print()
				return
			case <-ticker.C:
				t.print()
			}
		}
	}()
}

// Stop prints the final state of every line and waits for the printer to exit.
func (t *TerminalPrinter) Stop() {
	if !t.started {
		return
	}
	t.once.Do(func() {
		close(t.doneCh)
	})
	<-t.stopped
}

func (t *TerminalPrinter) print() {
	for i, output := range t.outputs {
		fmt.Fprintln(t.writers[i], output.Get())
	}
	t.writer.Flush()
}

// PARALLEL OUTPUT
// used to update and print status lines from other goroutines
type ParallelOutput struct {
	mu        *sync.Mutex
	printable string
}

func NewParallelOutput() *ParallelOutput {
	return &ParallelOutput{
		mu:        new(sync.Mutex),
		printable: "",
	}
}

// Set the output string (blocking)
func (p *ParallelOutput) Set(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printable = s
}

// Try to set the output string (non-blocking)
func (p *ParallelOutput) TrySet(s string) bool {
	if !p.mu.TryLock() {
		return false
	}
	defer p.mu.Unlock()
	p.printable = s
	return true
}

// Get the output string (blocking)
func (p *ParallelOutput) Get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.printable
}
