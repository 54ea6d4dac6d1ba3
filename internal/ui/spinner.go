// Package ui holds small terminal helpers for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Spinner shows progress while a batch of samples is being processed.
// On non-terminal output it degrades to a single status line.
type Spinner struct {
	chars   []string
	message string
	current int
	total   int
	active  bool
	out     io.Writer
	mu      sync.Mutex
	done    chan struct{}
}

// NewSpinner creates a spinner with an optional total count. A total of
// zero hides the counter.
func NewSpinner(message string, total int) *Spinner {
	return &Spinner{
		chars:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message: message,
		total:   total,
		out:     os.Stderr,
		done:    make(chan struct{}),
	}
}

// Start begins spinning.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	if !isTerminal() || os.Getenv("NO_COLOR") != "" {
		fmt.Fprintf(s.out, "%s...\n", s.message)
		return
	}

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.done:
				fmt.Fprintf(s.out, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.active {
					fmt.Fprintf(s.out, "\r%s %s%s", s.chars[i], s.message, s.counter())
					i = (i + 1) % len(s.chars)
				}
				s.mu.Unlock()
			}
		}
	}()
}

// Advance moves the counter forward and updates the message.
func (s *Spinner) Advance(message string) {
	s.mu.Lock()
	s.current++
	s.message = message
	s.mu.Unlock()
}

// Stop stops the spinner and optionally shows a final message.
func (s *Spinner) Stop(finalMessage string) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	close(s.done)
	time.Sleep(100 * time.Millisecond) // Allow goroutine to clean up

	if finalMessage != "" {
		fmt.Fprintf(s.out, "\r\033[K%s\n", finalMessage)
	}
}

// counter must be called with the lock held.
func (s *Spinner) counter() string {
	if s.total <= 0 {
		return ""
	}
	return fmt.Sprintf(" [%d/%d]", s.current, s.total)
}

// isTerminal checks if output is to a terminal
func isTerminal() bool {
	fileInfo, _ := os.Stderr.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
