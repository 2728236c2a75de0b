package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner keeps the terminal alive while a non-streaming run waits for the
// whole answer. Frames are plain ASCII, matching the rest of the status
// output on stderr.
type Spinner struct {
	frames   []string
	label    string
	interval time.Duration
	writer   io.Writer
	stop     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewSpinner builds a spinner that animates on w next to label until Stop
// is called.
func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		frames:   []string{"|", "/", "-", "\\"},
		label:    label,
		interval: 120 * time.Millisecond,
		writer:   w,
		stop:     make(chan struct{}),
	}
}

// Start begins the animation. Starting an already running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.stop:
				// Clear the line so the answer starts at column zero.
				fmt.Fprint(s.writer, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(s.writer, "\r%s %s", s.frames[i%len(s.frames)], s.label)
			}
		}
	}()
}

// Stop ends the animation and clears the spinner line. Stopping twice is a
// no-op.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stop)
	s.wg.Wait()
}
