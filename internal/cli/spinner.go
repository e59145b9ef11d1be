package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// fetchSpinner animates a status line on stderr while the pipeline talks to
// GitHub. It stops on its own when the parent context is cancelled.
type fetchSpinner struct {
	w      io.Writer
	style  spinner.Spinner
	parent context.Context

	label string
	mu    sync.Mutex
	width int

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// startSpinner begins animating label until stop is called or ctx ends.
func startSpinner(ctx context.Context, label string) *fetchSpinner {
	return startSpinnerTo(ctx, os.Stderr, label)
}

func startSpinnerTo(ctx context.Context, w io.Writer, label string) *fetchSpinner {
	s := &fetchSpinner{
		w:      w,
		style:  spinner.MiniDot,
		parent: ctx,
		label:  label,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *fetchSpinner) run() {
	defer close(s.done)
	tick := time.NewTicker(s.style.FPS)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.parent.Done():
			s.clear()
			return
		case <-s.quit:
			s.clear()
			return
		case <-tick.C:
			s.draw(s.style.Frames[i%len(s.style.Frames)])
		}
	}
}

func (s *fetchSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = len(s.label) + 2
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.label))
}

func (s *fetchSpinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// stop halts the animation and erases the line. Safe to call twice.
func (s *fetchSpinner) stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}
