package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer is a bytes.Buffer safe for the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out lockedBuffer
	s := startSpinnerTo(context.Background(), &out, "Fetching repositories for alice...")
	time.Sleep(300 * time.Millisecond)
	s.stop()
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Fetching repositories for alice...") {
		t.Errorf("spinner output missing label: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Error("spinner should end by returning to the start of a cleared line")
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var out lockedBuffer
	s := startSpinnerTo(ctx, &out, "Fetching...")
	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after the context ended")
	}
	s.stop()
}
