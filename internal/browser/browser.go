// Package browser is the narrow capability surface the capture runner needs
// from a headless browser, plus the concrete engines that provide it.
package browser

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNavigation marks failures to load the target: timeouts, DNS and
	// connection errors, URLs the browser refuses.
	ErrNavigation = errors.New("navigation failed")

	// ErrElementNotFound is returned by CaptureElement when the selector
	// matches nothing.
	ErrElementNotFound = errors.New("element not found")
)

// Engine launches isolated browser sessions.
type Engine interface {
	Name() string
	Launch(ctx context.Context, opts SessionOptions) (Session, error)
}

// Session is one browser with one page, owned by a single caller.
// Captures return PNG-encoded bytes.
type Session interface {
	// Navigate loads url and blocks until the network has been quiet for
	// the session's idle period, or fails once timeout elapses.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	Wait(ctx context.Context, d time.Duration) error

	// CaptureElement screenshots the first element matching selector.
	CaptureElement(ctx context.Context, selector string) ([]byte, error)

	// CapturePage screenshots the viewport, or the whole scrollable page
	// when fullPage is set.
	CapturePage(ctx context.Context, fullPage bool) ([]byte, error)

	// Close releases the page and the browser process. Safe to call twice.
	Close() error
}

type SessionOptions struct {
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string

	// IdleQuiet is how long the network must stay without in-flight
	// requests before it counts as idle.
	IdleQuiet time.Duration
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
