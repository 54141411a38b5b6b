// Package capture navigates a browser session to a URL and saves one PNG
// screenshot of the viewport, the full page or a single element.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/webshot/internal/browser"
	"github.com/raysh454/webshot/internal/logging"
)

// Runner performs captures against an engine. Each Capture call owns one
// session for its whole lifetime and never shares it.
type Runner struct {
	cfg      Config
	engine   browser.Engine
	logger   logging.Logger
	progress io.Writer

	// OnTransition, when set, observes every lifecycle transition.
	OnTransition func(from, to State)
}

// NewRunner creates a Runner. progress receives the human-readable progress
// lines; nil discards them.
func NewRunner(cfg Config, engine browser.Engine, logger logging.Logger, progress io.Writer) (*Runner, error) {
	if engine == nil {
		return nil, fmt.Errorf("capture: engine is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("capture: logger is nil")
	}
	if progress == nil {
		progress = io.Discard
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.DefaultOutputDir == "" {
		cfg.DefaultOutputDir = DefaultOutputDir
	}
	return &Runner{
		cfg:      cfg,
		engine:   engine,
		logger:   logger.With(logging.Field{Key: "component", Value: "capture"}),
		progress: progress,
	}, nil
}

// Capture runs req and returns the absolute path of the written PNG.
// The browser session is closed on every exit path before Capture returns.
func (r *Runner) Capture(ctx context.Context, req Request) (path string, err error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	log := r.logger.With(
		logging.Field{Key: "run_id", Value: uuid.New().String()},
		logging.Field{Key: "url", Value: req.URL},
		logging.Field{Key: "strategy", Value: string(req.Strategy())},
	)
	lc := &lifecycle{current: StateIdle, logger: log, observer: r.OnTransition}

	lc.to(StateLaunching)
	session, err := r.engine.Launch(ctx, browser.SessionOptions{
		ViewportWidth:  r.cfg.ViewportWidth,
		ViewportHeight: r.cfg.ViewportHeight,
		UserAgent:      r.cfg.UserAgent,
	})
	if err != nil {
		lc.to(StateFailed)
		return "", newError(ErrLaunch, "launch", err)
	}

	defer func() {
		lc.to(StateClosingSession)
		// a close failure does not undo a written image
		if cerr := session.Close(); cerr != nil {
			log.Warn("closing browser session", logging.Field{Key: "error", Value: cerr})
		}
		if err != nil {
			log.Debug("capture failed", logging.Field{Key: "error", Value: err})
			lc.to(StateFailed)
			return
		}
		lc.to(StateDone)
	}()

	fmt.Fprintf(r.progress, "Navigating to %s...\n", req.URL)
	lc.to(StateNavigating)
	if err := session.Navigate(ctx, req.URL, r.cfg.NavigationTimeout); err != nil {
		return "", newError(ErrNavigation, "navigate", err)
	}

	lc.to(StateSettling)
	if err := session.Wait(ctx, r.cfg.SettleDelay); err != nil {
		return "", newError(ErrCapture, "settle", err)
	}

	dir := req.OutputDir
	if dir == "" {
		dir = r.cfg.DefaultOutputDir
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", newError(ErrFilesystem, "resolve output dir", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", newError(ErrFilesystem, "create output dir", err)
	}

	path = filepath.Join(dir, req.FileName(r.cfg.Clock()))

	lc.to(StateCapturing)
	data, err := r.shoot(ctx, session, req)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", newError(ErrFilesystem, "write image", err)
	}

	fmt.Fprintf(r.progress, "Screenshot saved to: %s\n", path)
	log.Info("screenshot saved",
		logging.Field{Key: "path", Value: path},
		logging.Field{Key: "bytes", Value: len(data)})
	return path, nil
}

func (r *Runner) shoot(ctx context.Context, session browser.Session, req Request) ([]byte, error) {
	if r.cfg.CaptureTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.CaptureTimeout)
		defer cancel()
	}

	var (
		data []byte
		err  error
	)
	switch req.Strategy() {
	case StrategyElement:
		fmt.Fprintf(r.progress, "Capturing element: %s\n", req.Selector)
		data, err = session.CaptureElement(ctx, req.Selector)
		if errors.Is(err, browser.ErrElementNotFound) {
			return nil, newError(ErrElementNotFound, "capture element", err)
		}
	case StrategyFullPage:
		fmt.Fprintln(r.progress, "Capturing full page...")
		data, err = session.CapturePage(ctx, true)
	default:
		fmt.Fprintln(r.progress, "Capturing viewport...")
		data, err = session.CapturePage(ctx, false)
	}
	if err != nil {
		return nil, newError(ErrCapture, "capture "+string(req.Strategy()), err)
	}
	if len(data) == 0 {
		return nil, newError(ErrCapture, "capture "+string(req.Strategy()), fmt.Errorf("engine returned an empty image"))
	}
	return data, nil
}
