package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/raysh454/webshot/internal/logging"
)

// RodEngine drives Chrome through go-rod.
type RodEngine struct {
	cfg    Config
	logger logging.Logger
}

func NewRodEngine(cfg Config, logger logging.Logger) *RodEngine {
	return &RodEngine{
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "backend", Value: string(BackendRod)}),
	}
}

func (e *RodEngine) Name() string { return string(BackendRod) }

func (e *RodEngine) Launch(ctx context.Context, opts SessionOptions) (Session, error) {
	l := launcher.New().
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Headless(e.cfg.Headless).
		NoSandbox(e.cfg.NoSandbox)
	if path := ResolveExecPath(e.cfg.ExecPath); path != "" {
		l = l.Bin(path)
	} else if path, found := launcher.LookPath(); found {
		l = l.Bin(path)
	}

	controlURL, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	s := &rodSession{launcher: l, browser: b, logger: e.logger}
	s.idleQuiet = opts.IdleQuiet
	if s.idleQuiet <= 0 {
		s.idleQuiet = e.cfg.IdleQuiet
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	s.page = page

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.ViewportWidth,
		Height:            opts.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	e.logger.Debug("rod session started", logging.Field{Key: "control_url", Value: controlURL})
	return s, nil
}

type rodSession struct {
	launcher  *launcher.Launcher
	browser   *rod.Browser
	page      *rod.Page
	idleQuiet time.Duration
	logger    logging.Logger

	closeOnce sync.Once
	closeErr  error
}

func (s *rodSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	p := s.page.Context(navCtx)

	waitIdle := p.WaitRequestIdle(s.idleQuiet, nil, nil, nil)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	// returns early, without error, once navCtx is done
	waitIdle()
	if err := navCtx.Err(); err != nil {
		return fmt.Errorf("%w: %s: waiting for network idle: %v", ErrNavigation, url, err)
	}
	return nil
}

func (s *rodSession) Wait(ctx context.Context, d time.Duration) error {
	return sleep(ctx, d)
}

func (s *rodSession) CaptureElement(ctx context.Context, selector string) ([]byte, error) {
	// Elements does not wait for a match, unlike Element.
	els, err := s.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if els.Empty() {
		return nil, fmt.Errorf("%w: %q", ErrElementNotFound, selector)
	}
	data, err := els.First().Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("element screenshot %q: %w", selector, err)
	}
	return data, nil
}

func (s *rodSession) CapturePage(ctx context.Context, fullPage bool) ([]byte, error) {
	data, err := s.page.Context(ctx).Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("page screenshot: %w", err)
	}
	return data, nil
}

func (s *rodSession) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.closeErr = errors.Join(errs...)
		s.logger.Debug("rod session closed")
	})
	return s.closeErr
}
