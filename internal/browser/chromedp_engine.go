package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/webshot/internal/logging"
)

// ChromedpEngine drives Chrome through chromedp. Every Launch starts its own
// browser process.
type ChromedpEngine struct {
	cfg    Config
	logger logging.Logger
}

func NewChromedpEngine(cfg Config, logger logging.Logger) *ChromedpEngine {
	return &ChromedpEngine{
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "backend", Value: string(BackendChromedp)}),
	}
}

func (e *ChromedpEngine) Name() string { return string(BackendChromedp) }

func (e *ChromedpEngine) Launch(ctx context.Context, opts SessionOptions) (Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(opts.UserAgent),
		chromedp.WindowSize(opts.ViewportWidth, opts.ViewportHeight),
		chromedp.Flag("disable-dbus", true),
	)
	if !e.cfg.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if e.cfg.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	if path := ResolveExecPath(e.cfg.ExecPath); path != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(path))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// The first Run starts the browser and ties its lifetime to tabCtx, so it
	// must not run on a context that expires. ctx only aborts the launch.
	stop := context.AfterFunc(ctx, tabCancel)
	err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.EmulateViewport(int64(opts.ViewportWidth), int64(opts.ViewportHeight)),
	)
	stop()
	if err != nil {
		tabCancel()
		allocCancel()
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	e.logger.Debug("chrome session started",
		logging.Field{Key: "viewport", Value: fmt.Sprintf("%dx%d", opts.ViewportWidth, opts.ViewportHeight)})

	quiet := opts.IdleQuiet
	if quiet <= 0 {
		quiet = e.cfg.IdleQuiet
	}
	return &chromedpSession{
		ctx:         tabCtx,
		allocCancel: allocCancel,
		idleQuiet:   quiet,
		logger:      e.logger,
	}, nil
}

type chromedpSession struct {
	ctx         context.Context
	allocCancel context.CancelFunc
	idleQuiet   time.Duration
	logger      logging.Logger

	closeOnce sync.Once
	closeErr  error
}

// bind derives an operation context from the tab context that is also
// cancelled when the caller's ctx is.
func (s *chromedpSession) bind(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	var opCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		opCtx, cancel = context.WithTimeout(s.ctx, timeout)
	} else {
		opCtx, cancel = context.WithCancel(s.ctx)
	}
	stop := context.AfterFunc(ctx, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}

func (s *chromedpSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := s.bind(ctx, timeout)
	defer cancel()

	w := watchNetworkIdle(navCtx, s.idleQuiet)
	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	// covers pages that issue no requests after the load event
	w.arm()

	select {
	case <-w.idle:
		return nil
	case <-navCtx.Done():
		return fmt.Errorf("%w: %s: waiting for network idle: %v", ErrNavigation, url, navCtx.Err())
	}
}

func (s *chromedpSession) Wait(ctx context.Context, d time.Duration) error {
	return sleep(ctx, d)
}

func (s *chromedpSession) CaptureElement(ctx context.Context, selector string) ([]byte, error) {
	opCtx, cancel := s.bind(ctx, 0)
	defer cancel()

	var nodes []*cdp.Node
	if err := chromedp.Run(opCtx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrElementNotFound, selector)
	}

	var buf []byte
	if err := chromedp.Run(opCtx, chromedp.Screenshot(selector, &buf, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("element screenshot %q: %w", selector, err)
	}
	return buf, nil
}

func (s *chromedpSession) CapturePage(ctx context.Context, fullPage bool) ([]byte, error) {
	opCtx, cancel := s.bind(ctx, 0)
	defer cancel()

	var buf []byte
	var action chromedp.Action
	if fullPage {
		// quality 100 makes chromedp encode PNG
		action = chromedp.FullScreenshot(&buf, 100)
	} else {
		action = chromedp.CaptureScreenshot(&buf)
	}
	if err := chromedp.Run(opCtx, action); err != nil {
		return nil, fmt.Errorf("page screenshot: %w", err)
	}
	return buf, nil
}

func (s *chromedpSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.ctx)
		s.allocCancel()
		s.logger.Debug("chrome session closed")
	})
	return s.closeErr
}

// idleWatcher reports when no request has been in flight for quiet.
type idleWatcher struct {
	quiet    time.Duration
	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	timer    *time.Timer
	once     sync.Once
	idle     chan struct{}
}

func watchNetworkIdle(ctx context.Context, quiet time.Duration) *idleWatcher {
	w := &idleWatcher{
		quiet:    quiet,
		inflight: make(map[network.RequestID]struct{}),
		idle:     make(chan struct{}),
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev := ev.(type) {
		case *network.EventRequestWillBeSent:
			w.started(ev.RequestID)
		case *network.EventLoadingFinished:
			w.finished(ev.RequestID)
		case *network.EventLoadingFailed:
			w.finished(ev.RequestID)
		}
	})
	return w
}

func (w *idleWatcher) started(id network.RequestID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inflight[id] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *idleWatcher) finished(id network.RequestID) {
	w.mu.Lock()
	delete(w.inflight, id)
	n := len(w.inflight)
	w.mu.Unlock()
	if n == 0 {
		w.arm()
	}
}

// arm (re)starts the quiet timer.
func (w *idleWatcher) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.quiet, func() {
		w.mu.Lock()
		n := len(w.inflight)
		w.mu.Unlock()
		if n == 0 {
			w.once.Do(func() { close(w.idle) })
		}
	})
}
