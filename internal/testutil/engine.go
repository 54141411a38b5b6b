package testutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/webshot/internal/browser"
)

// ─── Engine ────────────────────────────────────────────────────────────

// Fake image sizes. Viewport captures use the session viewport; full-page
// captures are FullPageHeight tall; element captures are ElementWidth x
// ElementHeight. Tests decode the PNG to tell the capture paths apart.
const (
	FullPageHeight = 3000
	ElementWidth   = 200
	ElementHeight  = 120
)

// DummyEngine implements browser.Engine without a browser. Navigate fetches
// the URL over HTTP and keeps the parsed document, so selectors resolve
// against real HTML with goquery.
type DummyEngine struct {
	// Client fetches pages; nil uses http.DefaultClient.
	Client *http.Client

	// Pages serves HTML by URL without touching the network. Checked
	// before Client.
	Pages map[string]string

	LaunchErr   error
	NavigateErr error
	CaptureErr  error
	CloseErr    error

	mu       sync.Mutex
	Sessions []*DummySession
}

func (e *DummyEngine) Name() string { return "dummy" }

func (e *DummyEngine) Launch(ctx context.Context, opts browser.SessionOptions) (browser.Session, error) {
	if e.LaunchErr != nil {
		return nil, e.LaunchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &DummySession{engine: e, Options: opts}
	e.mu.Lock()
	e.Sessions = append(e.Sessions, s)
	e.mu.Unlock()
	return s, nil
}

// LastSession returns the most recently launched session, or nil.
func (e *DummyEngine) LastSession() *DummySession {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Sessions) == 0 {
		return nil
	}
	return e.Sessions[len(e.Sessions)-1]
}

// DummySession records the calls made on it.
type DummySession struct {
	engine  *DummyEngine
	Options browser.SessionOptions

	mu     sync.Mutex
	doc    *goquery.Document
	Calls  []string
	Waited []time.Duration
	Closed int
}

func (s *DummySession) call(name string) {
	s.mu.Lock()
	s.Calls = append(s.Calls, name)
	s.mu.Unlock()
}

// CallNames returns a copy of the recorded call names.
func (s *DummySession) CallNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Calls...)
}

func (s *DummySession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	s.call("navigate")
	if s.engine.NavigateErr != nil {
		return fmt.Errorf("%w: %s: %v", browser.ErrNavigation, url, s.engine.NavigateErr)
	}

	if html, ok := s.engine.Pages[url]; ok {
		return s.load(bytes.NewReader([]byte(html)))
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", browser.ErrNavigation, url, err)
	}
	req.Header.Set("User-Agent", s.Options.UserAgent)
	client := s.engine.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", browser.ErrNavigation, url, err)
	}
	defer resp.Body.Close()
	// like a browser, an HTTP error status still renders a page
	return s.load(resp.Body)
}

func (s *DummySession) load(r io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("%w: parse document: %v", browser.ErrNavigation, err)
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

func (s *DummySession) Wait(ctx context.Context, d time.Duration) error {
	s.call("wait")
	s.mu.Lock()
	s.Waited = append(s.Waited, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *DummySession) CaptureElement(ctx context.Context, selector string) ([]byte, error) {
	s.call("capture_element")
	if s.engine.CaptureErr != nil {
		return nil, s.engine.CaptureErr
	}
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()
	if doc == nil {
		return nil, fmt.Errorf("capture before navigate")
	}
	// invalid selectors match nothing in goquery
	if doc.Find(selector).First().Length() == 0 {
		return nil, fmt.Errorf("%w: %q", browser.ErrElementNotFound, selector)
	}
	return encodePNG(ElementWidth, ElementHeight)
}

func (s *DummySession) CapturePage(ctx context.Context, fullPage bool) ([]byte, error) {
	if fullPage {
		s.call("capture_fullpage")
	} else {
		s.call("capture_viewport")
	}
	if s.engine.CaptureErr != nil {
		return nil, s.engine.CaptureErr
	}
	height := s.Options.ViewportHeight
	if fullPage {
		height = FullPageHeight
	}
	return encodePNG(s.Options.ViewportWidth, height)
}

func (s *DummySession) Close() error {
	s.call("close")
	s.mu.Lock()
	s.Closed++
	s.mu.Unlock()
	return s.engine.CloseErr
}

func encodePNG(w, h int) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
