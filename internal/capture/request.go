package capture

import (
	"fmt"
	"strings"
	"time"
)

// Strategy is the capture path a request takes.
type Strategy string

const (
	StrategyElement  Strategy = "element"
	StrategyFullPage Strategy = "fullpage"
	StrategyViewport Strategy = "viewport"
)

// Request describes one capture. It lives for a single Runner.Capture call.
type Request struct {
	URL string

	// Output is the base file name without extension. Empty means a
	// timestamp-derived name chosen when the path is computed.
	Output string

	// Selector restricts the capture to the first matching element.
	Selector string

	// FullPage captures the whole scrollable page. Ignored with Selector.
	FullPage bool

	// OutputDir overrides Config.DefaultOutputDir.
	OutputDir string
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return newError(ErrInvalidArgument, "validate", fmt.Errorf("url is required"))
	}
	return nil
}

// Strategy picks exactly one capture path: element when a selector is set,
// else full page or viewport.
func (r Request) Strategy() Strategy {
	switch {
	case r.Selector != "":
		return StrategyElement
	case r.FullPage:
		return StrategyFullPage
	default:
		return StrategyViewport
	}
}

// FileName returns "<Output>.png", or "screenshot_<epoch millis>.png" taken
// from now when Output is empty.
func (r Request) FileName(now time.Time) string {
	name := r.Output
	if name == "" {
		name = fmt.Sprintf("screenshot_%d", now.UnixMilli())
	}
	return name + ".png"
}
