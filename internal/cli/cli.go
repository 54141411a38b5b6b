package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/raysh454/webshot/internal/capture"
)

// CLIArgs are the command-line arguments of a single capture.
// Zero values mean "use the configured default".
type CLIArgs struct {
	// URL is the first positional argument.
	URL string

	Output    string
	Selector  string
	FullPage  bool
	OutputDir string

	Engine    string
	Width     int
	Height    int
	Timeout   time.Duration
	Settle    time.Duration
	UserAgent string
	Verbose   bool

	ShowHelp    bool
	ShowVersion bool

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// Request converts the parsed arguments into a capture request.
func (a *CLIArgs) Request() capture.Request {
	return capture.Request{
		URL:       a.URL,
		Output:    a.Output,
		Selector:  a.Selector,
		FullPage:  a.FullPage,
		OutputDir: a.OutputDir,
	}
}

// ParseArgs parses a slice of args (without the program name). The URL must
// come first; flags follow it. Unknown flags, flags missing their value and
// stray positional arguments are rejected with capture.ErrInvalidArgument.
// The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "-help", "--help", "help":
			return &CLIArgs{ShowHelp: true, RawArgs: args}, nil
		case "-v", "-version", "--version", "version":
			return &CLIArgs{ShowVersion: true, RawArgs: args}, nil
		}
	}
	if len(args) == 0 || strings.HasPrefix(args[0], "--") {
		return nil, fmt.Errorf("%w: missing URL argument", capture.ErrInvalidArgument)
	}

	out := &CLIArgs{URL: args[0], RawArgs: args}

	fs := flag.NewFlagSet("webshot", flag.ContinueOnError)
	// Ensure Parse doesn't write to stdout/stderr; the caller prints usage
	fs.SetOutput(io.Discard)
	fs.StringVar(&out.Output, "output", "", "")
	fs.StringVar(&out.Selector, "selector", "", "")
	fs.BoolVar(&out.FullPage, "full-page", false, "")
	fs.StringVar(&out.OutputDir, "output-dir", "", "")
	fs.StringVar(&out.Engine, "engine", "", "")
	fs.IntVar(&out.Width, "width", 0, "")
	fs.IntVar(&out.Height, "height", 0, "")
	fs.DurationVar(&out.Timeout, "timeout", 0, "")
	fs.DurationVar(&out.Settle, "settle", 0, "")
	fs.StringVar(&out.UserAgent, "user-agent", "", "")
	fs.BoolVar(&out.Verbose, "verbose", false, "")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, fmt.Errorf("%w: %v", capture.ErrInvalidArgument, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", capture.ErrInvalidArgument, fs.Arg(0))
	}
	if out.Width < 0 || out.Height < 0 {
		return nil, fmt.Errorf("%w: viewport size must be positive", capture.ErrInvalidArgument)
	}
	if out.Timeout < 0 || out.Settle < 0 {
		return nil, fmt.Errorf("%w: durations must not be negative", capture.ErrInvalidArgument)
	}
	return out, nil
}

// Usage is the help text printed on -h and on invalid arguments.
const Usage = `Usage: webshot <URL> [--output NAME] [--selector CSS_SELECTOR] [--full-page] [--output-dir DIR]

Capture a PNG screenshot of a web page with a headless browser.

Options:
  --output NAME          base file name without extension (default: screenshot_<epoch ms>)
  --selector SELECTOR    capture only the first element matching the CSS selector
  --full-page            capture the whole scrollable page (ignored with --selector)
  --output-dir DIR       destination directory (default: public/assets/screenshots)
  --engine NAME          browser backend: chromedp or rod (default: chromedp)
  --width N, --height N  viewport size in pixels (default: 1200x800)
  --timeout DURATION     navigation timeout (default: 30s)
  --settle DURATION      delay after navigation for deferred rendering (default: 2s)
  --user-agent UA        override the desktop user agent
  --verbose              write debug logs to stderr

Examples:
  webshot https://example.com
  webshot https://example.com --output home --full-page
  webshot https://example.com --selector "#header"
`
