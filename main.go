// Command webshot navigates a headless browser to a URL and saves a PNG
// screenshot of the viewport, the full page or a single element.
//
// Usage:
//
//	webshot <url> [--output NAME] [--selector CSS_SELECTOR] [--full-page] [--output-dir DIR]
//
// Examples:
//
//	webshot https://example.com --output home --full-page
//	webshot https://example.com --selector "#header"
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raysh454/webshot/internal/app"
)

func main() {
	// An interrupt cancels the capture so the browser still gets closed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.Main(ctx, os.Args[1:], app.Deps{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
	})
	stop()
	os.Exit(code)
}
