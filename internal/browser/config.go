package browser

import "time"

type Backend string

const (
	BackendChromedp Backend = "chromedp"
	BackendRod      Backend = "rod"
)

// Config selects and tunes the engine backend.
type Config struct {
	Backend Backend

	// ExecPath is the browser binary. Empty means ResolveExecPath decides.
	ExecPath string

	Headless  bool
	NoSandbox bool

	// IdleQuiet is the network quiet period that defines "idle".
	IdleQuiet time.Duration
}

// DefaultConfig returns the headless chromedp setup used by the CLI.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendChromedp,
		Headless:  true,
		NoSandbox: true,
		IdleQuiet: 500 * time.Millisecond,
	}
}
