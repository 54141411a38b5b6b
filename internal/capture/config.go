package capture

import "time"

const (
	DefaultOutputDir = "public/assets/screenshots"

	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config holds the fixed parameters of every capture. Tests substitute
// shorter delays and a fake clock.
type Config struct {
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string

	// NavigationTimeout bounds navigation including the network-idle wait.
	NavigationTimeout time.Duration

	// SettleDelay is waited after navigation for deferred rendering.
	SettleDelay time.Duration

	// CaptureTimeout bounds the screenshot call itself. Zero means unbounded.
	CaptureTimeout time.Duration

	// DefaultOutputDir is used when a request has no OutputDir.
	DefaultOutputDir string

	// Clock supplies the time used for generated file names.
	Clock func() time.Time
}

func DefaultConfig() Config {
	return Config{
		ViewportWidth:     1200,
		ViewportHeight:    800,
		UserAgent:         DefaultUserAgent,
		NavigationTimeout: 30 * time.Second,
		SettleDelay:       2000 * time.Millisecond,
		CaptureTimeout:    30 * time.Second,
		DefaultOutputDir:  DefaultOutputDir,
		Clock:             time.Now,
	}
}
