package demoserver

import "time"

// Config holds configuration for the fixture server.
type Config struct {
	// Port is the port on which the server listens.
	Port int

	// AssetDelay is how long /assets/slow.png stalls before responding.
	AssetDelay time.Duration

	// DeferredDelay is how long /deferred waits before injecting its element.
	DeferredDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:          9999,
		AssetDelay:    1500 * time.Millisecond,
		DeferredDelay: 1 * time.Second,
	}
}
