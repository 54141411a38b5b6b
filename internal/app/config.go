package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raysh454/webshot/internal/browser"
	"github.com/raysh454/webshot/internal/capture"
	"github.com/raysh454/webshot/internal/cli"
	"github.com/raysh454/webshot/internal/logging"
)

// Config aggregates the per-package configuration used by one invocation.
type Config struct {
	// Capture configuration
	CaptureCfg capture.Config

	// Browser engine configuration
	BrowserCfg browser.Config

	// Logging configuration
	LogCfg logging.Config
}

// DefaultConfig returns a Config populated with the CLI defaults.
func DefaultConfig() *Config {
	return &Config{
		CaptureCfg: capture.DefaultConfig(),
		BrowserCfg: browser.DefaultConfig(),
		LogCfg: logging.Config{
			Level:     logging.LevelWarn,
			Component: "webshot",
		},
	}
}

// Environment variables read by ApplyEnv. CHROME_BIN is read by the browser
// package directly.
const (
	EnvEngine    = "WEBSHOT_ENGINE"
	EnvExecPath  = "WEBSHOT_CHROME_PATH"
	EnvOutputDir = "WEBSHOT_OUTPUT_DIR"
	EnvLogLevel  = "WEBSHOT_LOG_LEVEL"
	EnvNoSandbox = "WEBSHOT_NO_SANDBOX"
	EnvHeadless  = "WEBSHOT_HEADLESS"
)

// ApplyEnv overrides defaults from the environment. lookup has the shape of
// os.LookupEnv; a nil lookup leaves cfg untouched.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvEngine); ok {
		c.BrowserCfg.Backend = browser.Backend(strings.ToLower(v))
	}
	if v, ok := get(EnvExecPath); ok {
		c.BrowserCfg.ExecPath = v
	}
	if v, ok := get(EnvOutputDir); ok {
		c.CaptureCfg.DefaultOutputDir = v
	}
	if v, ok := get(EnvLogLevel); ok {
		lvl, err := logging.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogCfg.Level = lvl
	}
	if v, ok := get(EnvNoSandbox); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNoSandbox, err)
		}
		c.BrowserCfg.NoSandbox = b
	}
	if v, ok := get(EnvHeadless); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHeadless, err)
		}
		c.BrowserCfg.Headless = b
	}
	return nil
}

// ApplyArgs lets explicit command-line flags win over defaults and env.
func (c *Config) ApplyArgs(args *cli.CLIArgs) {
	if args == nil {
		return
	}
	if args.Engine != "" {
		c.BrowserCfg.Backend = browser.Backend(strings.ToLower(args.Engine))
	}
	if args.Width > 0 {
		c.CaptureCfg.ViewportWidth = args.Width
	}
	if args.Height > 0 {
		c.CaptureCfg.ViewportHeight = args.Height
	}
	if args.Timeout > 0 {
		c.CaptureCfg.NavigationTimeout = args.Timeout
	}
	if args.Settle > 0 {
		c.CaptureCfg.SettleDelay = args.Settle
	}
	if args.UserAgent != "" {
		c.CaptureCfg.UserAgent = args.UserAgent
	}
	if args.Verbose {
		c.LogCfg.Level = logging.LevelDebug
	}
}
