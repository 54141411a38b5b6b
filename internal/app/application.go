package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/raysh454/webshot/internal/browser"
	"github.com/raysh454/webshot/internal/capture"
	"github.com/raysh454/webshot/internal/cli"
	"github.com/raysh454/webshot/internal/logging"
)

// Version is the CLI version reported by --version.
const Version = "1.0.0"

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Application holds the parts of one invocation. Pass already-constructed
// parts so tests can swap the engine.
type Application struct {
	Config *Config
	Args   *cli.CLIArgs
	Logger logging.Logger
	Engine browser.Engine
	Stdout io.Writer
}

func NewApplication(cfg *Config, args *cli.CLIArgs, logger logging.Logger, engine browser.Engine, stdout io.Writer) *Application {
	return &Application{
		Config: cfg,
		Args:   args,
		Logger: logger,
		Engine: engine,
		Stdout: stdout,
	}
}

// Run performs the capture described by Args and returns the saved path.
func (a *Application) Run(ctx context.Context) (string, error) {
	if a == nil {
		return "", errors.New("application is nil")
	}
	runner, err := capture.NewRunner(a.Config.CaptureCfg, a.Engine, a.Logger, a.Stdout)
	if err != nil {
		return "", err
	}
	a.Logger.Debug("starting capture",
		logging.Field{Key: "engine", Value: a.Engine.Name()},
		logging.Field{Key: "target", Value: a.Args.URL})
	return runner.Capture(ctx, a.Args.Request())
}

// Deps are the process-level collaborators of Main.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv has the shape of os.LookupEnv. Nil ignores the environment.
	LookupEnv func(string) (string, bool)

	// Engine overrides the registry lookup when set.
	Engine browser.Engine
}

// Main parses argv (without the program name), performs one capture and
// returns the process exit code.
func Main(ctx context.Context, argv []string, deps Deps) int {
	stdout, stderr := deps.Stdout, deps.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	args, err := cli.ParseArgs(argv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, cli.Usage)
		return ExitFailure
	}
	if args.ShowHelp {
		fmt.Fprint(stdout, cli.Usage)
		return ExitOK
	}
	if args.ShowVersion {
		fmt.Fprintf(stdout, "webshot v%s\n", Version)
		return ExitOK
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(deps.LookupEnv); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitFailure
	}
	cfg.ApplyArgs(args)

	logger := logging.NewLogger(cfg.LogCfg, stderr)

	engine := deps.Engine
	if engine == nil {
		browser.RegisterDefaultBackends()
		engine, err = browser.NewEngine(cfg.BrowserCfg, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitFailure
		}
	}

	application := NewApplication(cfg, args, logger, engine, stdout)
	// the runner prints the saved path as its last progress line
	if _, err := application.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Failed to capture screenshot: %v\n", err)
		return ExitFailure
	}
	return ExitOK
}
