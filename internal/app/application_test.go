package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raysh454/webshot/internal/app"
	"github.com/raysh454/webshot/internal/testutil"
)

const pageURL = "https://example.com"

func fakeEngine() *testutil.DummyEngine {
	return &testutil.DummyEngine{Pages: map[string]string{
		pageURL: `<html><body><main id="main">hello</main></body></html>`,
	}}
}

const fastSettle = "1ms"

func runMain(t *testing.T, engine *testutil.DummyEngine, env map[string]string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	deps := app.Deps{
		Stdout:    &stdout,
		Stderr:    &stderr,
		LookupEnv: envMap(env),
	}
	if engine != nil {
		deps.Engine = engine
	}
	code := app.Main(context.Background(), args, deps)
	return code, stdout.String(), stderr.String()
}

func TestMain_FullPageDefaultDir(t *testing.T) {
	t.Chdir(t.TempDir())
	engine := fakeEngine()

	code, stdout, stderr := runMain(t, engine, nil, pageURL, "--output", "home", "--full-page", "--settle", fastSettle)
	if code != app.ExitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	wd, _ := os.Getwd()
	want := filepath.Join(wd, "public", "assets", "screenshots", "home.png")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
	if !strings.Contains(stdout, want) {
		t.Errorf("stdout does not print the saved path:\n%s", stdout)
	}
	calls := engine.LastSession().CallNames()
	if calls[2] != "capture_fullpage" {
		t.Errorf("calls = %v, want a full page capture", calls)
	}
}

func TestMain_MissingURL(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	engine := fakeEngine()

	code, _, stderr := runMain(t, engine, map[string]string{app.EnvOutputDir: dir}, "--output", "x")
	if code != app.ExitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Usage: webshot <URL>") {
		t.Errorf("stderr lacks usage:\n%s", stderr)
	}
	if engine.LastSession() != nil {
		t.Error("browser launched without a URL")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("files written: %v", entries)
	}
}

func TestMain_SelectorMissing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	code, stdout, stderr := runMain(t, fakeEngine(), nil, pageURL, "--selector", "#missing", "--output-dir", dir, "--settle", fastSettle)
	if code != app.ExitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Failed to capture screenshot") || !strings.Contains(stderr, "element not found") {
		t.Errorf("stderr = %q", stderr)
	}
	if strings.Contains(stdout, "Screenshot saved") {
		t.Errorf("stdout reports success:\n%s", stdout)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.png"))
	if len(matches) != 0 {
		t.Errorf("files written: %v", matches)
	}
}

func TestMain_SelectorFound(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	code, stdout, stderr := runMain(t, fakeEngine(), nil, pageURL, "--selector", "#main", "--output", "main", "--output-dir", dir, "--settle", fastSettle)
	if code != app.ExitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "Capturing element: #main") {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "main.png")); err != nil {
		t.Error(err)
	}
}

func TestMain_UnknownFlagRejected(t *testing.T) {
	t.Parallel()
	engine := fakeEngine()
	code, _, stderr := runMain(t, engine, nil, pageURL, "--no-such-flag")
	if code != app.ExitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "no-such-flag") {
		t.Errorf("stderr = %q", stderr)
	}
	if engine.LastSession() != nil {
		t.Error("browser launched for invalid arguments")
	}
}

func TestMain_HelpAndVersion(t *testing.T) {
	t.Parallel()
	code, stdout, _ := runMain(t, nil, nil, "--help")
	if code != app.ExitOK || !strings.Contains(stdout, "Usage:") {
		t.Errorf("--help: code=%d stdout=%q", code, stdout)
	}
	code, stdout, _ = runMain(t, nil, nil, "--version")
	if code != app.ExitOK || !strings.Contains(stdout, app.Version) {
		t.Errorf("--version: code=%d stdout=%q", code, stdout)
	}
}

// TestMain_UnknownEngine goes through the backend registry, which fails
// before any browser is started.
func TestMain_UnknownEngine(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	code := app.Main(context.Background(), []string{pageURL, "--engine", "netscape"}, app.Deps{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if code != app.ExitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), `"netscape" not registered`) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestMain_BadEnvironment(t *testing.T) {
	t.Parallel()
	code, _, stderr := runMain(t, fakeEngine(), map[string]string{app.EnvLogLevel: "loud"}, pageURL)
	if code != app.ExitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, app.EnvLogLevel) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestMain_VerboseLogsToStderr(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	code, stdout, stderr := runMain(t, fakeEngine(), nil, pageURL, "--output-dir", dir, "--settle", fastSettle, "--verbose")
	if code != app.ExitOK {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stderr, `"msg":"state transition"`) {
		t.Errorf("expected debug JSON logs on stderr:\n%s", stderr)
	}
	if strings.Contains(stdout, `"level"`) {
		t.Errorf("structured logs leaked to stdout:\n%s", stdout)
	}
}
