package cli_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/raysh454/webshot/internal/capture"
	"github.com/raysh454/webshot/internal/cli"
)

func TestParseArgs_Valid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want cli.CLIArgs
	}{
		{
			name: "url only",
			args: []string{"https://example.com"},
			want: cli.CLIArgs{URL: "https://example.com"},
		},
		{
			name: "all original flags",
			args: []string{"https://example.com", "--output", "home", "--selector", "#main", "--full-page", "--output-dir", "out/shots"},
			want: cli.CLIArgs{URL: "https://example.com", Output: "home", Selector: "#main", FullPage: true, OutputDir: "out/shots"},
		},
		{
			name: "equals form and single dash",
			args: []string{"https://example.com", "--output=home", "-full-page"},
			want: cli.CLIArgs{URL: "https://example.com", Output: "home", FullPage: true},
		},
		{
			name: "supplemental flags",
			args: []string{"https://example.com", "--engine", "rod", "--width", "800", "--height", "600", "--timeout", "10s", "--settle", "500ms", "--user-agent", "ua", "--verbose"},
			want: cli.CLIArgs{
				URL: "https://example.com", Engine: "rod", Width: 800, Height: 600,
				Timeout: 10 * time.Second, Settle: 500 * time.Millisecond, UserAgent: "ua", Verbose: true,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := cli.ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("ParseArgs: %v", err)
			}
			got.RawArgs = nil
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ParseArgs() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"flag before url", []string{"--output", "x"}},
		{"unknown flag", []string{"https://example.com", "--bogus"}},
		{"missing flag value", []string{"https://example.com", "--output"}},
		{"stray positional", []string{"https://example.com", "extra"}},
		{"negative width", []string{"https://example.com", "--width", "-1"}},
		{"bad duration", []string{"https://example.com", "--timeout", "soon"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := cli.ParseArgs(tt.args)
			if err == nil {
				t.Fatalf("expected error, got %+v", got)
			}
			if !errors.Is(err, capture.ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestParseArgs_HelpAndVersion(t *testing.T) {
	t.Parallel()
	for _, arg := range []string{"-h", "--help", "help"} {
		got, err := cli.ParseArgs([]string{arg})
		if err != nil || !got.ShowHelp {
			t.Errorf("ParseArgs(%q) = %+v, %v; want ShowHelp", arg, got, err)
		}
	}
	for _, arg := range []string{"-v", "--version"} {
		got, err := cli.ParseArgs([]string{arg})
		if err != nil || !got.ShowVersion {
			t.Errorf("ParseArgs(%q) = %+v, %v; want ShowVersion", arg, got, err)
		}
	}
}

func TestCLIArgs_Request(t *testing.T) {
	t.Parallel()
	args, err := cli.ParseArgs([]string{"https://example.com", "--output", "x", "--selector", ".a", "--output-dir", "d"})
	if err != nil {
		t.Fatal(err)
	}
	want := capture.Request{URL: "https://example.com", Output: "x", Selector: ".a", OutputDir: "d"}
	if got := args.Request(); got != want {
		t.Errorf("Request() = %+v, want %+v", got, want)
	}
}
