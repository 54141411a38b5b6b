package capture_test

import (
	"errors"
	"testing"
	"time"

	"github.com/raysh454/webshot/internal/capture"
)

func TestRequest_Strategy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		req  capture.Request
		want capture.Strategy
	}{
		{"default is viewport", capture.Request{URL: "u"}, capture.StrategyViewport},
		{"full page", capture.Request{URL: "u", FullPage: true}, capture.StrategyFullPage},
		{"selector", capture.Request{URL: "u", Selector: "#a"}, capture.StrategyElement},
		{"selector wins over full page", capture.Request{URL: "u", Selector: "#a", FullPage: true}, capture.StrategyElement},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.req.Strategy(); got != tt.want {
				t.Errorf("Strategy() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequest_FileName_UsesOutput(t *testing.T) {
	t.Parallel()
	req := capture.Request{URL: "u", Output: "foo"}
	if got := req.FileName(time.Now()); got != "foo.png" {
		t.Errorf("FileName() = %q, want foo.png", got)
	}
}

func TestRequest_FileName_TimestampFallback(t *testing.T) {
	t.Parallel()
	now := time.UnixMilli(1700000000123)
	req := capture.Request{URL: "u"}
	if got := req.FileName(now); got != "screenshot_1700000000123.png" {
		t.Errorf("FileName() = %q", got)
	}
}

// TestRequest_FileName_DistinctPerMillisecond verifies two requests 1ms apart
// never share a generated name.
func TestRequest_FileName_DistinctPerMillisecond(t *testing.T) {
	t.Parallel()
	base := time.UnixMilli(1700000000000)
	req := capture.Request{URL: "u"}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name := req.FileName(base.Add(time.Duration(i) * time.Millisecond))
		if seen[name] {
			t.Fatalf("duplicate file name %q", name)
		}
		seen[name] = true
	}
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()
	for _, u := range []string{"", "   "} {
		err := capture.Request{URL: u}.Validate()
		if !errors.Is(err, capture.ErrInvalidArgument) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidArgument", u, err)
		}
	}
	if err := (capture.Request{URL: "https://example.com"}).Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}
