package browser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/raysh454/webshot/internal/logging"
)

// BackendConstructor constructs an Engine given the config and logger.
type BackendConstructor func(cfg Config, logger logging.Logger) (Engine, error)

var (
	mu       sync.RWMutex
	registry = map[string]BackendConstructor{}
)

// RegisterBackend registers a named backend constructor. Name is lower-cased
// internally. Calling RegisterBackend with the same name overwrites the previous
// constructor.
func RegisterBackend(name string, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = ctor
}

// RegisterDefaultBackends registers the chromedp and rod backends.
// Call this early in main() to make backends available to NewEngine.
func RegisterDefaultBackends() {
	RegisterBackend(string(BackendChromedp), func(cfg Config, logger logging.Logger) (Engine, error) {
		return NewChromedpEngine(cfg, logger), nil
	})
	RegisterBackend(string(BackendRod), func(cfg Config, logger logging.Logger) (Engine, error) {
		return NewRodEngine(cfg, logger), nil
	})
}

// NewEngine constructs the configured backend. It returns an error if the
// named backend has not been registered.
func NewEngine(cfg Config, logger logging.Logger) (Engine, error) {
	backend := strings.ToLower(strings.TrimSpace(string(cfg.Backend)))
	if backend == "" {
		backend = string(BackendChromedp)
	}

	mu.RLock()
	ctor, ok := registry[backend]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("browser backend %q not registered: available backends=%v", backend, ListBackends())
	}

	e, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct browser backend %q: %w", backend, err)
	}
	if e == nil {
		return nil, errors.New("browser backend constructor returned nil")
	}
	return e, nil
}

// ListBackends returns the sorted list of registered backend names.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
