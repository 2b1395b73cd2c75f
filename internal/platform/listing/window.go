package listing

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

type WindowConfig struct {
	Initial   int
	Increment int
	Max       int
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Initial:   20,
		Increment: 20,
		Max:       500,
	}
}

// NormalizeWindowConfig replaces non-positive fields with defaults and keeps
// Max >= Initial.
func NormalizeWindowConfig(cfg WindowConfig) WindowConfig {
	defaults := DefaultWindowConfig()
	if cfg.Initial < 1 {
		cfg.Initial = defaults.Initial
	}
	if cfg.Increment < 1 {
		cfg.Increment = defaults.Increment
	}
	if cfg.Max < 1 {
		cfg.Max = defaults.Max
	}
	if cfg.Max < cfg.Initial {
		cfg.Max = cfg.Initial
	}
	return cfg
}

// FilterState is the set of user-chosen filters for one list.
type FilterState struct {
	Query  string
	Facets map[string]string
}

func NewFilterState(query string, facets map[string]string) FilterState {
	return FilterState{Query: query, Facets: facets}
}

// Facet returns the trimmed facet value, or "" when it is inactive.
func (s FilterState) Facet(name string) string {
	value := strings.TrimSpace(s.Facets[name])
	if IsInactive(value) {
		return ""
	}
	return value
}

// Active reports whether any filter constrains the list.
func (s FilterState) Active() bool {
	if !IsInactive(s.Query) {
		return true
	}
	for name := range s.Facets {
		if s.Facet(name) != "" {
			return true
		}
	}
	return false
}

// Key is a deterministic encoding of the active filters. Two states with the
// same key select the same items.
func (s FilterState) Key() string {
	values := url.Values{}
	if !IsInactive(s.Query) {
		values.Set("q", Fold(s.Query))
	}

	names := make([]string, 0, len(s.Facets))
	for name := range s.Facets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := s.Facet(name); v != "" {
			values.Set("f."+strings.ToLower(name), Fold(v))
		}
	}

	return values.Encode()
}

// Window is the number of derived items currently revealed.
type Window struct {
	cfg  WindowConfig
	Size int
	key  string
}

func NewWindow(cfg WindowConfig, state FilterState) Window {
	cfg = NormalizeWindowConfig(cfg)
	return Window{cfg: cfg, Size: cfg.Initial, key: state.Key()}
}

// ParseWindow rebuilds a window from request parameters. A limit that is
// missing or invalid, or a key that no longer matches state, starts over at
// the initial size.
func ParseWindow(cfg WindowConfig, limitRaw, keyRaw string, state FilterState) Window {
	w := NewWindow(cfg, state)

	limitRaw = strings.TrimSpace(limitRaw)
	if limitRaw == "" || keyRaw != w.key {
		return w
	}
	limit, err := strconv.Atoi(limitRaw)
	if err != nil || limit < w.cfg.Initial {
		return w
	}

	w.Size = min(limit, w.cfg.Max)
	return w
}

func (w *Window) Config() WindowConfig {
	return w.cfg
}

func (w *Window) Key() string {
	return w.key
}

// More reveals one more increment, up to Max.
func (w *Window) More() {
	w.Size = w.peekMore()
}

func (w *Window) Reset() {
	w.Size = w.cfg.Initial
}

// Sync resets the window when state no longer matches the filters the window
// was opened for. It reports whether a reset happened.
func (w *Window) Sync(state FilterState) bool {
	key := state.Key()
	if key == w.key {
		return false
	}
	w.key = key
	w.Reset()
	return true
}

// Grown reports whether the window is past its initial size.
func (w *Window) Grown() bool {
	return w.Size > w.cfg.Initial
}

func (w *Window) peekMore() int {
	next := w.Size + w.cfg.Increment
	if w.cfg.Max > 0 && next > w.cfg.Max {
		next = w.cfg.Max
	}
	return next
}

// Pause sleeps for delay before revealing a grown window. It returns early
// with the context error when ctx ends first.
func Pause(ctx context.Context, w Window, delay time.Duration) error {
	if delay <= 0 || !w.Grown() {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
