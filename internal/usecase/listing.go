package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/football-portal/internal/platform/listing"
)

// ListRequest carries the filters and window of one list view.
type ListRequest struct {
	State  listing.FilterState
	Window listing.Window
}

// ListOptions tune every list page.
type ListOptions struct {
	Window        listing.WindowConfig
	LoadMoreDelay time.Duration
}

func DefaultListOptions() ListOptions {
	return ListOptions{Window: listing.DefaultWindowConfig()}
}

func (o ListOptions) normalize() ListOptions {
	o.Window = listing.NormalizeWindowConfig(o.Window)
	if o.LoadMoreDelay < 0 {
		o.LoadMoreDelay = 0
	}
	return o
}

// window returns the request window, synced to the request filters. A
// request without a window starts at the initial size.
func (o ListOptions) window(req ListRequest) listing.Window {
	w := req.Window
	if w.Config().Initial <= 0 {
		return listing.NewWindow(o.Window, req.State)
	}
	w.Sync(req.State)
	return w
}

func derivePage[T any](
	ctx context.Context,
	opts ListOptions,
	source []T,
	pred listing.Predicate[T],
	cmp listing.Comparator[T],
	req ListRequest,
) (listing.Page[T], error) {
	window := opts.window(req)
	if err := listing.Pause(ctx, window, opts.LoadMoreDelay); err != nil {
		return listing.Page[T]{}, err
	}
	return listing.Derive(source, pred, cmp, window), nil
}

// facetValues lists the distinct non-empty values of field in folded order,
// keeping the first spelling seen.
func facetValues[T any](items []T, field func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, item := range items {
		value := strings.TrimSpace(field(item))
		if value == "" {
			continue
		}
		key := listing.Fold(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, value)
	}
	return listing.Sort[string](out, listing.CompareFold)
}
