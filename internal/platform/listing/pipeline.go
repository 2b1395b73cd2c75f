// Package listing derives display lists from fetched collections:
// filter, then sort, then cut to the current window.
package listing

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Comparator orders two items. It follows the slices.SortFunc contract.
type Comparator[T any] func(a, b T) int

// Predicate reports whether an item is kept. A nil Predicate keeps everything.
type Predicate[T any] func(item T) bool

// AllSentinel marks a facet that imposes no constraint.
const AllSentinel = "all"

// IsInactive reports whether a filter value contributes no predicate.
func IsInactive(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, AllSentinel)
}

// Fold case-folds s for comparisons. A new Caser is used per call because
// Casers carry state and are not safe to share.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// CompareFold compares two strings case-insensitively.
func CompareFold(a, b string) int {
	return strings.Compare(Fold(a), Fold(b))
}

// PriorityComparator ranks items whose id appears in sequence by their index
// there, puts prioritized items ahead of the rest, and orders the rest by name.
// Items without an id count as not prioritized.
func PriorityComparator[T any](sequence []int64, id func(T) (int64, bool), name func(T) string) Comparator[T] {
	rank := make(map[int64]int, len(sequence))
	for i, v := range sequence {
		if _, seen := rank[v]; !seen {
			rank[v] = i
		}
	}

	lookup := func(item T) (int, bool) {
		if id == nil {
			return 0, false
		}
		v, ok := id(item)
		if !ok {
			return 0, false
		}
		idx, ok := rank[v]
		return idx, ok
	}

	return func(a, b T) int {
		ra, okA := lookup(a)
		rb, okB := lookup(b)
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		}
		if name == nil {
			return 0
		}
		return CompareFold(name(a), name(b))
	}
}

// Then chains comparators; later ones break ties left by earlier ones.
func Then[T any](cmps ...Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		for _, cmp := range cmps {
			if cmp == nil {
				continue
			}
			if c := cmp(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// Reverse flips a comparator.
func Reverse[T any](cmp Comparator[T]) Comparator[T] {
	return func(a, b T) int { return cmp(b, a) }
}

// Sort returns a stably sorted copy. The input is left untouched.
func Sort[T any](items []T, cmp Comparator[T]) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	if cmp == nil {
		return out
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// SearchText matches when any field contains query, ignoring case.
// An inactive query yields a nil predicate.
func SearchText[T any](query string, fields func(T) []string) Predicate[T] {
	if IsInactive(query) || fields == nil {
		return nil
	}
	needle := Fold(query)

	return func(item T) bool {
		for _, field := range fields(item) {
			if strings.Contains(Fold(field), needle) {
				return true
			}
		}
		return false
	}
}

// Equals matches when field equals value, ignoring case.
// An inactive value yields a nil predicate.
func Equals[T any](value string, field func(T) string) Predicate[T] {
	if IsInactive(value) || field == nil {
		return nil
	}
	want := Fold(value)

	return func(item T) bool {
		return Fold(field(item)) == want
	}
}

// All is the conjunction of the non-nil predicates. It returns nil when
// none is active.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, pred := range preds {
		if pred != nil {
			active = append(active, pred)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}

	return func(item T) bool {
		for _, pred := range active {
			if !pred(item) {
				return false
			}
		}
		return true
	}
}

// Filter returns the items kept by pred, as a new slice. A nil pred returns
// a copy of items.
func Filter[T any](items []T, pred Predicate[T]) []T {
	if pred == nil {
		out := slices.Clone(items)
		if out == nil {
			out = []T{}
		}
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Page is one derived view over a source collection.
type Page[T any] struct {
	Items    []T
	Total    int
	Shown    int
	HasMore  bool
	NextSize int
	Key      string
}

// Derive filters, sorts and windows source. The result only depends on its
// arguments, so deriving twice gives the same page.
func Derive[T any](source []T, pred Predicate[T], cmp Comparator[T], window Window) Page[T] {
	sorted := Sort(Filter(source, pred), cmp)

	size := window.Size
	if size < 0 {
		size = 0
	}
	shown := min(size, len(sorted))

	return Page[T]{
		Items:    sorted[:shown],
		Total:    len(sorted),
		Shown:    shown,
		HasMore:  len(sorted) > shown,
		NextSize: window.peekMore(),
		Key:      window.Key(),
	}
}
