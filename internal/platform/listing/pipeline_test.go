package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type leagueRow struct {
	ID      int64
	HasID   bool
	Name    string
	Country string
}

func rowID(r leagueRow) (int64, bool) { return r.ID, r.HasID }
func rowName(r leagueRow) string      { return r.Name }
func rowFields(r leagueRow) []string  { return []string{r.Name, r.Country} }

func names(rows []leagueRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestPriorityComparator_OnlyPrioritizedItemSortsFirst(t *testing.T) {
	t.Parallel()

	cmpFn := PriorityComparator([]int64{140, 39}, rowID, rowName)
	items := []leagueRow{
		{ID: 2, HasID: true, Name: "Champions League"},
		{ID: 39, HasID: true, Name: "Premier League"},
	}

	got := Sort(items, cmpFn)
	if got[0].ID != 39 {
		t.Fatalf("unexpected first id: got=%d want=39", got[0].ID)
	}
}

func TestPriorityComparator_FollowsSequenceIndex(t *testing.T) {
	t.Parallel()

	sequence := []int64{39, 140, 135, 78, 61}
	cmpFn := PriorityComparator(sequence, rowID, rowName)

	for i := range sequence {
		for j := range sequence {
			a := leagueRow{ID: sequence[i], HasID: true, Name: "zzz"}
			b := leagueRow{ID: sequence[j], HasID: true, Name: "aaa"}
			got := cmpFn(a, b)
			switch {
			case i < j && got >= 0:
				t.Fatalf("expected %d before %d, cmp=%d", a.ID, b.ID, got)
			case i > j && got <= 0:
				t.Fatalf("expected %d after %d, cmp=%d", a.ID, b.ID, got)
			case i == j && got != 0:
				t.Fatalf("expected tie for %d, cmp=%d", a.ID, got)
			}
		}
	}
}

func TestPriorityComparator_FallsBackToCaseInsensitiveName(t *testing.T) {
	t.Parallel()

	cmpFn := PriorityComparator([]int64{39}, rowID, rowName)
	items := []leagueRow{
		{ID: 7, HasID: true, Name: "serie A"},
		{Name: "Bundesliga"},
		{ID: 9, HasID: true, Name: "Eredivisie"},
		{ID: 39, HasID: true, Name: "Premier League"},
		{Name: "ligue 1"},
	}

	got := names(Sort(items, cmpFn))
	want := []string{"Premier League", "Bundesliga", "Eredivisie", "ligue 1", "serie A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestPriorityComparator_NameOrderIsTransitive(t *testing.T) {
	t.Parallel()

	cmpFn := PriorityComparator(nil, rowID, rowName)
	pool := []leagueRow{
		{Name: "alpha"}, {Name: "Alpha"}, {Name: "BETA"}, {Name: "beta"},
		{Name: "Gamma"}, {Name: "Ångström"}, {Name: "delta"}, {Name: ""},
	}

	for _, a := range pool {
		for _, b := range pool {
			for _, c := range pool {
				if cmpFn(a, b) <= 0 && cmpFn(b, c) <= 0 && cmpFn(a, c) > 0 {
					t.Fatalf("transitivity broken for %q <= %q <= %q", a.Name, b.Name, c.Name)
				}
			}
		}
	}
}

func TestSort_IsStableAndDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := []leagueRow{
		{ID: 1, Name: "Cup"},
		{ID: 2, Name: "cup"},
		{ID: 3, Name: "Ace"},
	}
	before := append([]leagueRow(nil), items...)

	got := Sort(items, PriorityComparator(nil, rowID, rowName))
	wantIDs := []int64{3, 1, 2}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("unexpected id at %d: got=%d want=%d", i, got[i].ID, id)
		}
	}
	if diff := cmp.Diff(before, items); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestFilter_NoActiveFiltersIsIdentity(t *testing.T) {
	t.Parallel()

	source := []leagueRow{
		{ID: 39, HasID: true, Name: "Premier League", Country: "England"},
		{ID: 135, HasID: true, Name: "Serie A", Country: "Italy"},
		{Name: "Friendlies", Country: "World"},
	}

	pred := All(
		SearchText("   ", rowFields),
		Equals("all", func(r leagueRow) string { return r.Country }),
		Equals("ALL ", func(r leagueRow) string { return r.Country }),
	)
	if pred != nil {
		t.Fatalf("expected inactive filters to compose to nil")
	}

	got := Filter(source, pred)
	if diff := cmp.Diff(source, got); diff != "" {
		t.Fatalf("identity law broken (-want +got):\n%s", diff)
	}
}

func TestFilter_SearchPremier(t *testing.T) {
	t.Parallel()

	source := []leagueRow{{Name: "Premier League"}, {Name: "Serie A"}}
	got := names(Filter(source, SearchText("premier", rowFields)))

	if diff := cmp.Diff([]string{"Premier League"}, got); diff != "" {
		t.Fatalf("unexpected filter result (-want +got):\n%s", diff)
	}
}

func TestAll_IsConjunction(t *testing.T) {
	t.Parallel()

	source := []leagueRow{
		{Name: "Premier League", Country: "England"},
		{Name: "Premier Division", Country: "Ireland"},
		{Name: "Championship", Country: "England"},
	}
	pred := All(
		SearchText("PREMIER", rowFields),
		Equals("england", func(r leagueRow) string { return r.Country }),
	)

	got := names(Filter(source, pred))
	if diff := cmp.Diff([]string{"Premier League"}, got); diff != "" {
		t.Fatalf("unexpected filter result (-want +got):\n%s", diff)
	}
}

func TestDerive_TwelveLeaguesFitInFirstWindow(t *testing.T) {
	t.Parallel()

	source := make([]leagueRow, 12)
	for i := range source {
		source[i] = leagueRow{ID: int64(i + 1), HasID: true, Name: fmt.Sprintf("League %02d", i+1)}
	}
	window := NewWindow(DefaultWindowConfig(), FilterState{})

	page := Derive(source, nil, PriorityComparator(nil, rowID, rowName), window)
	if page.Shown != 12 || len(page.Items) != 12 {
		t.Fatalf("unexpected shown count: got=%d want=12", page.Shown)
	}
	if page.HasMore {
		t.Fatalf("load more must be hidden when everything fits")
	}
}

func TestDerive_LengthIsMinOfWindowAndCount(t *testing.T) {
	t.Parallel()

	cfg := WindowConfig{Initial: 3, Increment: 4, Max: 50}
	for _, count := range []int{0, 1, 3, 5, 7, 11, 40} {
		source := make([]leagueRow, count)
		for i := range source {
			source[i] = leagueRow{Name: fmt.Sprintf("n%03d", i)}
		}
		window := NewWindow(cfg, FilterState{})
		for step := 0; step < 6; step++ {
			page := Derive(source, nil, nil, window)
			want := min(window.Size, count)
			if len(page.Items) != want {
				t.Fatalf("count=%d window=%d: got=%d want=%d", count, window.Size, len(page.Items), want)
			}
			if page.HasMore != (count > want) {
				t.Fatalf("count=%d window=%d: unexpected HasMore=%v", count, window.Size, page.HasMore)
			}
			window.More()
		}
	}
}

func TestDerive_IsIdempotent(t *testing.T) {
	t.Parallel()

	source := []leagueRow{
		{ID: 61, HasID: true, Name: "Ligue 1"},
		{ID: 39, HasID: true, Name: "Premier League"},
		{Name: "A-League"},
	}
	pred := SearchText("l", rowFields)
	cmpFn := PriorityComparator([]int64{39, 61}, rowID, rowName)
	window := NewWindow(WindowConfig{Initial: 2, Increment: 2, Max: 10}, FilterState{Query: "l"})

	first := Derive(source, pred, cmpFn, window)
	second := Derive(source, pred, cmpFn, window)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("derive is not idempotent (-first +second):\n%s", diff)
	}
	if first.NextSize != 4 || !first.HasMore {
		t.Fatalf("unexpected paging info: %+v", first)
	}
}

func TestWindow_MoreIsCappedAtMax(t *testing.T) {
	t.Parallel()

	w := NewWindow(WindowConfig{Initial: 20, Increment: 20, Max: 50}, FilterState{})
	w.More()
	w.More()
	w.More()
	if w.Size != 50 {
		t.Fatalf("unexpected size: got=%d want=50", w.Size)
	}
}

func TestWindow_QueryChangeResets(t *testing.T) {
	t.Parallel()

	queries := []string{"a", "premier", "PREMIER ", "serie", "", "all"}
	w := NewWindow(DefaultWindowConfig(), FilterState{Query: "start"})
	for _, q := range queries {
		w.More()
		w.More()
		state := FilterState{Query: q}
		changed := w.Key() != state.Key()
		reset := w.Sync(state)
		if reset != changed {
			t.Fatalf("query=%q: reset=%v changed=%v", q, reset, changed)
		}
		if changed && w.Size != 20 {
			t.Fatalf("query=%q: window not reset, size=%d", q, w.Size)
		}
	}
}

func TestFilterState_KeyIsDeterministic(t *testing.T) {
	t.Parallel()

	a := FilterState{Query: " Premier ", Facets: map[string]string{"country": "England", "type": "all", "x": ""}}
	b := FilterState{Query: "premier", Facets: map[string]string{"country": "england"}}
	if a.Key() != b.Key() {
		t.Fatalf("expected equivalent states to share a key: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == (FilterState{Query: "premier"}).Key() {
		t.Fatalf("facet change must change the key")
	}
	if (FilterState{Facets: map[string]string{"type": "all"}}).Active() {
		t.Fatalf("sentinel facet must not be active")
	}
}

func TestParseWindow(t *testing.T) {
	t.Parallel()

	cfg := WindowConfig{Initial: 20, Increment: 20, Max: 100}
	state := FilterState{Query: "cup"}
	key := state.Key()

	tests := []struct {
		name  string
		limit string
		key   string
		want  int
	}{
		{name: "missing limit", limit: "", key: key, want: 20},
		{name: "invalid limit", limit: "abc", key: key, want: 20},
		{name: "below initial", limit: "5", key: key, want: 20},
		{name: "grown", limit: "60", key: key, want: 60},
		{name: "capped", limit: "999", key: key, want: 100},
		{name: "stale key", limit: "60", key: "q=league", want: 20},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := ParseWindow(cfg, tc.limit, tc.key, state)
			if w.Size != tc.want {
				t.Fatalf("unexpected size: got=%d want=%d", w.Size, tc.want)
			}
		})
	}
}

func TestPause(t *testing.T) {
	t.Parallel()

	w := NewWindow(DefaultWindowConfig(), FilterState{})
	start := time.Now()
	if err := Pause(context.Background(), w, time.Hour); err != nil {
		t.Fatalf("initial window must not pause: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("initial window paused")
	}

	w.More()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Pause(ctx, w, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
