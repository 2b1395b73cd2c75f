package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/riskibarqy/football-portal/internal/platform/listing"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

func TestListRequest_KeepsWindowOnlyForSameFilters(t *testing.T) {
	t.Parallel()

	cfg := listing.WindowConfig{Initial: 10, Increment: 10, Max: 100}
	state := listing.NewFilterState("derby", map[string]string{usecase.NewsFacetCategory: "matches"})

	query := url.Values{}
	query.Set("q", "derby")
	query.Set("category", "matches")
	query.Set("limit", "30")
	query.Set("key", state.Key())
	req := httptest.NewRequest(http.MethodGet, "/news?"+query.Encode(), nil)

	got := listRequest(req, cfg, usecase.NewsFacetCategory)
	if got.Window.Size != 30 {
		t.Fatalf("expected window 30 for matching key, got %d", got.Window.Size)
	}
	if got.State.Facet(usecase.NewsFacetCategory) != "matches" || got.State.Query != "derby" {
		t.Fatalf("unexpected filter state %+v", got.State)
	}

	query.Set("category", "transfers")
	req = httptest.NewRequest(http.MethodGet, "/news?"+query.Encode(), nil)
	got = listRequest(req, cfg, usecase.NewsFacetCategory)
	if got.Window.Size != 10 {
		t.Fatalf("changed filters must reset the window, got %d", got.Window.Size)
	}
}

func TestMoreURL(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/leagues?q=premier&limit=20", nil)
	got, err := url.Parse(moreURL(req, 40, "q=premier"))
	if err != nil {
		t.Fatalf("parse more url: %v", err)
	}
	if got.Path != "/leagues" || got.Query().Get("limit") != "40" || got.Query().Get("key") != "q=premier" || got.Query().Get("q") != "premier" {
		t.Fatalf("unexpected more url %s", got)
	}
}

func TestSafeRedirect(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                     "/",
		"/news/a-1":            "/news/a-1",
		"https://evil.example": "/",
		"//evil.example":       "/",
		"/\\evil.example":      "/",
	}
	for in, want := range tests {
		if got := safeRedirect(in, "/"); got != want {
			t.Fatalf("safeRedirect(%q)=%q want=%q", in, got, want)
		}
	}
}

func TestLeagueSeason(t *testing.T) {
	t.Parallel()

	leagueID, season, err := leagueSeason(httptest.NewRequest(http.MethodGet, "/standings?league=39&season=2025", nil))
	if err != nil || leagueID != 39 || season != 2025 {
		t.Fatalf("unexpected league=%d season=%d err=%v", leagueID, season, err)
	}

	if _, _, err := leagueSeason(httptest.NewRequest(http.MethodGet, "/standings?league=abc", nil)); err == nil {
		t.Fatalf("expected an error for a non-numeric league")
	}
	if _, _, err := leagueSeason(httptest.NewRequest(http.MethodGet, "/standings?season=-1", nil)); err == nil {
		t.Fatalf("expected an error for a negative season")
	}
}
