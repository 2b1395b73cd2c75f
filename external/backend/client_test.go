package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.uber.org/goleak"

	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/resilience"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.Handler, breaker resilience.CircuitBreakerConfig) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL + "/",
		Timeout:        2 * time.Second,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
	return client, srv
}

func authed(ctx context.Context) context.Context {
	return session.WithSession(ctx, session.Session{ID: "sess-1", Token: "tok-123"})
}

func TestNewsRepository_List_NormalizesAndDropsInvalidRows(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/news" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"id":1,"title":"Derby day","excerpt":"Short","image":"/uploads/a.png","published_at":"2026-10-18T10:00:00Z","likes_count":4},
			{"id":"n-2","title":"","content":"missing title"},
			{"id":"n-3","title":"Transfer news","author_name":"Reporter","created_at":"2026-10-17 09:30:00"}
		]}`)
	}), resilience.DefaultCircuitBreakerConfig())

	articles, err := NewNewsRepository(client).List(context.Background())
	if err != nil {
		t.Fatalf("list news: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("unexpected article count: got=%d want=2", len(articles))
	}

	first := articles[0]
	if first.ID != "1" || first.Summary != "Short" || first.LikeCount != 4 {
		t.Fatalf("unexpected first article: %+v", first)
	}
	if !strings.HasSuffix(first.ImageURL, "/uploads/a.png") || !strings.HasPrefix(first.ImageURL, "http") {
		t.Fatalf("relative image url not resolved: %s", first.ImageURL)
	}
	if first.AuthorName() != "Unknown Author" {
		t.Fatalf("unexpected author: %s", first.AuthorName())
	}
	if articles[1].PublishedAt.IsZero() || articles[1].Author != "Reporter" {
		t.Fatalf("unexpected second article: %+v", articles[1])
	}
}

func TestNewsRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"News not found"}`)
	}), resilience.DefaultCircuitBreakerConfig())

	_, exists, err := NewNewsRepository(client).GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected nil error for not found, got %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false")
	}
}

func TestNewsRepository_ListComments_FlattensNestedReplies(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"id":10,"content":"first","username":"ana","replies":[{"id":11,"content":"reply"}]},
			{"id":12,"content":""}
		]}`)
	}), resilience.DefaultCircuitBreakerConfig())

	comments, err := NewNewsRepository(client).ListComments(context.Background(), "n-1")
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("unexpected comment count: got=%d want=2", len(comments))
	}
	if comments[1].ParentID != "10" || comments[1].ArticleID != "n-1" {
		t.Fatalf("reply not linked to parent: %+v", comments[1])
	}
	if comments[0].Author != "ana" {
		t.Fatalf("unexpected author: %s", comments[0].Author)
	}
}

func TestClient_ProtectedCallWithoutTokenIsRefusedLocally(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}), resilience.DefaultCircuitBreakerConfig())

	err := NewFavoriteRepository(client).AddTeam(context.Background(), 33)
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("request must not reach the backend, hits=%d", hits.Load())
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		_, _ = io.WriteString(w, `{"success":true,"data":{"liked":true,"likes_count":8}}`)
	}), resilience.DefaultCircuitBreakerConfig())

	reaction, err := NewNewsRepository(client).ToggleArticleLike(authed(context.Background()), "n-1")
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if !reaction.Liked || reaction.Count != 8 {
		t.Fatalf("unexpected reaction: %+v", reaction)
	}
}

func TestClient_StatusMappingCarriesHint(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"success":false,"message":"Comment is too long"}`)
	}), resilience.DefaultCircuitBreakerConfig())

	_, err := NewNewsRepository(client).ToggleCommentLike(authed(context.Background()), "c-1")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	hints := crerr.GetAllHints(err)
	if len(hints) == 0 || hints[0] != "Comment is too long" {
		t.Fatalf("unexpected hints: %v", hints)
	}
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status    int
		target    error
		transient bool
	}{
		{status: http.StatusBadRequest, target: usecase.ErrInvalidInput},
		{status: http.StatusUnprocessableEntity, target: usecase.ErrInvalidInput},
		{status: http.StatusUnauthorized, target: usecase.ErrUnauthorized},
		{status: http.StatusForbidden, target: usecase.ErrUnauthorized},
		{status: http.StatusNotFound, target: usecase.ErrNotFound},
		{status: http.StatusTooManyRequests, target: usecase.ErrDependencyUnavailable},
		{status: http.StatusBadGateway, target: usecase.ErrDependencyUnavailable, transient: true},
	}

	for _, tc := range tests {
		err := statusError(tc.status, "")
		if !errors.Is(err, tc.target) {
			t.Fatalf("status=%d: expected %v, got %v", tc.status, tc.target, err)
		}
		if isCircuitFailure(err) != tc.transient {
			t.Fatalf("status=%d: unexpected transient=%v", tc.status, isCircuitFailure(err))
		}
	}
}

func TestClient_DoesNotRetryAndOpensCircuit(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}), resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	repo := NewLeagueRepository(client)
	for i := 0; i < 2; i++ {
		if _, err := repo.List(context.Background()); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("expected one request per call, hits=%d", hits.Load())
	}
	if client.BreakerState() != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", client.BreakerState())
	}

	if _, err := repo.List(context.Background()); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable while open, got %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("open breaker must short-circuit, hits=%d", hits.Load())
	}
}

func TestClient_CoalescesConcurrentGets(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = io.WriteString(w, `{"success":true,"data":[39,140,39,0]}`)
	}), resilience.DefaultCircuitBreakerConfig())

	repo := NewLeagueRepository(client)
	const callers = 6
	var wg sync.WaitGroup
	wg.Add(callers)
	results := make(chan []int64, callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			ids, err := repo.PrioritySequence(context.Background())
			if err != nil {
				t.Errorf("priority: %v", err)
				return
			}
			results <- ids
		}()
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	if hits.Load() != 1 {
		t.Fatalf("expected a single upstream request, hits=%d", hits.Load())
	}
	for ids := range results {
		if len(ids) != 2 || ids[0] != 39 || ids[1] != 140 {
			t.Fatalf("unexpected priority ids: %v", ids)
		}
	}
}

func TestClient_SharedGetSurvivesFirstCallerLeaving(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			close(entered)
		}
		<-release
		_, _ = io.WriteString(w, `{"success":true,"data":[140,39]}`)
	}), resilience.DefaultCircuitBreakerConfig())
	repo := NewLeagueRepository(client)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := repo.PrioritySequence(firstCtx)
		firstErr <- err
	}()
	<-entered

	type outcome struct {
		ids []int64
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		ids, err := repo.PrioritySequence(context.Background())
		second <- outcome{ids: ids, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller should see its own cancellation, got %v", err)
	}

	close(release)
	got := <-second
	if got.err != nil {
		t.Fatalf("second caller must not inherit the first caller's cancellation: %v", got.err)
	}
	if len(got.ids) != 2 || got.ids[0] != 140 {
		t.Fatalf("unexpected priority ids: %v", got.ids)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one shared upstream request, hits=%d", hits.Load())
	}
	if client.BreakerState() != resilience.CircuitStateClosed {
		t.Fatalf("breaker should stay closed, got %s", client.BreakerState())
	}
}

func TestClient_CancelledContextIsNotABackendFailure(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}), resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewMatchRepository(client).List(ctx, match.Query{Date: "2026-10-18"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
	if client.BreakerState() != resilience.CircuitStateClosed {
		t.Fatalf("caller cancellation must not open the breaker, got %s", client.BreakerState())
	}
}
