package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/football-portal/external/backend"
	"github.com/riskibarqy/football-portal/internal/config"
	"github.com/riskibarqy/football-portal/internal/domain/fantasy"
	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/domain/toggle"
	draftmemory "github.com/riskibarqy/football-portal/internal/infrastructure/fantasy/memory"
	"github.com/riskibarqy/football-portal/internal/infrastructure/postgresdb"
	sessionmemory "github.com/riskibarqy/football-portal/internal/infrastructure/session/memory"
	sessionpostgres "github.com/riskibarqy/football-portal/internal/infrastructure/session/postgres"
	"github.com/riskibarqy/football-portal/internal/interfaces/web"
	idgen "github.com/riskibarqy/football-portal/internal/platform/id"
	"github.com/riskibarqy/football-portal/internal/platform/listing"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/resilience"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

// App is the wired portal: the HTTP server plus what has to be started
// before it and released after it.
type App struct {
	Server   *http.Server
	Sessions *usecase.SessionService
	closers  []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	sessionRepo, err := a.sessionRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(backend.ClientConfig{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout,
		Logger:  logger.Named("backend"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.BackendCircuitEnabled,
			FailureThreshold: cfg.BackendCircuitFailureCount,
			OpenTimeout:      cfg.BackendCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.BackendCircuitHalfOpenMaxReq,
		},
	})

	registry := toggle.NewRegistry()
	drafts := draftmemory.NewDraftRepository()
	listOpts := usecase.ListOptions{
		Window: listing.WindowConfig{
			Initial:   cfg.ListInitialSize,
			Increment: cfg.ListIncrement,
			Max:       cfg.ListMaxSize,
		},
		LoadMoreDelay: cfg.ListLoadMoreDelay,
	}

	sessionSvc := usecase.NewSessionService(sessionRepo, drafts, registry, idgen.NewUUIDGenerator(), cfg.SessionTTL, logger)
	newsSvc := usecase.NewNewsService(backend.NewNewsRepository(client), registry, listOpts, logger)
	reactionSvc := usecase.NewReactionService(backend.NewNewsRepository(client), registry, logger)
	leagueSvc := usecase.NewLeagueService(backend.NewLeagueRepository(client), usecase.LeagueServiceConfig{
		PriorityTTL:      cfg.PriorityCacheTTL,
		FallbackPriority: cfg.PriorityFallbackIDs,
		FlagBaseURL:      cfg.FlagCDNBaseURL,
		DefaultSeason:    cfg.DefaultSeason,
		List:             listOpts,
	}, logger)
	matchSvc := usecase.NewMatchService(backend.NewMatchRepository(client), leagueSvc, cfg.DefaultTimezone, listOpts)
	playerSvc := usecase.NewPlayerService(backend.NewPlayerRepository(client), leagueSvc, 0, listOpts, logger)
	favoriteSvc := usecase.NewFavoriteService(backend.NewFavoriteRepository(client), registry, logger)
	homeSvc := usecase.NewHomeService(newsSvc, matchSvc, leagueSvc, logger)
	accountSvc := usecase.NewAccountService(backend.NewUserRepository(client), sessionSvc, logger)
	fantasySvc := usecase.NewFantasyService(drafts, playerSvc, fantasy.DefaultRules(), logger)

	renderer, err := web.NewRenderer(logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load templates: %w", err)
	}

	cookies := web.CookieConfig{Secure: cfg.SessionCookieSecure}
	handler := web.NewHandler(
		homeSvc,
		newsSvc,
		reactionSvc,
		leagueSvc,
		matchSvc,
		playerSvc,
		favoriteSvc,
		accountSvc,
		sessionSvc,
		fantasySvc,
		renderer,
		web.HandlerOptions{List: listOpts.Window, Cookies: cookies},
		logger,
	)
	flags := web.NewFlagProxy(web.FlagProxyConfig{
		BaseURL:  cfg.FlagCDNBaseURL,
		CacheTTL: cfg.FlagCacheTTL,
		Timeout:  cfg.BackendTimeout,
	}, logger.Named("flags"))
	router := web.NewRouter(handler, flags, sessionSvc, web.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthRateLimit:      web.NewIPRateLimiter(cfg.AuthRateLimitPerMinute, cfg.AuthRateLimitBurst),
	}, logger.Named("http"))

	a.Sessions = sessionSvc
	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return a, nil
}

// Start runs the start-of-process session purge. A failed purge is logged;
// stale sessions are still rejected on load.
func (a *App) Start(ctx context.Context, logger *logging.Logger) {
	purgeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := a.Sessions.PurgeExpired(purgeCtx); err != nil {
		logger.WarnContext(ctx, "purge expired sessions failed", "error", err)
	}
}

// Close releases the session store.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) sessionRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (session.Repository, error) {
	switch cfg.SessionStore {
	case config.SessionStorePostgres:
		db, err := postgresdb.Open(ctx, postgresdb.Options{
			URL:                         cfg.DBURL,
			DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
		})
		if err != nil {
			return nil, fmt.Errorf("open session database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		logger.Info("session store ready", "store", cfg.SessionStore)
		return sessionpostgres.NewRepository(db), nil
	default:
		logger.Info("session store ready", "store", config.SessionStoreMemory)
		return sessionmemory.NewRepository(), nil
	}
}
