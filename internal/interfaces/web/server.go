package web

import (
	"net/http"

	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

// RouterConfig carries what the middleware chain needs besides the handler.
type RouterConfig struct {
	ServiceName        string
	CORSAllowedOrigins []string
	AuthRateLimit      *IPRateLimiter
}

func NewRouter(
	handler *Handler,
	flags *FlagProxy,
	sessions *usecase.SessionService,
	cfg RouterConfig,
	logger *logging.Logger,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, flags)
	registerPageRoutes(mux, handler)
	registerAuthRoutes(mux, handler, cfg.AuthRateLimit)
	registerActionRoutes(mux, handler)
	registerAPIRoutes(mux, handler)

	return RequestTracing(cfg.ServiceName,
		RequestLogging(logger,
			CORS(cfg.CORSAllowedOrigins,
				recoverPanic(logger, handler.renderer,
					LoadSession(sessions, handler.cookies, logger, mux)))))
}
