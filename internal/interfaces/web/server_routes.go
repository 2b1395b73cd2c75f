package web

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, flags *FlagProxy) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if flags != nil {
		mux.Handle("GET /flags/{file}", flags)
	}
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Home)
	mux.HandleFunc("GET /", handler.NotFound)
	mux.HandleFunc("GET /news", handler.NewsList)
	mux.HandleFunc("GET /news/{articleID}", handler.Article)
	mux.HandleFunc("GET /leagues", handler.Leagues)
	mux.HandleFunc("GET /standings", handler.Standings)
	mux.HandleFunc("GET /matches", handler.Matches)
	mux.HandleFunc("GET /players/top", handler.TopPlayers)
	mux.HandleFunc("GET /players/leaders", handler.Leaders)
	mux.HandleFunc("GET /favorites", handler.Favorites)
	mux.HandleFunc("GET /profile", handler.Profile)
	mux.HandleFunc("GET /fantasy", handler.Fantasy)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, limiter *IPRateLimiter) {
	limited := func(next http.HandlerFunc) http.Handler {
		if limiter == nil {
			return next
		}
		return RateLimit(limiter, next)
	}

	mux.HandleFunc("GET /login", handler.LoginPage)
	mux.Handle("POST /login", limited(handler.Login))
	mux.HandleFunc("GET /register", handler.RegisterPage)
	mux.Handle("POST /register", limited(handler.Register))
	mux.HandleFunc("POST /logout", handler.Logout)
}

func registerActionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /news/{articleID}/comments", handler.PostComment)
	mux.HandleFunc("POST /news/{articleID}/comments/{commentID}/delete", handler.DeleteComment)
	mux.HandleFunc("POST /news/{articleID}/like", handler.LikeArticleForm)
	mux.HandleFunc("POST /news/{articleID}/comments/{commentID}/like", handler.LikeCommentForm)
	mux.HandleFunc("POST /favorites/teams/{teamID}", handler.FavoriteTeamForm)
	mux.HandleFunc("POST /favorites/players/{playerID}", handler.FavoritePlayerForm)
	mux.HandleFunc("POST /profile/avatar", handler.UploadAvatar)
	mux.HandleFunc("POST /fantasy/start", handler.StartDraft)
	mux.HandleFunc("POST /fantasy/picks", handler.AddPick)
	mux.HandleFunc("POST /fantasy/picks/{playerID}/delete", handler.RemovePick)
	mux.HandleFunc("POST /fantasy/reset", handler.ResetDraft)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/news", handler.ListNews)
	mux.HandleFunc("GET /api/v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /api/v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /api/v1/players/top", handler.ListTopPlayers)
	mux.HandleFunc("GET /api/v1/me", handler.Me)
	mux.HandleFunc("POST /api/v1/articles/{articleID}/like", handler.ToggleArticleLike)
	mux.HandleFunc("POST /api/v1/comments/{commentID}/like", handler.ToggleCommentLike)
	mux.HandleFunc("POST /api/v1/favorites/teams/{teamID}", handler.ToggleFavoriteTeam)
	mux.HandleFunc("POST /api/v1/favorites/players/{playerID}", handler.ToggleFavoritePlayer)
}
