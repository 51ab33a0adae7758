package http

import (
	"database/sql"
	"log/slog"
	"net/http"

	"betpress/internal/common/pagination"
	harticle "betpress/internal/handler/http/article"
	"betpress/internal/handler/http/auth"
	hfeeds "betpress/internal/handler/http/feeds"
	"betpress/internal/handler/http/middleware"
	"betpress/internal/handler/http/requestid"
	"betpress/internal/usecase/article"
	"betpress/internal/usecase/notify"
)

// RouterConfig bundles everything the API router needs.
type RouterConfig struct {
	DB         *sql.DB
	Articles   *article.Service
	Runner     hfeeds.Runner
	Notify     notify.Service
	Verifier   *auth.Verifier
	RateLimit  *middleware.RateLimit // nil disables rate limiting
	Pagination pagination.Config
	Logger     *slog.Logger
	Version    string
}

// NewRouter builds the full handler chain. Article reads and health are
// public; the processing endpoint sits behind rate limiting and admin
// auth, matching how it is exposed to operations tooling.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", &HealthHandler{DB: cfg.DB, Notify: cfg.Notify, Version: cfg.Version})
	mux.Handle("GET /metrics", MetricsHandler())
	harticle.Register(mux, cfg.Articles, cfg.Pagination)

	processMux := http.NewServeMux()
	hfeeds.Register(processMux, cfg.Runner, cfg.Logger)
	var protected http.Handler = cfg.Verifier.RequireAdmin(processMux)
	if cfg.RateLimit != nil {
		protected = cfg.RateLimit.Middleware(protected)
	}
	mux.Handle("/api/feeds/process", protected)

	return Chain(mux,
		requestid.Middleware,
		Recover(cfg.Logger),
		Logging(cfg.Logger),
		Metrics,
	)
}
