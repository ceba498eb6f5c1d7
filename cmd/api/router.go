package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/headers"
	"bookcatalog/internal/httpx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// pinger is implemented by backends that can report readiness.
type pinger interface {
	Ping(ctx context.Context) error
}

type deps struct {
	cfg    *config.Config
	repo   book.Repository
	tokens *headers.TokenSource
	reg    *prometheus.Registry
}

// newRouter wires every route and the middleware chain. ctx bounds background
// work owned by the router, such as rate limiter cleanup.
func newRouter(ctx context.Context, d deps) http.Handler {
	svc := book.NewService(d.repo)
	book.RegisterMetrics(d.reg, svc)
	metrics := httpx.NewMetrics(d.reg)
	limiter := httpx.NewRateLimitMiddleware(ctx, d.cfg.Limits.RateLimitRPS, d.cfg.Limits.RateLimitBurst)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if p, ok := d.repo.(pinger); ok {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.reg, promhttp.HandlerOpts{}))

	book.NewHTTPHandler(svc).Register(mux)
	headers.NewHTTPHandler(d.tokens).Register(mux)

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.AccessLogMiddleware,
		metrics.Middleware,
		httpx.SecurityHeadersMiddleware(d.cfg.Security.EnableHSTS),
		httpx.CORSMiddleware(d.cfg.Security.AllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(d.cfg.Limits.MaxBodyBytes),
	)
}
