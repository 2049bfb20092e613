// Package server exposes the research, location, payment, and community
// services over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/whoisrunning/civic-research/internal/community"
	"github.com/whoisrunning/civic-research/internal/cost"
	"github.com/whoisrunning/civic-research/internal/payment"
	"github.com/whoisrunning/civic-research/internal/research"
	"github.com/whoisrunning/civic-research/internal/store"
	"github.com/whoisrunning/civic-research/pkg/census"
)

// Deps collects the services the HTTP layer fronts.
type Deps struct {
	Research  *research.Service
	Census    *census.Client
	Payments  *payment.Service
	Community *community.Service
	Store     store.Store
	Tracker   *cost.Tracker

	Port           int
	AllowedOrigins []string
}

// Server wires the API routes over the service layer.
type Server struct {
	deps   Deps
	router chi.Router
}

// New builds the router. Origins default to allowing everything, which
// matches a public read-mostly API fronted by a browser client.
func New(deps Deps) *Server {
	if len(deps.AllowedOrigins) == 0 {
		deps.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Stripe-Signature"},
		MaxAge:         300,
	}))

	s := &Server{deps: deps, router: r}

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/trending", s.handleTrending)
		r.Get("/winners", s.handleWinners)
		r.Get("/candidates/search", s.handleSearch)
		r.Get("/candidates/{id}", s.handleCandidateDetail)

		r.Post("/location/politicians", s.handlePoliticians)
		r.Get("/location/counties", s.handleCounties)
		r.Get("/location/cities", s.handleCities)

		r.Post("/impact/analyze", s.handleImpactAnalyze)

		r.Post("/payment/checkout", s.handleCheckout)
		r.Post("/webhooks/stripe", s.handleStripeWebhook)

		r.Post("/community/report-error", s.handleErrorReport)

		r.Get("/stats", s.handleStats)
	})

	return s
}

// Handler returns the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.deps.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server shutdown", zap.Error(err))
		}
	}()

	zap.L().Info("starting server", zap.Int("port", s.deps.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

// requestLogger records one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
