// Package httpapi wires the HTTP surface of the accounts service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
    "log/slog"
    "net/http"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"
    "github.com/go-chi/cors"
    "github.com/tinoosan/bankaccounts/internal/ratelimit"
    "github.com/tinoosan/bankaccounts/internal/service/account"
    "github.com/tinoosan/bankaccounts/internal/service/banking"
)

// Server wires handlers and middleware using Chi.
type Server struct {
    accountSvc account.Service
    bankSvc    banking.Service
    ready      ReadyChecker
    limiter    ratelimit.Limiter
    currency   string
    origins    []string
    log        *slog.Logger
    rt         *chi.Mux
}

// Option customizes a Server.
type Option func(*Server)

// WithRateLimiter enables per-client rate limiting on the account routes.
func WithRateLimiter(l ratelimit.Limiter) Option { return func(s *Server) { s.limiter = l } }

// WithCurrency sets the currency code used in human-readable messages.
func WithCurrency(code string) Option { return func(s *Server) { s.currency = code } }

// WithAllowedOrigins enables CORS for the given origin patterns.
func WithAllowedOrigins(origins []string) Option { return func(s *Server) { s.origins = origins } }

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging and panic recovery.
func New(store Store, logger *slog.Logger, opts ...Option) *Server {
    s := &Server{
        accountSvc: account.New(store, store),
        bankSvc:    banking.New(store, store),
        ready:      store,
        currency:   "NGN",
        log:        logger,
        rt:         chi.NewRouter(),
    }
    for _, o := range opts {
        o(s)
    }

    s.rt.Use(chimw.RequestID)
    s.rt.Use(chimw.RealIP)
    s.rt.Use(requestLogger(logger))
    s.rt.Use(recoverer(logger))
    s.rt.Use(metricsMiddleware)
    if len(s.origins) > 0 {
        s.rt.Use(cors.Handler(cors.Options{
            AllowedOrigins: s.origins,
            AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
            AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
            ExposedHeaders: []string{"Retry-After"},
            MaxAge:         300,
        }))
    }
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
    s.rt.Route("/accounts", s.accountRoutes)
    // Versioned alias of the same surface
    s.rt.Route("/api/v1/accounts", s.accountRoutes)
    s.rt.Get("/healthz", s.healthz)
    s.rt.Get("/readyz", s.readyz)
    s.rt.Handle("/metrics", metricsHandler())
}

func (s *Server) accountRoutes(r chi.Router) {
    if s.limiter != nil {
        r.Use(s.rateLimit())
    }
    r.With(jsonOnly, s.validatePostAccount()).Post("/", s.postAccount)
    r.Get("/", s.listAccounts)
    r.Route("/{accountNumber}", func(r chi.Router) {
        r.Use(s.accountNumberParam())
        r.Get("/", s.getAccount)
        r.With(jsonOnly).Put("/", s.updateAccount)
        r.With(jsonOnly).Patch("/", s.updateAccount)
        r.Delete("/", s.deleteAccount)
        r.With(jsonOnly, s.validateAmount()).Post("/deposit", s.deposit)
        r.With(jsonOnly, s.validateAmount()).Post("/withdraw", s.withdraw)
        r.With(jsonOnly, s.validateTransfer()).Post("/transfer", s.transfer)
        r.Get("/transactions", s.listTransactions)
    })
}
