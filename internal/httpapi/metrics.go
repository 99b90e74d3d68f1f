package httpapi

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    chimw "github.com/go-chi/chi/v5/middleware"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/tinoosan/bankaccounts/internal/errs"
)

var (
    httpRequestsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "bankaccounts",
            Name:      "http_requests_total",
            Help:      "Total number of HTTP requests",
        },
        []string{"method", "status"},
    )
    httpRequestDuration = promauto.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "bankaccounts",
            Name:      "http_request_duration_seconds",
            Help:      "Duration of HTTP requests in seconds",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"method", "status"},
    )
    ledgerOperationsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "bankaccounts",
            Name:      "ledger_operations_total",
            Help:      "Balance-changing operations by outcome",
        },
        []string{"operation", "outcome"},
    )
    rateLimitedTotal = promauto.NewCounter(
        prometheus.CounterOpts{
            Namespace: "bankaccounts",
            Name:      "rate_limited_requests_total",
            Help:      "Requests rejected by the rate limiter",
        },
    )
)

func metricsHandler() http.Handler {
    return promhttp.Handler()
}

func metricsMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
        start := time.Now()
        next.ServeHTTP(ww, r)
        status := strconv.Itoa(ww.Status())
        httpRequestsTotal.WithLabelValues(r.Method, status).Inc()
        httpRequestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
    })
}

// observeOperation counts a deposit, withdraw or transfer by outcome.
func observeOperation(op string, err error) {
    outcome := "ok"
    switch {
    case err == nil:
    case errors.Is(err, errs.ErrNotFound):
        outcome = "not_found"
    case errors.Is(err, errs.ErrInvalidAmount):
        outcome = "invalid_amount"
    case errors.Is(err, errs.ErrInsufficientFunds):
        outcome = "insufficient_funds"
    case errors.Is(err, errs.ErrInvalid):
        outcome = "invalid"
    default:
        outcome = "error"
    }
    ledgerOperationsTotal.WithLabelValues(op, outcome).Inc()
}
