package httpapi

import (
    "net"
    "net/http"
    "strconv"
)

// rateLimit rejects clients over their budget with 429. Limiter failures are
// logged and the request is let through.
func (s *Server) rateLimit() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ok, retry, err := s.limiter.Allow(r.Context(), clientIP(r))
            if err != nil {
                s.log.Warn("rate limiter unavailable", "err", err)
                next.ServeHTTP(w, r)
                return
            }
            if !ok {
                rateLimitedTotal.Inc()
                secs := int(retry.Seconds())
                if secs < 1 { secs = 1 }
                w.Header().Set("Retry-After", strconv.Itoa(secs))
                writeErr(w, http.StatusTooManyRequests, "too many requests", "rate_limited")
                return
            }
            next.ServeHTTP(w, r)
        })
    }
}

// clientIP keys the limiter. chimw.RealIP has already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
    host, _, err := net.SplitHostPort(r.RemoteAddr)
    if err != nil {
        return r.RemoteAddr
    }
    return host
}
