package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tinoosan/bankaccounts/internal/config"
	"github.com/tinoosan/bankaccounts/internal/httpapi"
	"github.com/tinoosan/bankaccounts/internal/ledger"
	"github.com/tinoosan/bankaccounts/internal/ratelimit"
	"github.com/tinoosan/bankaccounts/internal/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	store := memory.New()
	if cfg.DevSeed {
		var accs []ledger.Account
		for _, seed := range []struct {
			name    string
			balance int64
		}{{"ogbenisamu", 100}, {"jane", 200}} {
			a, err := store.Seed(seed.name, seed.balance)
			if err != nil {
				logger.Error("dev seed failed", "name", seed.name, "err", err)
				continue
			}
			accs = append(accs, a)
		}
		logDevSeed(logger, accs)
		printDevSeedBanner(accs)
	}

	opts := []httpapi.Option{
		httpapi.WithCurrency(cfg.Currency),
		httpapi.WithAllowedOrigins(cfg.AllowedOrigins()),
	}
	limiter, closeFn := buildLimiter(ctx, cfg, logger)
	if limiter != nil {
		opts = append(opts, httpapi.WithRateLimiter(limiter))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.New(store, logger, opts...).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("accounts service listening", "addr", srv.Addr, "currency", cfg.Currency)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// buildLimiter prefers Redis when REDIS_URL is set and falls back to an
// in-process limiter if Redis cannot be reached.
func buildLimiter(ctx context.Context, cfg config.Config, l *slog.Logger) (ratelimit.Limiter, func()) {
	if cfg.RateLimitPerMinute <= 0 {
		l.Info("rate limiting disabled")
		return nil, nil
	}
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			l.Warn("invalid REDIS_URL, using in-memory rate limiter", "err", err)
		} else {
			client := redis.NewClient(opt)
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				l.Warn("redis unreachable, using in-memory rate limiter", "err", err)
				_ = client.Close()
			} else {
				l.Info("rate limiter: redis", "per_minute", cfg.RateLimitPerMinute)
				return ratelimit.NewRedis(client, cfg.RedisRateLimitPrefix, cfg.RateLimitPerMinute), func() { _ = client.Close() }
			}
		}
	}
	l.Info("rate limiter: memory", "per_minute", cfg.RateLimitPerMinute)
	return ratelimit.NewMemory(cfg.RateLimitPerMinute), nil
}

// logDevSeed emits structured logs with the seeded account numbers
func logDevSeed(l *slog.Logger, accs []ledger.Account) {
	numbers := map[string]int64{}
	for _, a := range accs {
		numbers[a.Name] = a.Number
	}
	l.Info("DEV seed (memory)", "accounts", numbers)
}

// printDevSeedBanner prints a simple banner to stdout for easy copy/paste of account numbers
func printDevSeedBanner(accs []ledger.Account) {
	fmt.Println("==================== DEV SEED ====================")
	for _, a := range accs {
		fmt.Printf("%s: %d (balance %d)\n", a.Name, a.Number, a.Balance)
	}
	fmt.Println("==================================================")
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
