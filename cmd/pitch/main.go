package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"pitchplease/internal/api"
	"pitchplease/internal/availability"
	"pitchplease/internal/booking"
	"pitchplease/internal/cli"
	"pitchplease/internal/config"
	"pitchplease/internal/events"
	"pitchplease/internal/metrics"
	"pitchplease/internal/payment"
	"pitchplease/internal/reviews"
	"pitchplease/internal/session"
	"pitchplease/internal/store"
)

func main() {
	configPath := flag.String("config", os.Getenv("PITCH_CONFIG_PATH"), "path to config.yaml")
	flag.Parse()

	// Logs go to stderr so they do not interleave with the views on stdout.
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		logger = logger.Level(level)
	}

	var rdb *redis.Client
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	}

	st, err := openStore(cfg, rdb)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("open store error")
	}
	defer func() {
		// The redis store owns the shared client.
		_ = st.Close()
		if rdb != nil && cfg.Store.Backend != config.StoreRedis {
			_ = rdb.Close()
		}
	}()

	client := api.NewClient(cfg.API.BaseURL, cfg.Timeout())
	if rdb != nil && cfg.CacheTTL() > 0 {
		client.UseRedisCache(rdb, cfg.CacheTTL())
	}
	client.UseRateLimit(cfg.API.RateLimitPerSecond, cfg.API.RateLimitBurst)

	sess := session.New(st, client, &logger)
	client.SetTokenSource(sess)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Monitoring.HealthCheckPort != 0 {
		go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, st, &logger)
	}
	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		logger.Warn().Err(err).Str("dir", cfg.Export.Dir).Msg("create export dir")
	}

	app := cli.New(cli.Deps{
		Backend:  client,
		Store:    st,
		Session:  sess,
		Resolver: availability.NewResolver(client, &logger, availability.WithDegradedMode(cfg.Booking.DegradedMode)),
		Checkout: booking.NewCheckout(st, &logger),
		Reviews:  reviews.NewService(client, &logger),
		Bus:      events.NewBus(),
		Window:   booking.Window{MaxAdvance: cfg.BookingMaxAdvance()},
		PaymentOptions: payment.Options{
			MaxRetries:          cfg.MaxRetries(),
			EnableFailAction:    cfg.Payment.EnableFailAction,
			ClearDraftOnSuccess: cfg.Payment.ClearDraftOnSuccess,
			SuccessDelay:        cfg.SuccessDelay(),
			BlockedDelay:        cfg.BlockedDelay(),
		},
		ExportDir: cfg.Export.Dir,
		Logger:    &logger,
		Out:       os.Stdout,
	})

	logger.Info().Str("api", cfg.API.BaseURL).Str("store", cfg.Store.Backend).Msg("pitch started, type help")
	if err := app.Run(ctx, os.Stdin); err != nil {
		logger.Error().Err(err).Msg("command loop stopped")
	}
}

func openStore(cfg *config.Config, rdb *redis.Client) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return store.NewMemory(), nil
	case config.StoreRedis:
		if rdb == nil {
			return nil, fmt.Errorf("store backend redis needs redis.address")
		}
		return store.NewRedis(rdb, cfg.Store.Prefix), nil
	case config.StoreSQLite:
		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func startHealthServer(ctx context.Context, port int, st store.Store, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := st.Ping(ctxPing); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	serve(ctx, port, mux, "health", logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	serve(ctx, port, mux, "metrics", logger)
}

func serve(ctx context.Context, port int, handler http.Handler, name string, logger *zerolog.Logger) {
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Str("server", name).Msg("server error")
	}
}
