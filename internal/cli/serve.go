package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/p2lu/turingtoy/internal/logging"
	"github.com/p2lu/turingtoy/pkg/adapters/file"
	httpAdapter "github.com/p2lu/turingtoy/pkg/adapters/http"
	"github.com/p2lu/turingtoy/pkg/adapters/memory"
	"github.com/p2lu/turingtoy/pkg/adapters/redis"
	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/observability"
	"github.com/p2lu/turingtoy/pkg/persistence/middleware"
	"github.com/p2lu/turingtoy/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions holds the flags of the serve command.
type ServeOptions struct {
	Addr          string
	Steps         int
	MaxSteps      int
	MachinesDir   string
	StoreDir      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
	// StoreKey, when set, encrypts stored results with AES-256-GCM.
	StoreKey      string
	Debug         bool
}

// newStore picks the result store (Redis, then a directory, then memory)
// and wraps it with encryption when a key is configured.
func newStore(opts ServeOptions) (ports.ResultStore, func() error, error) {
	store, closeStore := baseStore(opts)
	if opts.StoreKey == "" {
		return store, closeStore, nil
	}
	key, err := middleware.ParseKey(opts.StoreKey)
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("invalid store key: %w", err)
	}
	enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return middleware.Chain(store, enc), closeStore, nil
}

func baseStore(opts ServeOptions) (ports.ResultStore, func() error) {
	switch {
	case opts.RedisAddr != "":
		var redisOpts []redis.Option
		if opts.RedisTTL > 0 {
			redisOpts = append(redisOpts, redis.WithTTL(opts.RedisTTL))
		}
		store := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, redisOpts...)
		return store, store.Close
	case opts.StoreDir != "":
		return file.NewStore(opts.StoreDir), func() error { return nil }
	default:
		return memory.NewStore(), func() error { return nil }
	}
}

// NewServer builds the HTTP server of the serve command without starting it.
func NewServer(opts ServeOptions, logger *slog.Logger) (*http.Server, func() error, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	engine := createEngine(EngineOptions{
		Debug: opts.Debug,
		Hooks: []domain.LifecycleHooks{metrics.Hooks()},
	}, logger)

	store, closeStore, err := newStore(opts)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithStore(store),
		httpAdapter.WithMetrics(reg),
		httpAdapter.WithLogger(logger),
	}
	if opts.Steps > 0 {
		handlerOpts = append(handlerOpts, httpAdapter.WithDefaultSteps(opts.Steps))
	}
	if opts.MaxSteps > 0 {
		handlerOpts = append(handlerOpts, httpAdapter.WithMaxSteps(opts.MaxSteps))
	}
	if opts.MachinesDir != "" {
		handlerOpts = append(handlerOpts, httpAdapter.WithLoader(file.NewLoader(opts.MachinesDir)))
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           httpAdapter.NewHandler(engine, handlerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv, closeStore, nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	// the server always logs; --debug only lowers the level
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	srv, closeStore, err := NewServer(opts, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting turingtoy server", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
			return srv.Close()
		}
		logger.Info("turingtoy server stopped gracefully")
		return nil
	}
}
