package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/weave"
	httpAdapter "github.com/aretw0/weave/pkg/adapters/http"
	"github.com/aretw0/weave/pkg/adapters/memory"
	"github.com/aretw0/weave/pkg/adapters/redis"
	"github.com/aretw0/weave/pkg/observability"
	"github.com/aretw0/weave/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()
	logger := createLogger(opts)

	cache, closeCache, err := createCache(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	planner := weave.New(
		weave.WithLogger(logger),
		weave.WithCache(cache),
		weave.WithMetrics(observability.NewMetrics(reg)),
	)

	handlerOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if opts.Config.Server.Metrics {
		handlerOpts = append(handlerOpts, httpAdapter.WithMetrics(reg))
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(opts.Config.Server.Port)),
		Handler:           httpAdapter.NewHandler(planner, handlerOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting weave server", "address", srv.Addr, "metrics", opts.Config.Server.Metrics)
		printSystemMessage(opts.Stderr, "Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Start shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("weave server stopped gracefully")
		return nil
	})

	return g.Wait()
}

// createCache picks redis when an address is configured, memory otherwise.
func createCache(ctx context.Context, opts Options, logger *slog.Logger) (ports.PlanCache, func(), error) {
	rc := opts.Config.Redis
	if rc.Addr == "" {
		logger.Debug("Using in-memory plan cache")
		return memory.NewCache(), func() {}, nil
	}

	cacheOpts := []redis.Option{redis.WithTTL(rc.TTL)}
	if rc.Prefix != "" {
		cacheOpts = append(cacheOpts, redis.WithPrefix(rc.Prefix))
	}
	cache := redis.New(rc.Addr, rc.Password, rc.DB, cacheOpts...)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		cache.Close()
		return nil, nil, fmt.Errorf("redis at %s is unreachable: %w", rc.Addr, err)
	}

	logger.Info("Using redis plan cache", "addr", rc.Addr, "ttl", rc.TTL)
	return cache, func() { cache.Close() }, nil
}
