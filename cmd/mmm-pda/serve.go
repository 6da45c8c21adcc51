package main

import (
	"context"
	"database/sql"
	"flag"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	grpc_metrics "github.com/the-1ndex/mmm/grpc/metrics"
	"github.com/the-1ndex/mmm/metrics"
	newrelic_metrics "github.com/the-1ndex/mmm/metrics/newrelic"
	"github.com/the-1ndex/mmm/metrics/noop"
	prometheus_metrics "github.com/the-1ndex/mmm/metrics/prometheus"
	mmm_config "github.com/the-1ndex/mmm/mmm/config"
	"github.com/the-1ndex/mmm/mmm/data/address"
	postgres_address_store "github.com/the-1ndex/mmm/mmm/data/address/postgres"
	"github.com/the-1ndex/mmm/mmm/pda"
	address_rpc "github.com/the-1ndex/mmm/mmm/rpc/address"
)

func runServe(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "path to a TOML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadServiceConfig(*configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	lis, err := net.Listen("tcp", cfg.GrpcListenAddress)
	if err != nil {
		return errors.Wrap(err, "error listening for grpc")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, log, cfg, lis)
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log_level")
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = atomicLevel
	log, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "error building logger")
	}
	return log.With(zap.String("service", mmm_config.ServiceName)), nil
}

// newMetricsProvider returns the configured provider, an HTTP handler to
// expose when the provider is scraped, and a func to flush it on shutdown
func newMetricsProvider(cfg serviceConfig) (metrics.Provider, http.Handler, func(), error) {
	switch cfg.MetricsProvider {
	case metricsProviderPrometheus:
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		provider := prometheus_metrics.NewProvider(mmm_config.ServiceName, registry)
		return provider, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), func() {}, nil
	case metricsProviderNewRelic:
		provider, err := newrelic_metrics.NewProviderFromLicense(mmm_config.ServiceName, cfg.NewRelicLicense, 0)
		if err != nil {
			return nil, nil, nil, err
		}
		return provider, nil, func() { provider.Shutdown(cfg.ShutdownTimeout) }, nil
	default:
		return noop.NewProvider(), nil, func() {}, nil
	}
}

func newAddressStore(ctx context.Context, cfg serviceConfig) (address.Store, func(), error) {
	if len(cfg.PostgresUrl) == 0 {
		return nil, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresUrl)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error opening database")
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "error connecting to database")
	}

	if cfg.ApplySchema {
		if _, err := db.ExecContext(ctx, postgres_address_store.Schema); err != nil {
			db.Close()
			return nil, nil, errors.Wrap(err, "error applying schema")
		}
	}

	return postgres_address_store.New(db), func() { db.Close() }, nil
}

func serve(ctx context.Context, log *zap.Logger, cfg serviceConfig, lis net.Listener) error {
	provider, metricsHandler, flushMetrics, err := newMetricsProvider(cfg)
	if err != nil {
		return err
	}
	defer flushMetrics()

	store, closeStore, err := newAddressStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	resolver := pda.NewResolver(log, store, pda.WithEnvConfigs())

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpc_metrics.UnaryServerInterceptor(provider)),
		grpc.StreamInterceptor(grpc_metrics.StreamServerInterceptor(provider)),
	)
	address_rpc.RegisterAddressServer(grpcServer, address_rpc.NewAddressServer(log, resolver, address_rpc.WithEnvConfigs()))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(address_rpc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	errCh := make(chan error, 2)
	go func() {
		errCh <- grpcServer.Serve(lis)
	}()

	var metricsServer *http.Server
	if metricsHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		metricsServer = &http.Server{
			Addr:              cfg.MetricsListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
				errCh <- errors.Wrap(err, "error serving metrics")
			}
		}()
	}

	log.With(
		zap.String("grpc_address", lis.Addr().String()),
		zap.String("metrics_provider", cfg.MetricsProvider),
		zap.Bool("address_index", store != nil),
	).Info("server started")

	select {
	case <-ctx.Done():
	case err = <-errCh:
		log.With(zap.Error(err)).Warn("server stopped unexpectedly")
	}

	healthServer.Shutdown()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(cfg.ShutdownTimeout):
		log.Warn("graceful stop timed out")
		grpcServer.Stop()
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		metricsServer.Shutdown(shutdownCtx)
	}

	log.Info("server stopped")
	return err
}
