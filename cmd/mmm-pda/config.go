package main

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	mmm_config "github.com/the-1ndex/mmm/mmm/config"
)

const (
	metricsProviderNoop       = "noop"
	metricsProviderPrometheus = "prometheus"
	metricsProviderNewRelic   = "newrelic"
)

type serviceConfig struct {
	GrpcListenAddress    string
	MetricsListenAddress string
	MetricsProvider      string
	NewRelicLicense      string
	PostgresUrl          string
	ApplySchema          bool
	LogLevel             string
	ShutdownTimeout      time.Duration
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		GrpcListenAddress:    mmm_config.DefaultGrpcListenAddress,
		MetricsListenAddress: mmm_config.DefaultMetricsListenAddress,
		MetricsProvider:      metricsProviderNoop,
		LogLevel:             "info",
		ShutdownTimeout:      10 * time.Second,
	}
}

type fileConfig struct {
	GrpcListenAddress    string `toml:"grpc_listen_address"`
	MetricsListenAddress string `toml:"metrics_listen_address"`
	MetricsProvider      string `toml:"metrics_provider"`
	NewRelicLicense      string `toml:"newrelic_license"`
	PostgresUrl          string `toml:"postgres_url"`
	ApplySchema          bool   `toml:"apply_schema"`
	LogLevel             string `toml:"log_level"`
	ShutdownTimeout      string `toml:"shutdown_timeout"`
}

// loadServiceConfig overlays values defined in the TOML file at path onto the
// defaults. An empty path yields the defaults.
func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := defaultServiceConfig()
	if len(path) == 0 {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, errors.Wrap(err, "error loading config")
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return serviceConfig{}, errors.Errorf("unknown config key: %s", undecoded[0].String())
	}

	if meta.IsDefined("grpc_listen_address") {
		cfg.GrpcListenAddress = strings.TrimSpace(raw.GrpcListenAddress)
	}

	if meta.IsDefined("metrics_listen_address") {
		cfg.MetricsListenAddress = strings.TrimSpace(raw.MetricsListenAddress)
	}

	if meta.IsDefined("metrics_provider") {
		cfg.MetricsProvider = strings.ToLower(strings.TrimSpace(raw.MetricsProvider))
	}

	if meta.IsDefined("newrelic_license") {
		cfg.NewRelicLicense = strings.TrimSpace(raw.NewRelicLicense)
	}

	if meta.IsDefined("postgres_url") {
		cfg.PostgresUrl = strings.TrimSpace(raw.PostgresUrl)
	}

	if meta.IsDefined("apply_schema") {
		cfg.ApplySchema = raw.ApplySchema
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("shutdown_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ShutdownTimeout))
		if err != nil {
			return serviceConfig{}, errors.Wrap(err, "error parsing shutdown_timeout")
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, cfg.validate()
}

func (c serviceConfig) validate() error {
	if len(c.GrpcListenAddress) == 0 {
		return errors.New("grpc_listen_address is required")
	}

	switch c.MetricsProvider {
	case metricsProviderNoop:
	case metricsProviderPrometheus:
		if len(c.MetricsListenAddress) == 0 {
			return errors.Errorf("metrics_listen_address is required for %s", metricsProviderPrometheus)
		}
	case metricsProviderNewRelic:
		if len(c.NewRelicLicense) == 0 {
			return errors.Errorf("newrelic_license is required for %s", metricsProviderNewRelic)
		}
	default:
		return errors.Errorf("unknown metrics_provider: %q", c.MetricsProvider)
	}

	if c.ApplySchema && len(c.PostgresUrl) == 0 {
		return errors.New("apply_schema requires postgres_url")
	}

	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	return nil
}
