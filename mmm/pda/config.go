package pda

import (
	"github.com/the-1ndex/mmm/config"
	"github.com/the-1ndex/mmm/config/env"
)

const (
	envConfigPrefix = "PDA_RESOLVER_"

	CacheSizeConfigEnvName = envConfigPrefix + "CACHE_SIZE"
	defaultCacheSize       = 10_000

	RecordAddressesConfigEnvName = envConfigPrefix + "RECORD_ADDRESSES"
	defaultRecordAddresses       = true
)

type conf struct {
	cacheSize       config.Uint64
	recordAddresses config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			cacheSize:       env.NewUint64Config(CacheSizeConfigEnvName, defaultCacheSize),
			recordAddresses: env.NewBoolConfig(RecordAddressesConfigEnvName, defaultRecordAddresses),
		}
	}
}

// WithOverrides returns configuration with the provided values, typically for
// tests
func WithOverrides(cacheSize config.Uint64, recordAddresses config.Bool) ConfigProvider {
	return func() *conf {
		return &conf{
			cacheSize:       cacheSize,
			recordAddresses: recordAddresses,
		}
	}
}
