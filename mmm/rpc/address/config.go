package address

import (
	"github.com/the-1ndex/mmm/config"
	"github.com/the-1ndex/mmm/config/env"
)

const (
	envConfigPrefix = "ADDRESS_SERVICE_"

	AllowCustomProgramsConfigEnvName = envConfigPrefix + "ALLOW_CUSTOM_PROGRAMS"
	defaultAllowCustomPrograms       = true
)

type conf struct {
	allowCustomPrograms config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			allowCustomPrograms: env.NewBoolConfig(AllowCustomProgramsConfigEnvName, defaultAllowCustomPrograms),
		}
	}
}

// WithOverrides returns configuration with the provided values, typically for
// tests
func WithOverrides(allowCustomPrograms config.Bool) ConfigProvider {
	return func() *conf {
		return &conf{
			allowCustomPrograms: allowCustomPrograms,
		}
	}
}
