package env

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/the-1ndex/mmm/config"
)

type uint64Config struct {
	name         string
	defaultValue uint64
}

// NewUint64Config returns a uint64 read from the named environment variable,
// falling back to defaultValue when unset or unparseable
func NewUint64Config(name string, defaultValue uint64) config.Uint64 {
	return &uint64Config{name: name, defaultValue: defaultValue}
}

func (c *uint64Config) Get(_ context.Context) uint64 {
	value, ok := lookup(c.name)
	if !ok {
		return c.defaultValue
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return c.defaultValue
	}
	return parsed
}

type int64Config struct {
	name         string
	defaultValue int64
}

// NewInt64Config returns an int64 read from the named environment variable
func NewInt64Config(name string, defaultValue int64) config.Int64 {
	return &int64Config{name: name, defaultValue: defaultValue}
}

func (c *int64Config) Get(_ context.Context) int64 {
	value, ok := lookup(c.name)
	if !ok {
		return c.defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return c.defaultValue
	}
	return parsed
}

type boolConfig struct {
	name         string
	defaultValue bool
}

// NewBoolConfig returns a bool read from the named environment variable
func NewBoolConfig(name string, defaultValue bool) config.Bool {
	return &boolConfig{name: name, defaultValue: defaultValue}
}

func (c *boolConfig) Get(_ context.Context) bool {
	value, ok := lookup(c.name)
	if !ok {
		return c.defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return c.defaultValue
	}
	return parsed
}

type stringConfig struct {
	name         string
	defaultValue string
}

// NewStringConfig returns a string read from the named environment variable
func NewStringConfig(name string, defaultValue string) config.String {
	return &stringConfig{name: name, defaultValue: defaultValue}
}

func (c *stringConfig) Get(_ context.Context) string {
	value, ok := lookup(c.name)
	if !ok {
		return c.defaultValue
	}
	return value
}

type durationConfig struct {
	name         string
	defaultValue time.Duration
}

// NewDurationConfig returns a duration read from the named environment
// variable in time.ParseDuration format
func NewDurationConfig(name string, defaultValue time.Duration) config.Duration {
	return &durationConfig{name: name, defaultValue: defaultValue}
}

func (c *durationConfig) Get(_ context.Context) time.Duration {
	value, ok := lookup(c.name)
	if !ok {
		return c.defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return c.defaultValue
	}
	return parsed
}

func lookup(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, len(value) > 0
}
