// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package config loads CLI configuration from defaults, an optional
// ydbvalue.toml file and YDBVALUE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the conformance CLI.
type Config struct {
	Log       LogConfig
	Arrow     ArrowConfig
	Telemetry TelemetryConfig
}

type LogConfig struct {
	Level  string
	Format string // json or console
}

type ArrowConfig struct {
	Compression string // none or zstd
	BatchSize   int    // Rows per record batch
}

type TelemetryConfig struct {
	Enabled     bool   // Export decode spans and metrics to stderr
	ServiceName string // service.name resource attribute
}

// Load loads configuration from the environment and an optional config file.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("YDBVALUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("ydbvalue")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.ydbvalue/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Arrow: ArrowConfig{
			Compression: strings.ToLower(v.GetString("arrow.compression")),
			BatchSize:   v.GetInt("arrow.batch_size"),
		},
		Telemetry: TelemetryConfig{
			Enabled:     v.GetBool("telemetry.enabled"),
			ServiceName: v.GetString("telemetry.service_name"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	switch c.Arrow.Compression {
	case "none", "zstd":
	default:
		return fmt.Errorf("invalid arrow.compression %q: want none or zstd", c.Arrow.Compression)
	}
	if c.Arrow.BatchSize <= 0 {
		return fmt.Errorf("invalid arrow.batch_size %d: must be positive", c.Arrow.BatchSize)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("arrow.compression", "none")
	v.SetDefault("arrow.batch_size", 1024)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "ydb-value-conformance-go")
}
