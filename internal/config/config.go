package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"energy_balance/internal/model"
)

// Config holds the settings of the energy-balance tools.
type Config struct {
	// Environment selects the log encoder ("development" or "production").
	Environment string `mapstructure:"environment"`
	// LogLevel sets the logging verbosity.
	LogLevel string `mapstructure:"log_level"`
	// ZonesFile is the YAML or JSON zone graph.
	ZonesFile string `mapstructure:"zones_file"`
	// ZoneIDs selects the zones to balance. Empty means every zone in ZonesFile.
	ZoneIDs []string `mapstructure:"zone_ids"`
	// Inputs maps an input term (slug or display name) to its branch CSV.
	Inputs map[string]string `mapstructure:"inputs"`
	Output OutputConfig      `mapstructure:"output"`
	Server ServerConfig      `mapstructure:"server"`
}

type OutputConfig struct {
	// Format is "json", "csv" or "branches".
	Format string `mapstructure:"format"`
	// Storage includes the residual storage term.
	Storage bool `mapstructure:"storage"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from path (optional), then ENERGY_BALANCE_*
// environment variables, on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ENERGY_BALANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("energy-balance")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "production")
	v.SetDefault("log_level", "info")
	v.SetDefault("zones_file", "zones.yaml")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.storage", true)
	v.SetDefault("server.addr", ":8080")
}

// Validate rejects unknown input terms and output formats.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "csv", "branches":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	for name := range c.Inputs {
		if _, ok := model.TermKindFromString(name); !ok {
			return fmt.Errorf("unknown input term %q", name)
		}
	}
	return nil
}

// InputFiles returns the configured CSV path per input term.
func (c *Config) InputFiles() map[model.TermKind]string {
	out := make(map[model.TermKind]string, len(c.Inputs))
	for name, path := range c.Inputs {
		if kind, ok := model.TermKindFromString(name); ok && path != "" {
			out[kind] = path
		}
	}
	return out
}
