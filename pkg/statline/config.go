package statline

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/harunnryd/statline/pkg/configutil"
	"github.com/harunnryd/statline/pkg/errorsx"
)

// DefaultPrefix qualifies metric names when no prefix is configured.
const DefaultPrefix = "statsd"

// Config carries the statsd settings block.
type Config struct {
	Enabled    bool     `mapstructure:"enabled"`
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Prefix     string   `mapstructure:"prefix"`
	DNSServers []string `mapstructure:"dns_servers"`
}

// LoadConfig reads the statsd block from a config file. Every key is
// optional; an absent block yields a disabled config.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("statsd.enabled", false)
	v.SetDefault("statsd.prefix", DefaultPrefix)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Statsd Config `mapstructure:"statsd"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	cfg := raw.Statsd
	expandEnvStrings(&cfg)
	return cfg.withDefaults(), nil
}

// FromSettings builds a Config from a free-form settings map, the
// shape embedding applications hand around. Keys are matched case,
// underscore, and hyphen insensitively; values are weakly typed, so a
// "8125" string decodes into the port.
func FromSettings(settings map[string]any) (Config, error) {
	schema := configutil.Schema{
		Optional: []string{"enabled", "host", "port", "prefix", "dns_servers"},
	}
	if err := configutil.ValidateSettings(settings, schema); err != nil {
		return Config{}, errorsx.Wrap(err, errorsx.ReasonConfigInvalid)
	}
	var cfg Config
	if err := configutil.DecodeSettings(settings, &cfg); err != nil {
		return Config{}, errorsx.Wrap(err, errorsx.ReasonConfigInvalid)
	}
	return cfg.withDefaults(), nil
}

// Validate reports whether an enabled config names a usable endpoint.
// Disabled configs are always valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Host) == "" {
		return errorsx.Wrap(fmt.Errorf("statsd.host is required"), errorsx.ReasonConfigInvalid)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errorsx.Wrap(fmt.Errorf("statsd.port %d out of range", c.Port), errorsx.ReasonConfigInvalid)
	}
	return nil
}

func (c Config) withDefaults() Config {
	c.Prefix = configutil.StringValue(c.Prefix, DefaultPrefix)
	return c
}

func expandEnvStrings(cfg *Config) {
	cfg.Host = os.ExpandEnv(cfg.Host)
	cfg.Prefix = os.ExpandEnv(cfg.Prefix)
	for i, s := range cfg.DNSServers {
		cfg.DNSServers[i] = os.ExpandEnv(s)
	}
}
