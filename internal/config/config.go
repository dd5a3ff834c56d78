// Package config loads zotero-xml settings with koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lehigh-university-libraries/zotero-xml/internal/logging"
)

// Default configuration values.
const (
	DefaultConfigFile = "zotero-xml.yaml"
	EnvPrefix         = "ZXML_"

	DefaultServerPort   = 8080
	DefaultMaxBodyBytes = 1 << 20
	DefaultWorkers      = 4
)

// Config is the root configuration structure.
type Config struct {
	Log     logging.Config `koanf:"log"`
	Convert ConvertConfig  `koanf:"convert"`
	Server  ServerConfig   `koanf:"server"`
}

// ConvertConfig holds defaults for batch conversion.
type ConvertConfig struct {
	Formats   []string `koanf:"formats" validate:"required,min=1,dive,required"`
	OutputDir string   `koanf:"output_dir" validate:"required"`
	Workers   int      `koanf:"workers" validate:"min=1,max=256"`
	StripHTML bool     `koanf:"strip_html"`
}

// ServerConfig holds HTTP host settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"required,min=1,max=65535"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes" validate:"required,min=1"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
	RateBurst int     `koanf:"rate_burst" validate:"gte=0"`

	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means the peer address is the
	// client.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,ip|cidr"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func defaults() map[string]any {
	return map[string]any{
		"log.level":             "info",
		"log.format":            "text",
		"log.file.enabled":      false,
		"log.file.path":         "./logs/zotero-xml.log",
		"log.file.max_size_mb":  100,
		"log.file.max_backups":  3,
		"log.file.max_age_days": 28,
		"log.file.compress":     true,

		"convert.formats":    []string{"mods", "dublincore"},
		"convert.output_dir": ".",
		"convert.workers":    DefaultWorkers,
		"convert.strip_html": false,

		"server.host":             "0.0.0.0",
		"server.port":             DefaultServerPort,
		"server.max_body_bytes":   DefaultMaxBodyBytes,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.shutdown_timeout": "10s",
		"server.rate_limit":       0,
		"server.rate_burst":       20,
		"server.trusted_proxies":  []string{},
	}
}

// Load builds the configuration with the following precedence (highest to
// lowest):
//  1. Environment variables (ZXML_ prefix, "__" separates sections,
//     e.g. ZXML_SERVER__MAX_BODY_BYTES)
//  2. The YAML file at path, or zotero-xml.yaml when path is empty
//  3. Default values
//
// A .env file in the working directory is loaded into the process
// environment first. LOG_LEVEL is honoured when ZXML_LOG__LEVEL is unset.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := loadFile(k, path, explicit); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}

	// Unknown LOG_LEVEL names fall back to info.
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := k.Set("log.level", strings.ToLower(logging.ParseLevel(lvl).String())); err != nil {
			return nil, fmt.Errorf("applying LOG_LEVEL: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// listKeys are read from the environment as comma-separated lists.
var listKeys = map[string]bool{
	"convert.formats":        true,
	"server.trusted_proxies": true,
}

// envValue maps ZXML_CONVERT__FORMATS=mods,dc to convert.formats=[mods dc].
func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if listKeys[key] {
		parts := strings.Split(value, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		return key, items
	}
	return key, value
}

// loadFile loads a YAML file. A missing default file is not an error; a
// missing explicitly named file is.
func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
