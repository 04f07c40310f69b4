// Package config loads runtime settings from defaults, an optional YAML file
// and ECOLLECT_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ecollection/pkg/avatar"
	"github.com/goliatone/go-ecollection/pkg/submit"
)

// Environments and their API base URLs.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DevelopmentBaseURL = "http://127.0.0.1:8080/api/v1"
	ProductionBaseURL  = "https://techinnover-server.herokuapp.com/api/v1"
)

// Config holds every runtime setting.
type Config struct {
	Environment    string `yaml:"environment" env:"ECOLLECT_ENV"`
	BaseURL        string `yaml:"base_url" env:"ECOLLECT_BASE_URL"`
	SubmitPath     string `yaml:"submit_path" env:"ECOLLECT_SUBMIT_PATH"`
	Listen         string `yaml:"listen" env:"ECOLLECT_LISTEN"`
	LogLevel       string `yaml:"log_level" env:"ECOLLECT_LOG_LEVEL"`
	MaxAvatarBytes int64  `yaml:"max_avatar_bytes" env:"ECOLLECT_MAX_AVATAR_BYTES"`
	ThemeVariant   string `yaml:"theme_variant" env:"ECOLLECT_THEME_VARIANT"`
	TemplatesDir   string `yaml:"templates_dir" env:"ECOLLECT_TEMPLATES_DIR"`
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		Environment:    EnvDevelopment,
		SubmitPath:     submit.SubmitPath,
		Listen:         "127.0.0.1:8086",
		LogLevel:       "info",
		MaxAvatarBytes: avatar.DefaultMaxBytes,
	}
}

// Load layers the YAML file at path (skipped when empty) and the environment
// over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ParseEnv overlays environment variables onto target. Unset variables leave
// the existing values alone.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// ResolvedBaseURL is BaseURL when set, otherwise the environment default.
func (c Config) ResolvedBaseURL() string {
	if base := strings.TrimSpace(c.BaseURL); base != "" {
		return base
	}
	if c.Environment == EnvProduction {
		return ProductionBaseURL
	}
	return DevelopmentBaseURL
}

// Endpoint is the full submit URL.
func (c Config) Endpoint() string {
	base := strings.TrimRight(c.ResolvedBaseURL(), "/")
	path := strings.TrimSpace(c.SubmitPath)
	if path == "" {
		path = submit.SubmitPath
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config: unknown environment %q", c.Environment)
	}

	u, err := url.Parse(c.Endpoint())
	if err != nil {
		return fmt.Errorf("config: invalid endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: endpoint %q must be an absolute http(s) URL", c.Endpoint())
	}

	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("config: listen address is required")
	}
	if c.MaxAvatarBytes <= 0 {
		return fmt.Errorf("config: max avatar bytes must be positive, got %d", c.MaxAvatarBytes)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
