package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/happyshop/happyshop/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".happyshop.yaml"

// Environment overrides applied after the file is read.
const (
	EnvStoreDriver = "HAPPYSHOP_STORE_DRIVER"
	EnvPostgresDSN = "HAPPYSHOP_POSTGRES_DSN"
	EnvRedisURL    = "HAPPYSHOP_REDIS_URL"
	EnvMaxRetries  = "HAPPYSHOP_MAX_RETRIES"
)

// YAMLLoader implements domain.ConfigLoader by reading .happyshop.yaml.
type YAMLLoader struct {
	getenv func(string) string
}

// New creates a YAMLLoader reading overrides from the process environment.
func New() *YAMLLoader { return &YAMLLoader{getenv: os.Getenv} }

// WithEnv returns a loader reading overrides through getenv.
func WithEnv(getenv func(string) string) *YAMLLoader { return &YAMLLoader{getenv: getenv} }

// Load reads .happyshop.yaml from dir.
// Returns DefaultConfig (plus env overrides) if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.ShopConfig, error) {
	return l.LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads the config at path. A relative catalogue path is resolved
// against the directory holding the file.
func (l *YAMLLoader) LoadFile(path string) (domain.ShopConfig, error) {
	name := filepath.Base(path)
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return domain.ShopConfig{}, err
	default:
		// Decode over defaults so absent keys keep their default value.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return domain.ShopConfig{}, fmt.Errorf("parsing %s: %w", name, err)
		}
		if cfg.Catalogue != "" && !filepath.IsAbs(cfg.Catalogue) {
			cfg.Catalogue = filepath.Join(filepath.Dir(path), cfg.Catalogue)
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return domain.ShopConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return domain.ShopConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

func (l *YAMLLoader) applyEnv(cfg *domain.ShopConfig) error {
	getenv := l.getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv(EnvStoreDriver); v != "" {
		cfg.Store.Driver = domain.StoreDriver(v)
	}
	cfg.Store.PostgresDSN = getenvDefault(getenv, EnvPostgresDSN, cfg.Store.PostgresDSN)
	cfg.Store.RedisURL = getenvDefault(getenv, EnvRedisURL, cfg.Store.RedisURL)
	if v := getenv(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxRetries, err)
		}
		cfg.Store.MaxRetries = n
	}
	return nil
}

func getenvDefault(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}
