package domain

import "fmt"

// StoreDriver selects the inventory store backend.
type StoreDriver string

const (
	StoreMemory   StoreDriver = "memory"
	StorePostgres StoreDriver = "postgres"
	StoreRedis    StoreDriver = "redis"
)

// ValidStoreDrivers enumerates all recognized store drivers.
var ValidStoreDrivers = []StoreDriver{StoreMemory, StorePostgres, StoreRedis}

// Order id schemes.
const (
	OrderIDsUUID     = "uuid"
	OrderIDsSequence = "sequence"
)

var validOrderIDs = []string{OrderIDsUUID, OrderIDsSequence}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// ShopConfig holds shop configuration loaded from .happyshop.yaml.
type ShopConfig struct {
	Store       StoreConfig `yaml:"store"        json:"store"`
	Catalogue   string      `yaml:"catalogue"    json:"catalogue,omitempty"`
	ImageFolder string      `yaml:"image_folder" json:"image_folder"`
	Currency    string      `yaml:"currency"     json:"currency"`
	OrderIDs    string      `yaml:"order_ids"    json:"order_ids"`
	OrderLog    string      `yaml:"order_log"    json:"order_log"`
	LogLevel    string      `yaml:"log_level"    json:"log_level"`
}

// StoreConfig configures the inventory store backend.
type StoreConfig struct {
	Driver      StoreDriver `yaml:"driver"       json:"driver"`
	PostgresDSN string      `yaml:"postgres_dsn" json:"postgres_dsn,omitempty"`
	RedisURL    string      `yaml:"redis_url"    json:"redis_url,omitempty"`
	RedisPrefix string      `yaml:"redis_prefix" json:"redis_prefix,omitempty"`
	MaxRetries  int         `yaml:"max_retries"  json:"max_retries,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() ShopConfig {
	return ShopConfig{
		Store: StoreConfig{
			Driver:      StoreMemory,
			RedisPrefix: "happyshop",
			MaxRetries:  3,
		},
		ImageFolder: "images",
		Currency:    "£",
		OrderIDs:    OrderIDsUUID,
		OrderLog:    ".happyshop/orders.json",
		LogLevel:    "warn",
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ShopConfig) Validate() error {
	// 1. store driver must be known
	if !contains(ValidStoreDrivers, c.Store.Driver) {
		return fmt.Errorf("unknown store.driver %q (valid: memory, postgres, redis)", c.Store.Driver)
	}

	// 2. the selected backend must be reachable
	switch c.Store.Driver {
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("store.postgres_dsn is required for the postgres driver")
		}
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis driver")
		}
		if c.Store.RedisPrefix == "" {
			return fmt.Errorf("store.redis_prefix must not be empty")
		}
	}

	if c.Store.MaxRetries < 0 {
		return fmt.Errorf("store.max_retries must be >= 0 (got %d)", c.Store.MaxRetries)
	}

	// 3. order id scheme
	if !contains(validOrderIDs, c.OrderIDs) {
		return fmt.Errorf("unknown order_ids %q (valid: uuid, sequence)", c.OrderIDs)
	}

	// 4. log level
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}

	if c.OrderLog == "" {
		return fmt.Errorf("order_log must not be empty")
	}

	return nil
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
