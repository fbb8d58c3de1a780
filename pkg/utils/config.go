package utils

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config provides thread-safe access to settings loaded from .env files and the environment
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config instance with a copy of the provided key-value pairs
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string, len(values)),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv creates a new Config instance by loading environment variables
// from the specified .env files
func NewConfigFromEnv(files ...string) *Config {
	return NewConfig(LoadEnv(files...))
}

// lookup returns the raw value and whether the key is present
func (c *Config) lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, exists := c.values[key]
	return value, exists
}

// Get retrieves a configuration value by key
// Returns empty string if key doesn't exist
func (c *Config) Get(key string) string {
	value, _ := c.lookup(key)
	return value
}

// GetWithDefault retrieves a configuration value by key with a fallback for missing or empty values
func (c *Config) GetWithDefault(key, defaultValue string) string {
	if value, exists := c.lookup(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// GetBool retrieves a configuration value as a boolean
// Returns false if key doesn't exist or cannot be parsed as boolean
func (c *Config) GetBool(key string) bool {
	value := strings.TrimSpace(c.Get(key))
	if value == "" {
		return false
	}

	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed
	}

	// Handle common boolean representations
	switch strings.ToLower(value) {
	case "yes", "on", "enabled":
		return true
	default:
		return false
	}
}

// GetBoolWithDefault retrieves a configuration value as a boolean with a fallback for missing keys
func (c *Config) GetBoolWithDefault(key string, defaultValue bool) bool {
	if _, exists := c.lookup(key); !exists {
		return defaultValue
	}
	return c.GetBool(key)
}

// GetInt retrieves a configuration value as an integer
// Returns 0 if key doesn't exist or cannot be parsed as integer
func (c *Config) GetInt(key string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(c.Get(key)))
	if err != nil {
		return 0
	}
	return parsed
}

// GetIntWithDefault retrieves a configuration value as an integer with a fallback for missing keys
func (c *Config) GetIntWithDefault(key string, defaultValue int) int {
	if _, exists := c.lookup(key); !exists {
		return defaultValue
	}
	return c.GetInt(key)
}

// GetDuration parses a value such as "30s" or "2m", falling back on missing or invalid values
func (c *Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(c.Get(key))
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetList splits a comma separated value, dropping blank entries
func (c *Config) GetList(key string, defaultValue []string) []string {
	value := c.Get(key)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Set modifies a configuration value
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	_, exists := c.lookup(key)
	return exists
}

// Clone creates a deep copy of the config
func (c *Config) Clone() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return NewConfig(c.values)
}

// MySQLDSN builds a DSN from the MYSQL_* keys. It returns an empty string when no
// database name is configured, meaning no SQL store should be used
func (c *Config) MySQLDSN() string {
	dbName := c.Get("MYSQL_DATABASE")
	if dbName == "" {
		return ""
	}

	dbConfig := mysql.Config{
		User:                 c.Get("MYSQL_USER"),
		Passwd:               c.Get("MYSQL_ROOT_PASSWORD"),
		Net:                  "tcp",
		Addr:                 fmt.Sprintf("%s:%s", c.GetWithDefault("MYSQL_HOST", "localhost"), c.GetWithDefault("MYSQL_PORT", "3306")),
		DBName:               dbName,
		ParseTime:            true,
		AllowNativePasswords: true,
	}

	return dbConfig.FormatDSN()
}
