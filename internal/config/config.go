// Package config loads process configuration from an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers understood by the API.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration for the vendor API and web UI.
type Config struct {
	App   AppConfig   `yaml:"app"`
	Store StoreConfig `yaml:"store"`
	Web   WebConfig   `yaml:"web"`
}

// AppConfig holds API server configuration.
type AppConfig struct {
	Port            string        `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects and configures the vendor store.
type StoreConfig struct {
	Driver          string `yaml:"driver"`
	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`
	PostgresDSN     string `yaml:"postgres_dsn"`
}

// WebConfig holds configuration of the browser UI server.
type WebConfig struct {
	Port   string `yaml:"port"`
	APIURL string `yaml:"api_url"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Port:            "5000",
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver:          DriverMongo,
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "vendors",
			MongoCollection: "vendors",
		},
		Web: WebConfig{
			Port:   "3000",
			APIURL: "http://localhost:5000/api",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; when empty
// the VENDORS_CONFIG environment variable is consulted. A missing .env file
// is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("VENDORS_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.App.Port = getEnv("APP_PORT", getEnv("PORT", c.App.Port))
	if origins, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		c.App.AllowedOrigins = splitList(origins)
	}
	if raw, ok := os.LookupEnv("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		c.App.ShutdownTimeout = d
	}

	c.Store.Driver = strings.ToLower(getEnv("STORE_DRIVER", c.Store.Driver))
	c.Store.MongoURI = getEnv("MONGODB_URI", c.Store.MongoURI)
	c.Store.MongoDatabase = getEnv("MONGODB_DATABASE", c.Store.MongoDatabase)
	c.Store.MongoCollection = getEnv("MONGODB_COLLECTION", c.Store.MongoCollection)
	c.Store.PostgresDSN = getEnv("DATABASE_URL", c.Store.PostgresDSN)

	c.Web.Port = getEnv("WEB_PORT", c.Web.Port)
	c.Web.APIURL = getEnv("VENDOR_API_URL", c.Web.APIURL)
	return nil
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("app port must be set")
	}
	if c.App.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.App.ShutdownTimeout)
	}
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return fmt.Errorf("mongo store requires MONGODB_URI and MONGODB_DATABASE")
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("postgres store requires DATABASE_URL")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q (want %s, %s or %s)",
			c.Store.Driver, DriverMongo, DriverPostgres, DriverMemory)
	}
	if c.Web.APIURL == "" {
		return fmt.Errorf("web api url must be set")
	}
	return nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
