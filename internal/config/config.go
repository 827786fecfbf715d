// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Before the YAML file is read, .env and .env.local files in the working
// directory are loaded into the process environment (if they exist), so
// any env:"..." override below can also live in a dotenv file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers understood by the application.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path of the backing store: the JSON
	// file for the "json" driver, the .db file for the "sqlite" driver.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/contacts.json"`

	// StorageDriver selects the backing store implementation.
	StorageDriver string `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"json"`

	// ExportDir is the parent of the transient directory created for each
	// export. Empty means the OS temp directory.
	ExportDir string `yaml:"export_dir" env:"EXPORT_DIR"`

	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// Load reads the config file at path, applies environment overrides and
// checks the values cleanenv cannot check on its own.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	switch cfg.StorageDriver {
	case DriverJSON, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return &cfg, nil
}

// MustLoad resolves the config path, then reads, validates, and returns
// the application config. It exits the process on any failure, so if this
// function returns the config is valid.
func MustLoad() *Config {
	// Missing dotenv files are fine; real environment variables still win
	// because godotenv never overwrites variables that are already set.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
