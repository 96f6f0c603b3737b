package cmd

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries every runtime setting of the dispatch service. Values come
// from the environment, optionally seeded by a .env file.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	BackendBaseURL string        `envconfig:"BACKEND_BASE_URL" required:"true"`
	BackendAPIKey  string        `envconfig:"BACKEND_API_KEY"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"15s"`

	// StorageDriver selects the journal store: sqlite, postgres, or memory.
	StorageDriver   string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	StorageDSN      string `envconfig:"STORAGE_DSN" default:"dispatch.db"`
	JournalCapacity int    `envconfig:"JOURNAL_CAPACITY" default:"50"`
}

// LoadConfig reads the configuration from the environment. A missing .env
// file is not an error; explicit environment variables always win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, err
	}
	return config, nil
}
