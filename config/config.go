package config

import (
	"flag"
	"os"
	"strconv"
)

// defaultWorkers matches spec.md C8's default worker-thread count.
const defaultWorkers = 6

// Config holds all application configuration.
type Config struct {
	Port    int
	Workers int
	Env     string
}

// New loads configuration from flags, then env vars as an override.
func New() *Config {
	cfg := &Config{}

	flag.IntVar(&cfg.Port, "port", 8080, "HTTP server port")
	flag.IntVar(&cfg.Workers, "workers", defaultWorkers, "number of SO_REUSEPORT worker threads")
	flag.StringVar(&cfg.Env, "env", "development", "environment (development/production)")

	flag.Parse()

	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}

	return cfg
}
