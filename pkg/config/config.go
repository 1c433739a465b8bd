// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"time"
)

// App holds all application configuration.
type App struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Server    Server
	RateLimit RateLimit
	Bank      Bank
}

// Server holds the HTTP listener configuration.
type Server struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"SERVER_PORT" default:"3000"`
}

// RateLimit holds the request rate limiting configuration.
type RateLimit struct {
	MaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// Bank holds ledger-level settings.
type Bank struct {
	Currency string `envconfig:"BANK_CURRENCY" default:"USD"`
}
