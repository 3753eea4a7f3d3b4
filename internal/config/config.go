// Package config loads application configuration from environment
// variables.  A .env file, when present, is loaded by the caller
// before Load runs.
package config

// Config holds the top-level runtime settings.  Infrastructure
// concerns (redis, rate limiting, response cache) have their own
// loaders in this package.
type Config struct {
	Env           string // application environment (dev/test/prod)
	Port          string // HTTP port to listen on
	PublishEvents bool   // publish reservation events to RabbitMQ
}

// Load reads configuration from environment variables.  Every value
// has a default so the service starts with no environment at all,
// which keeps local development and tests friction-free.
func Load() Config {
	return Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "8080"),
		PublishEvents: envBool("PUBLISH_EVENTS", true),
	}
}
