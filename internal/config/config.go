package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds the core runtime configuration. Each field corresponds to an
// environment variable; a .env file in the working directory is loaded
// automatically before anything is read.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port the frontend listens on
	BackendURL     string        // origin of the recipe backend, e.g. http://localhost:8080
	SessionSecret  string        // HMAC secret for the signed session cookie
	SessionTTL     time.Duration // lifetime of a visitor session
	BackendTimeout time.Duration // per-request timeout for backend calls
}

// Load reads configuration from the environment. The backend origin and the
// session secret have no sensible defaults and are enforced by must();
// everything else falls back to development defaults.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "3000"),
		BackendURL:     must("BACKEND_URL"),
		SessionSecret:  must("SESSION_SECRET"),
		SessionTTL:     time.Duration(envInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		BackendTimeout: parseDur(getenv("BACKEND_TIMEOUT", "15s")),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	log.Fatalf("invalid int for %s: %q", key, v)
	return def
}
