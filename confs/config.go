package confs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultTokenTTL = 24 * time.Hour

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings.
func LoadConfig() error {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	if os.Getenv("APP_SECRET") == "" {
		return fmt.Errorf("missing required configuration: APP_SECRET")
	}
	return nil
}

// AppSecret returns the key used to sign session tokens.
func AppSecret() []byte {
	return []byte(os.Getenv("APP_SECRET"))
}

// TokenTTL returns how long issued session tokens stay valid.
// Overridable via TOKEN_TTL (Go duration syntax, e.g. "24h").
func TokenTTL() time.Duration {
	raw := os.Getenv("TOKEN_TTL")
	if raw == "" {
		return defaultTokenTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		log.Printf("warning: invalid TOKEN_TTL %q, using default", raw)
		return defaultTokenTTL
	}
	return ttl
}

// ListenAddr returns the address the HTTP server binds to.
func ListenAddr() string {
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		return addr
	}
	return "0.0.0.0:3536"
}
