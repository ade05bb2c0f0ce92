package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Plan is one row of the fixed subscription price table.
// Prices are configured at process start and are not negotiable at runtime.
type Plan struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// Config holds everything the server needs, assembled once in main and
// passed by reference into each component. Nothing here is mutated after Load.
type Config struct {
	Addr        string
	DSN         string
	JWTSecret   []byte
	TokenTTL    time.Duration
	CORSOrigins []string
	Plans       []Plan
	SeedCatalog bool
}

// Load reads the configuration from the environment. It expects the caller
// (cmd/api) to have already loaded a .env file if one exists.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return nil, errors.New("DB_DSN environment variable is not set")
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	ttl := 72 * time.Hour
	if raw := os.Getenv("TOKEN_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, errors.New("TOKEN_TTL_HOURS must be a positive integer")
		}
		ttl = time.Duration(hours) * time.Hour
	}

	origins := []string{"http://localhost:5173"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		Addr:        addr,
		DSN:         dsn,
		JWTSecret:   []byte(secret),
		TokenTTL:    ttl,
		CORSOrigins: origins,
		Plans:       DefaultPlans(),
		SeedCatalog: os.Getenv("SEED_CATALOG") == "true",
	}, nil
}

// DefaultPlans returns the fixed plan price table.
func DefaultPlans() []Plan {
	return []Plan{
		{ID: "basic", Name: "Basic", Price: 8.99, Currency: "USD"},
		{ID: "standard", Name: "Standard", Price: 13.99, Currency: "USD"},
		{ID: "premium", Name: "Premium", Price: 17.99, Currency: "USD"},
	}
}

// AllowedOrigin reports whether the given Origin header value may receive
// CORS headers.
func (c *Config) AllowedOrigin(origin string) bool {
	for _, o := range c.CORSOrigins {
		if o == origin {
			return true
		}
	}
	return false
}
