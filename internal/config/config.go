// Package config loads server configuration from the environment.
//
// Configuration is read exactly once in main and the resulting struct is
// passed by value into the composition root. Nothing in this codebase reads
// an environment variable or a package-level config global after startup —
// the shared secret and the connection pool travel explicitly through
// constructors.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port      int           `env:"PORT, default=8080"`
	DBPath    string        `env:"DB_PATH, default=data/reads-stash.db"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	// BcryptCost is tunable so tests and dev machines can use a cheap cost.
	// Values below bcrypt's minimum fall back to the production default.
	BcryptCost int    `env:"BCRYPT_COST, default=12"`
	LogLevel   string `env:"LOG_LEVEL, default=info"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
