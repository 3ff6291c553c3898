package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// InsecureDefaultSecret is the development fallback for JWT_SECRET. main
// logs a loud warning when it is active; it must be overridden in any real
// deployment.
const InsecureDefaultSecret = "secret"

type Config struct {
	Port            string `env:"PORT,       default=8080"`
	Env             string `env:"ENV,        default=development"`
	JWTSecret       string `env:"JWT_SECRET, default=secret"`
	TokenTTLSeconds int    `env:"TOKEN_TTL_SECONDS, default=360000"`
	LogLevel        string `env:"LOG_LEVEL,  default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Registry RegistryConfig
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,    default=comuna"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RegistryConfig struct {
	BaseURL string        `env:"REGISTRY_BASE_URL, default=https://api.cedula.com.ve"`
	Timeout time.Duration `env:"REGISTRY_TIMEOUT,  default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
