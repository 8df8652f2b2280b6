package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// DevTokenSecret signs session tokens when TOKEN_SECRET is unset. It is
// rejected in production.
const DevTokenSecret = "jobboard-dev-secret"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendURL selects a remote API. Empty runs the backend in-process.
	BackendURL string `env:"BACKEND_URL"`

	Mock    MockConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type MockConfig struct {
	Latency     time.Duration `env:"MOCK_LATENCY,  default=500ms"`
	BcryptCost  int           `env:"BCRYPT_COST,   default=10"`
	TokenSecret string        `env:"TOKEN_SECRET,  default=jobboard-dev-secret"`
	Seed        bool          `env:"MOCK_SEED,     default=true"`
}

type SessionConfig struct {
	Store string `env:"SESSION_STORE, default=file"`
	// File defaults to $HOME/.jobboard/currentUser.json when empty.
	File string `env:"SESSION_FILE"`
	Key  string `env:"SESSION_KEY,   default=currentUser"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects combinations that cannot work.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case StoreFile, StoreRedis, StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.Mock.Latency < 0 {
		return fmt.Errorf("config: MOCK_LATENCY must not be negative")
	}
	if c.Mock.BcryptCost < 4 || c.Mock.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST %d out of range 4..31", c.Mock.BcryptCost)
	}
	if c.IsProduction() && c.Mock.TokenSecret == DevTokenSecret {
		return fmt.Errorf("config: TOKEN_SECRET must be set in production")
	}
	return nil
}

// LoadWith reads configuration through lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
