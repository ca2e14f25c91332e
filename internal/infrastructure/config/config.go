package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/nolivos/client-registry/internal/core/domain"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	SourceStatic  = "static"

	developmentSecret = "development-only-secret"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=12h"`

	ClientStore    string `env:"CLIENT_STORE,    default=memory"`
	IdentitySource string `env:"IDENTITY_SOURCE, default=static"`
	SessionStore   string `env:"SESSION_STORE,   default=memory"`

	// Users is a ';'-separated list of username:password:Display Name entries.
	Users      string `env:"AUTH_USERS"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`

	ActivityWorkers int `env:"ACTIVITY_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=client_registry"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from the given lookuper and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.JWTSecret = developmentSecret
	}
	if c.ClientStore != BackendMemory && c.ClientStore != BackendMongo {
		return fmt.Errorf("CLIENT_STORE must be %q or %q, got %q", BackendMemory, BackendMongo, c.ClientStore)
	}
	if c.IdentitySource != SourceStatic && c.IdentitySource != BackendMongo {
		return fmt.Errorf("IDENTITY_SOURCE must be %q or %q, got %q", SourceStatic, BackendMongo, c.IdentitySource)
	}
	if c.SessionStore != BackendMemory && c.SessionStore != BackendRedis {
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", BackendMemory, BackendRedis, c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if _, err := c.Credentials(); err != nil {
		return err
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UsesMongo reports whether any component is backed by MongoDB.
func (c *Config) UsesMongo() bool {
	return c.ClientStore == BackendMongo || c.IdentitySource == BackendMongo
}

func (c *Config) UsesRedis() bool {
	return c.SessionStore == BackendRedis
}

// Credentials parses AUTH_USERS. It returns nil when the variable is unset.
func (c *Config) Credentials() ([]domain.Credential, error) {
	if strings.TrimSpace(c.Users) == "" {
		return nil, nil
	}

	var creds []domain.Credential
	for _, entry := range strings.Split(c.Users, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("AUTH_USERS: malformed entry %q", entry)
		}
		cred := domain.Credential{Username: parts[0], Password: parts[1]}
		if len(parts) == 3 {
			cred.DisplayName = parts[2]
		}
		creds = append(creds, cred)
	}
	return creds, nil
}
