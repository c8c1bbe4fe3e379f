// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config is the whole service configuration. It is built once in main and
// handed to constructors; nothing reads the environment after Load.
type Config struct {
	ServerAddress   string        `env:"SERVER_ADDRESS" envDefault:":9090"`
	ContextTimeout  time.Duration `env:"CONTEXT_TIMEOUT" envDefault:"30s"`
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"mysql"`
	JWTSecret       string        `env:"JWT_SECRET"`
	BloomFilterSize uint64        `env:"BLOOM_FILTER_SIZE" envDefault:"10000000"`

	Database     Database     `envPrefix:"DATABASE_"`
	Mongo        Mongo        `envPrefix:"MONGO_"`
	Cache        Cache        `envPrefix:"CACHE_"`
	Engagement   Engagement   `envPrefix:"ENGAGEMENT_"`
	Relationship Relationship `envPrefix:"RELATIONSHIP_"`
	Repair       Repair       `envPrefix:"REPAIR_"`
	Log          Log          `envPrefix:"LOG_"`
}

type Database struct {
	Host        string        `env:"HOST" envDefault:"127.0.0.1"`
	Port        string        `env:"PORT" envDefault:"3306"`
	User        string        `env:"USER" envDefault:"root"`
	Pass        string        `env:"PASS"`
	Name        string        `env:"NAME" envDefault:"social"`
	Loc         string        `env:"LOC" envDefault:"UTC"`
	AutoMigrate bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	MaxRetry    int           `env:"MAX_RETRY" envDefault:"10"`
	RetryDelay  time.Duration `env:"RETRY_DELAY" envDefault:"2s"`
}

// DSN renders the go-sql-driver connection string.
func (d Database) DSN() string {
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", d.User, d.Pass, net.JoinHostPort(d.Host, d.Port), d.Name, val.Encode())
}

type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://127.0.0.1:27017"`
	Database string `env:"DATABASE" envDefault:"social"`
}

// Cache configures redis. An empty host disables the post cache and the bloom filter.
type Cache struct {
	Host string        `env:"HOST"`
	Port string        `env:"PORT" envDefault:"6379"`
	Pass string        `env:"PASS"`
	DB   int           `env:"DB" envDefault:"0"`
	TTL  time.Duration `env:"TTL" envDefault:"10m"`
}

func (c Cache) Enabled() bool {
	return c.Host != ""
}

func (c Cache) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

type Engagement struct {
	RetractOnUnlike bool `env:"RETRACT_ON_UNLIKE" envDefault:"false"`
}

type Relationship struct {
	RefuseBlockedFollow bool `env:"REFUSE_BLOCKED_FOLLOW" envDefault:"false"`
}

type Repair struct {
	QueueSize   int           `env:"QUEUE_SIZE" envDefault:"1024"`
	Interval    time.Duration `env:"INTERVAL" envDefault:"1s"`
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"5"`
}

type Log struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// Load reads the given dotenv files (".env" when none are named) into the
// process environment, then parses it. Missing dotenv files are ignored and
// variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMySQL, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.ContextTimeout <= 0 {
		return fmt.Errorf("CONTEXT_TIMEOUT must be positive, got %s", c.ContextTimeout)
	}
	return nil
}
