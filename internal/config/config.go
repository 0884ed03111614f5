package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string
	Port string

	Log struct {
		Level  string
		Format string
	}

	Store struct {
		Driver string
		DSN    string
	}

	Session struct {
		Store        string
		CookieName   string
		TTL          time.Duration
		CookieSecure bool
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	RabbitMQ struct {
		URL     string
		Queue   string
		Consume bool
	}

	SeedSampleData bool
	FeaturedLimit  int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("SESSION_COOKIE_NAME", "vivaham_session")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "vivaham-dev-secret")
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "vivaham_events")
	v.SetDefault("RABBITMQ_CONSUME", false)
	v.SetDefault("SEED_SAMPLE_DATA", false)
	v.SetDefault("FEATURED_LIMIT", 4)
}

// Load reads the .env files for APP_ENV, then the process environment.
func Load() (*Config, error) {
	LoadDotEnvs("")
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from the keys held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	cfg.Env = v.GetString("APP_ENV")
	cfg.Port = normalizePort(v.GetString("APP_PORT"))

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL")))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT")))

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	cfg.Store.DSN = v.GetString("DATABASE_DSN")
	switch cfg.Store.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: must be memory, sqlite or postgres", cfg.Store.Driver)
	}

	cfg.Session.Store = strings.ToLower(strings.TrimSpace(v.GetString("SESSION_STORE")))
	cfg.Session.CookieName = v.GetString("SESSION_COOKIE_NAME")
	cfg.Session.TTL = v.GetDuration("SESSION_TTL")
	cfg.Session.CookieSecure = v.GetBool("SESSION_COOKIE_SECURE")
	switch cfg.Session.Store {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE %q: must be memory or redis", cfg.Session.Store)
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", v.GetString("SESSION_TTL"))
	}

	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.TTL = v.GetDuration("JWT_TTL")
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL %q", v.GetString("JWT_TTL"))
	}

	cfg.RabbitMQ.URL = v.GetString("RABBITMQ_URL")
	cfg.RabbitMQ.Queue = v.GetString("RABBITMQ_QUEUE")
	cfg.RabbitMQ.Consume = v.GetBool("RABBITMQ_CONSUME")

	cfg.SeedSampleData = v.GetBool("SEED_SAMPLE_DATA")
	cfg.FeaturedLimit = v.GetInt("FEATURED_LIMIT")
	if cfg.FeaturedLimit <= 0 {
		cfg.FeaturedLimit = 4
	}
	return cfg, nil
}

// LoadDotEnvs loads .env files from rootPath. Earlier files win because
// godotenv never overrides a variable that is already set.
func LoadDotEnvs(rootPath string) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	_ = godotenv.Load(rootPath + ".env." + env + ".local")
	_ = godotenv.Load(rootPath + ".env.local")
	_ = godotenv.Load(rootPath + ".env." + env)
	_ = godotenv.Load(rootPath + ".env")
}

// normalizePort accepts "5000" as well as ":5000" or "host:5000".
func normalizePort(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ":5000"
	}
	if !strings.Contains(p, ":") {
		return ":" + p
	}
	return p
}
