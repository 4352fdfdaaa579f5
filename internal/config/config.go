package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Bot      BotConfig
	Rates    RatesConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	HTTP     HTTPConfig
	Log      LogConfig
}

type BotConfig struct {
	Token   string `env:"API_TOKEN" env-required:"true"`
	Proxy   string `env:"PROXY_BACKEND"`
	Workers int    `env:"BOT_WORKERS" env-default:"4"`
	Debug   bool   `env:"BOT_DEBUG" env-default:"false"`
}

type RatesConfig struct {
	BaseURL string        `env:"RATES_API_URL" env-default:"https://api.exchangeratesapi.io"`
	Timeout time.Duration `env:"RATES_API_TIMEOUT" env-default:"10s"`
}

// CacheConfig describes the rate cache. A zero TTL turns caching off; it is
// never treated as "keep forever".
type CacheConfig struct {
	RedisURL   string `env:"REDIS_BACKEND"`
	TTLSeconds int    `env:"REDIS_CACHE_TTL" env-default:"0"`
	Prefix     string `env:"REDIS_CACHE_PREFIX" env-default:"rates:"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type DatabaseConfig struct {
	URL string `env:"DATABASE_URL"`
}

type KafkaConfig struct {
	Brokers    []string `env:"KAFKA_BROKERS" env-separator:","`
	RatesTopic string   `env:"KAFKA_RATES_TOPIC" env-default:"rates-updates"`
	UsersTopic string   `env:"KAFKA_USERS_TOPIC" env-default:"bot-users"`
}

type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" env-default:":8080"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"`
}

// Load reads .env (when present) into the process environment and then
// fills Config from it.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine outside local development
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("REDIS_CACHE_TTL must be >= 0, got %d", c.Cache.TTLSeconds)
	}
	if c.Bot.Workers <= 0 {
		return fmt.Errorf("BOT_WORKERS must be > 0, got %d", c.Bot.Workers)
	}
	if c.Rates.BaseURL == "" {
		return fmt.Errorf("RATES_API_URL must not be empty")
	}
	return nil
}
