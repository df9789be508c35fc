package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"currency-converter/internal"
)

type Config struct {
	HTTPPort string `envconfig:"PORT" default:"8080"`

	APIKey     string        `envconfig:"EXCHANGE_API_KEY" required:"true"`
	APIURL     string        `envconfig:"EXCHANGE_API_URL" default:"https://v6.exchangerate-api.com/v6"`
	APITimeout time.Duration `envconfig:"EXCHANGE_API_TIMEOUT" default:"5s"`

	CacheFile string        `envconfig:"CACHE_FILE" default:"exchange_rates_cache.json"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"1h"`

	WarmBases []string `envconfig:"WARM_BASES" default:"USD,EUR"`
	CronSpec  string   `envconfig:"REFRESH_CRON" default:"*/30 * * * *"`
	Location  string   `envconfig:"LOCATION" default:"UTC"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadConfig() (Config, error) {
	if err := godotenv.Overload(); err != nil {
		log.Println(errors.New("no .env file loaded, using process environment"))
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("EXCHANGE_API_KEY is empty")
	}
	if cfg.CacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}

	return cfg, nil
}

// Bases validates WARM_BASES against the currency table.
func (c Config) Bases() ([]internal.CurrencyCode, error) {
	out := make([]internal.CurrencyCode, 0, len(c.WarmBases))
	for _, s := range c.WarmBases {
		if strings.TrimSpace(s) == "" {
			continue
		}
		ccy, err := internal.NewCurrencyCode(s)
		if err != nil {
			return nil, fmt.Errorf("WARM_BASES: %w", err)
		}
		out = append(out, ccy)
	}
	return out, nil
}
