package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

type Listen struct {
	BindIp string `yaml:"bind_ip" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env-default:"8080"`
}

type Database struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"invite.db"`
}

type Rewards struct {
	// ExchangeRate is the local-currency units per USD used for display
	// conversion.
	ExchangeRate string `yaml:"exchange_rate" env:"EXCHANGE_RATE" env-default:"83"`
}

type Config struct {
	Listen   Listen   `yaml:"listen"`
	Database Database `yaml:"database"`
	Rewards  Rewards  `yaml:"rewards"`
	Env      string   `yaml:"env" env-default:"local"`
}

// ExchangeRate parses the configured rate.
func (c *Config) ExchangeRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Rewards.ExchangeRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid exchange rate %q: %w", c.Rewards.ExchangeRate, err)
	}
	if rate.IsNegative() || rate.IsZero() {
		return decimal.Zero, fmt.Errorf("exchange rate must be positive, got %q", c.Rewards.ExchangeRate)
	}
	return rate, nil
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("config: %s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
