package main

import (
	"time"

	"github.com/caarlos0/env"
)

// Settings are read from the environment; flags override them.
type Settings struct {
	ServerURL string        `env:"TYPEAHEAD_SERVER_URL" envDefault:"http://localhost:8000"`
	Timeout   time.Duration `env:"TYPEAHEAD_TIMEOUT" envDefault:"5s"`
	Env       string        `env:"APP_ENV" envDefault:"production"`
}

func LoadSettings() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, err
	}
	return s, nil
}
