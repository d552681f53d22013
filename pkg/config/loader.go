package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Validator is implemented by config structs that check their own values
// after parsing.
type Validator interface {
	Validate() error
}

// Load fills cfg from environment variables using `env` struct tags, then
// runs cfg.Validate when cfg implements Validator.
func Load(cfg any) error {
	return load(cfg, env.Options{})
}

// LoadWithPrefix is Load with every variable name prefixed, e.g. "SEARCH_".
func LoadWithPrefix(cfg any, prefix string) error {
	return load(cfg, env.Options{Prefix: prefix})
}

func load(cfg any, opts env.Options) error {
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}
	return nil
}
