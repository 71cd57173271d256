package main

import (
	"fmt"

	"github.com/at-ishikawa/lessoner/internal/config"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate() > %w", err)
	}
	return cfg, nil
}
