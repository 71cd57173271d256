package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const DefaultBaseURL = "http://localhost:8000"

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
}

type APIConfig struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts uint          `mapstructure:"retry_attempts" validate:"max=10"`
}

type TemplatesConfig struct {
	// MarkdownFile replaces the embedded lesson plan template when set
	MarkdownFile string `mapstructure:"markdown_file" validate:"omitempty,file"`
}

type OutputsConfig struct {
	Directory string `mapstructure:"directory"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lessoner")
	}

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("api.retry_attempts", 0)
	v.SetDefault("templates.markdown_file", "")
	v.SetDefault("outputs.directory", filepath.Join("outputs", "lesson_plans"))

	if err := v.BindEnv("api.base_url", "LESSONER_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind LESSONER_API_BASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("api.timeout", "LESSONER_API_TIMEOUT"); err != nil {
		return nil, fmt.Errorf("failed to bind LESSONER_API_TIMEOUT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	return &cfg, nil
}
