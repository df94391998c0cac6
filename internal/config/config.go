// Package config loads the run configuration from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// configName is the config file searched in the working directory when no path is given.
	configName = "github-stats"
	configType = "yaml"

	DefaultOutputDir   = "."
	DefaultPerPage     = 100
	DefaultConcurrency = 1
)

// Config is the explicit configuration value handed to the pipeline.
type Config struct {
	User          string        `mapstructure:"user"`
	Organizations []string      `mapstructure:"organizations"`
	ExcludeRepos  []string      `mapstructure:"exclude_repos"`
	Token         string        `mapstructure:"token"`
	OutputDir     string        `mapstructure:"output_dir"`
	PerPage       int           `mapstructure:"per_page"`
	Concurrency   int           `mapstructure:"concurrency"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"user":        "user",
	"org":         "organizations",
	"exclude":     "exclude_repos",
	"output-dir":  "output_dir",
	"concurrency": "concurrency",
	"timeout":     "timeout",
}

// Load builds a Config. Precedence, highest first: flags that were set,
// environment (GH_TOKEN / GITHUB_TOKEN for the token), the config file, defaults.
// If configPath is empty, github-stats.yaml is looked up in the working directory;
// a missing file is not an error. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("organizations", []string{})
	v.SetDefault("exclude_repos", []string{})
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("per_page", DefaultPerPage)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("timeout", time.Duration(0))

	if err := v.BindEnv("token", "GH_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("bind token env: %w", err)
	}

	v.SetConfigType(configType)
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values the pipeline cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.User == "" {
		errs = append(errs, errors.New("user is required"))
	}
	if c.Token == "" {
		errs = append(errs, errors.New("token is required (set GH_TOKEN or GITHUB_TOKEN)"))
	}
	if c.PerPage < 1 || c.PerPage > DefaultPerPage {
		errs = append(errs, fmt.Errorf("per_page must be between 1 and %d, got %d", DefaultPerPage, c.PerPage))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	return errors.Join(errs...)
}
