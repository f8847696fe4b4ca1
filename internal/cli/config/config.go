package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the Xaheen project configuration
type Config struct {
	ProjectName string        `mapstructure:"project_name"`
	Registries  []string      `mapstructure:"registries"`
	TargetDir   string        `mapstructure:"target_dir"`
	Engine      EngineConfig  `mapstructure:"engine"`
	Context     ContextConfig `mapstructure:"context"`
}

// EngineConfig represents resolution engine configuration
type EngineConfig struct {
	Strategy    string `mapstructure:"strategy"`
	MaxDepth    int    `mapstructure:"max_depth"`
	Concurrency int    `mapstructure:"concurrency"`
}

// ContextConfig represents the default resolution context
type ContextConfig struct {
	Framework   string            `mapstructure:"framework"`
	Platform    string            `mapstructure:"platform"`
	Context     string            `mapstructure:"context"`
	Environment string            `mapstructure:"environment"`
	Region      string            `mapstructure:"region"`
	Overrides   map[string]string `mapstructure:"overrides"`
}

// Load loads the configuration from xaheen.yml or xaheen.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("registries", []string{"registry.yaml"})
	v.SetDefault("target_dir", ".")
	v.SetDefault("engine.strategy", "strict")
	v.SetDefault("engine.max_depth", 10)
	v.SetDefault("engine.concurrency", 4)

	// Set config name and paths
	v.SetConfigName("xaheen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject checks if the current directory is a Xaheen project
func InProject() bool {
	if _, err := os.Stat("xaheen.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("xaheen.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot tries to find the project root by looking for xaheen.yml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "xaheen.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "xaheen.yaml")); err == nil {
			return dir, nil
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("not in a Xaheen project (no xaheen.yml found)")
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	switch cfg.Engine.Strategy {
	case "", "strict", "lenient", "best-effort":
	default:
		return fmt.Errorf("engine.strategy must be strict, lenient or best-effort, got: %s", cfg.Engine.Strategy)
	}
	if cfg.Engine.MaxDepth < 0 {
		return fmt.Errorf("engine.max_depth must not be negative, got: %d", cfg.Engine.MaxDepth)
	}
	if cfg.Engine.Concurrency < 0 {
		return fmt.Errorf("engine.concurrency must not be negative, got: %d", cfg.Engine.Concurrency)
	}
	return nil
}
