package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
)

// DefaultPath is read when neither --config nor GRAPHMIG_CONFIG is set and
// the file exists in the working directory.
const DefaultPath = "graphmig.yaml"

// EnvPath names the environment variable holding the config file path.
const EnvPath = "GRAPHMIG_CONFIG"

// Config holds the settings of a migration run
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Input  InputConfig  `yaml:"input"`
	Ledger LedgerConfig `yaml:"ledger"`
}

// LogConfig configures the zerolog logger
type LogConfig struct {
	// Level is a zerolog level name. --debug overrides it with "debug".
	// Default: warn
	Level string `yaml:"level" env:"GRAPHMIG_LOG_LEVEL" env-default:"warn"`

	// Format is "console" or "json"
	// Default: console
	Format string `yaml:"format" env:"GRAPHMIG_LOG_FORMAT" env-default:"console"`

	// Color enables colored console output
	// Default: true
	Color bool `yaml:"color" env:"GRAPHMIG_LOG_COLOR" env-default:"true"`
}

// InputConfig controls how legacy definition files are found and read
type InputConfig struct {
	// Extensions of the files loaded from each folder, compared case-insensitively
	// Default: .yaml,.yml,.json
	Extensions []string `yaml:"extensions" env:"GRAPHMIG_EXTENSIONS" env-separator:"," env-default:".yaml,.yml,.json"`

	// Workers is the number of files decoded concurrently
	// Default: 4, Range: 1-64
	Workers int `yaml:"workers" env:"GRAPHMIG_WORKERS" env-default:"4"`
}

// LedgerConfig configures the run ledger. An empty path disables it.
type LedgerConfig struct {
	Path string `yaml:"path" env:"GRAPHMIG_LEDGER"`
}

// Default returns the configuration used without file or environment.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
			Color:  true,
		},
		Input: InputConfig{
			Extensions: []string{".yaml", ".yml", ".json"},
			Workers:    4,
		},
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json' (got %q)", c.Log.Format)
	}

	if len(c.Input.Extensions) == 0 {
		return errors.New("input.extensions must not be empty")
	}
	for _, ext := range c.Input.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("input.extensions: %q must start with a dot", ext)
		}
	}
	if c.Input.Workers < 1 || c.Input.Workers > 64 {
		return fmt.Errorf("input.workers must be between 1 and 64 (got %d)", c.Input.Workers)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Log: %s/%s, Color: %t, Extensions: %s, Workers: %d, Ledger: %q}",
		c.Log.Level, c.Log.Format, c.Log.Color,
		strings.Join(c.Input.Extensions, ","), c.Input.Workers, c.Ledger.Path,
	)
}

// Load reads the config file at path, falling back to GRAPHMIG_CONFIG and
// then to DefaultPath if that exists. Without a file only the environment
// and the defaults apply. The result is validated.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
