package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config carries report defaults an invocation can override per flag.
type Config struct {
	// Number of critical paths the paths report shows by default.
	TopPaths int `yaml:"top_paths"`

	// Build command recorded in the callgrind cmd: header.
	Command string `yaml:"command"`
}

func defaultConfig() *Config {
	return &Config{
		TopPaths: 10,
		Command:  "make",
	}
}

func parseConfig(logger *zap.Logger, fs afero.Fs, path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		logger.Debug("No config file specified, using defaults")
		return config, nil
	}

	logger.Info("Loading config file", zap.String("path", path))
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}
