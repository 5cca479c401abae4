// Package config carries the handful of settings the cmd/* binaries accept,
// adapted from the teacher's node configuration: a data directory and a log level,
// with the network/peer/bind-address fields dropped since UltraSONIC defines no
// networking layer (see DESIGN.md).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the settings shared by the strict-type-library CLIs.
type Config struct {
	DataDir  string
	LogLevel string
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// DefaultDataDir returns ~/.ultrasonic, falling back to a relative path if the home
// directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".ultrasonic"
	}
	return filepath.Join(home, ".ultrasonic")
}

// Default returns the zero-argument configuration.
func Default() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		LogLevel: "info",
	}
}

// Validate checks that cfg is usable.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	return nil
}
