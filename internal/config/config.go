// Package config loads daemon configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the dotenv file loaded when no override is given.
const DefaultEnvFile = ".env"

// Config holds all configuration for the reconciliation daemon.
type Config struct {
	// BaseURL is the Planka server base URL.
	BaseURL string `mapstructure:"base_url"`

	// Username and Password authenticate against the server.
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	// BoardID scopes the daemon to a single board.
	BoardID string `mapstructure:"board_id"`

	// TodoListName and DoneListName identify the tracked list pair by exact name.
	TodoListName string `mapstructure:"todo_list_name"`
	DoneListName string `mapstructure:"done_list_name"`

	// PollSeconds is the interval between reconciliation cycles.
	PollSeconds int `mapstructure:"poll_seconds"`

	// LogLevel is the daemon log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Debug forces debug logging. Quiet suppresses everything below error.
	// Both are set from CLI flags, not the environment.
	Debug bool `mapstructure:"-"`
	Quiet bool `mapstructure:"-"`
}

// envBindings maps config keys to their environment variable names.
var envBindings = map[string]string{
	"base_url":       "PLANKA_BASE_URL",
	"username":       "PLANKA_USERNAME",
	"password":       "PLANKA_PASSWORD",
	"board_id":       "BOARD_ID",
	"todo_list_name": "TODO_LIST_NAME",
	"done_list_name": "DONE_LIST_NAME",
	"poll_seconds":   "POLL_SECONDS",
	"log_level":      "LOG_LEVEL",
}

// requiredKeys lists settings without a usable default, in report order.
var requiredKeys = []string{"base_url", "username", "password", "board_id"}

// Load reads configuration from envFile (if it exists) and the process
// environment. Environment variables take precedence over the file.
// Missing required settings are not an error here; call Validate.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		// godotenv never overwrites variables already set in the environment.
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()

	v.SetDefault("todo_list_name", "To Do")
	v.SetDefault("done_list_name", "Done")
	v.SetDefault("poll_seconds", 10)
	v.SetDefault("log_level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.PollSeconds < 1 {
		return nil, fmt.Errorf("POLL_SECONDS must be a positive integer, got %d", cfg.PollSeconds)
	}

	return &cfg, nil
}

// Validate checks that all required settings are present.
// The error names every missing environment variable.
func (c *Config) Validate() error {
	values := map[string]string{
		"base_url": c.BaseURL,
		"username": c.Username,
		"password": c.Password,
		"board_id": c.BoardID,
	}

	var missing []string
	for _, key := range requiredKeys {
		if values[key] == "" {
			missing = append(missing, envBindings[key])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
