// Package config loads TimeFlow settings from ~/.timeflow/config.yaml and
// TIMEFLOW_* environment variables, env taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// DBPath is the SQLite database file.
	DBPath string

	// UserName and UserEmail identify the local employee; the employee row
	// is created on first run.
	UserName  string
	UserEmail string

	// WeekStartsOn is 0 (Sunday) or 1 (Monday).
	WeekStartsOn int

	// StartHour and EndHour bound the visible day window.
	StartHour int
	EndHour   int

	// RowsPerHour controls the vertical resolution of the week grid.
	RowsPerHour float64

	// Currency is the symbol used when rendering money amounts.
	Currency string
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	configDir := filepath.Join(home, ".timeflow")

	v := viper.New()
	v.SetDefault("db_path", filepath.Join(configDir, "timeflow.db"))
	v.SetDefault("user_name", "")
	v.SetDefault("user_email", "")
	v.SetDefault("week_starts_on", 1)
	v.SetDefault("start_hour", 6)
	v.SetDefault("end_hour", 22)
	v.SetDefault("rows_per_hour", 4.0)
	v.SetDefault("currency", "€")

	v.SetConfigName("config") // .yaml is implicit
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	if override := os.Getenv("TIMEFLOW_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.SetEnvPrefix("TIMEFLOW")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		DBPath:       v.GetString("db_path"),
		UserName:     v.GetString("user_name"),
		UserEmail:    v.GetString("user_email"),
		WeekStartsOn: v.GetInt("week_starts_on"),
		StartHour:    v.GetInt("start_hour"),
		EndHour:      v.GetInt("end_hour"),
		RowsPerHour:  v.GetFloat64("rows_per_hour"),
		Currency:     v.GetString("currency"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.WeekStartsOn != 0 && c.WeekStartsOn != 1 {
		return fmt.Errorf("week_starts_on must be 0 (Sunday) or 1 (Monday), got %d", c.WeekStartsOn)
	}
	if c.StartHour < 0 || c.EndHour > 24 || c.StartHour >= c.EndHour {
		return fmt.Errorf("invalid day window %d..%d", c.StartHour, c.EndHour)
	}
	if c.RowsPerHour <= 0 {
		return fmt.Errorf("rows_per_hour must be positive, got %g", c.RowsPerHour)
	}
	return nil
}

// FallbackUser fills in the user identity from the OS environment when the
// config does not set one.
func (c *Config) FallbackUser() {
	if c.UserName == "" {
		if u := os.Getenv("USER"); u != "" {
			c.UserName = u
		} else {
			c.UserName = "Me"
		}
	}
	if c.UserEmail == "" {
		c.UserEmail = strings.ToLower(strings.ReplaceAll(c.UserName, " ", ".")) + "@localhost"
	}
}
