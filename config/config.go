package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"chopsticks/meta"
)

const (
	ConfigPasses    = "passes"
	ConfigLogLevel  = "log_level"
	ConfigExportDir = "export_dir"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the solver settings. Values come from defaults, then an optional chopsticks.yaml,
// then CHOPSTICKS_* environment variables.
type Config struct {
	*viper.Viper
}

// Load reads the settings. The config file is searched for in dirs, or in the working directory
// when none are given.
func (c *Config) Load(dirs ...string) error {
	v := viper.New()
	v.SetDefault(ConfigPasses, meta.DefaultPasses)
	v.SetDefault(ConfigLogLevel, meta.DefaultLogLevel)
	v.SetDefault(ConfigExportDir, "")

	v.SetEnvPrefix("chopsticks")
	v.AutomaticEnv()

	v.SetConfigName("chopsticks")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	c.Viper = v
	return c.validate()
}

func (c *Config) validate() error {
	if c.Passes() <= 0 {
		return fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidConfig, ConfigPasses, c.GetString(ConfigPasses))
	}
	if _, err := zerolog.ParseLevel(c.GetString(ConfigLogLevel)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, ConfigLogLevel, err)
	}
	return nil
}

func (c *Config) Passes() int {
	return c.GetInt(ConfigPasses)
}

// LogLevel returns the configured level. An empty setting means no filtering.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.GetString(ConfigLogLevel))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) ExportDir() string {
	return c.GetString(ConfigExportDir)
}
