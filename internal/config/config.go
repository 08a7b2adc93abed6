package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings that do not belong on the command line.
type Config struct {
	Log LogConfig `mapstructure:"log"`
}

// LogConfig - console and file logging
type LogConfig struct {
	Dir     string `mapstructure:"dir"`      // empty disables app.log
	Level   string `mapstructure:"level"`    // console threshold
	NoColor bool   `mapstructure:"no_color"` // plain level names on the console
}

// Load reads .env from the working directory and the environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit .env path. A missing file is not an error.
// Variables already set in the environment win over the file.
func LoadFrom(envFile string) (*Config, error) {
	godotenv.Load(envFile)

	v := viper.New()

	setDefaults(v)
	setupEnvAliases(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConsoleLevel parses Log.Level.
func (c *Config) ConsoleLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Log.Level)
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("log.dir", "HOLDERS_LOG_DIR")
	v.BindEnv("log.level", "HOLDERS_LOG_LEVEL")
	v.BindEnv("log.no_color", "HOLDERS_NO_COLOR")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.no_color", false)
}

func validateConfig(cfg *Config) error {
	if _, err := cfg.ConsoleLevel(); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", cfg.Log.Level, err)
	}
	return nil
}
