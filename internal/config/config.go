// Package config provides Viper-based configuration loading for the dice roller.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rook-computer/diceroller/internal/dice"
)

// EnvPrefix prefixes every environment override, e.g. DICEROLLER_ROLL_SIDES=20.
const EnvPrefix = "DICEROLLER"

// RollConfig holds the initial die configuration and animation timing.
type RollConfig struct {
	Count int `mapstructure:"count"`
	Sides int `mapstructure:"sides"`
	// Frames is the number of cosmetic animation frames before the real roll.
	Frames int `mapstructure:"frames"`
	// FrameDelay is the pause between animation frames.
	FrameDelay time.Duration `mapstructure:"frame_delay"`
	// Seed makes rolls reproducible when non-zero.
	Seed int64 `mapstructure:"seed"`
}

// HistoryConfig holds roll history settings.
type HistoryConfig struct {
	Size int `mapstructure:"size"`
}

// PresetsConfig points at an optional YAML quick-roll list.
type PresetsConfig struct {
	File string `mapstructure:"file"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, sends logs to a rotating file instead of stderr.
	File string `mapstructure:"file"`
}

// WebConfig holds the optional HTTP remote control settings.
type WebConfig struct {
	// Listen is the bind address; empty disables the server.
	Listen string `mapstructure:"listen"`
	Dev    bool   `mapstructure:"dev"`
}

// DisplayConfig holds framebuffer settings.
type DisplayConfig struct {
	Device string `mapstructure:"device"`
	FPS    int    `mapstructure:"fps"`
}

// Config is the top-level application configuration.
type Config struct {
	Roll    RollConfig    `mapstructure:"roll"`
	History HistoryConfig `mapstructure:"history"`
	Presets PresetsConfig `mapstructure:"presets"`
	Logging LoggingConfig `mapstructure:"logging"`
	Web     WebConfig     `mapstructure:"web"`
	Display DisplayConfig `mapstructure:"display"`
}

// Spec returns the initial die spec.
func (c Config) Spec() dice.Spec {
	return dice.Spec{Count: c.Roll.Count, Sides: c.Roll.Sides}
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string

	if err := c.Spec().Validate(); err != nil {
		errs = append(errs, "roll: "+err.Error())
	}
	if c.Roll.Frames < 0 {
		errs = append(errs, fmt.Sprintf("roll.frames must be >= 0, got %d", c.Roll.Frames))
	}
	if c.Roll.FrameDelay < 0 {
		errs = append(errs, "roll.frame_delay must not be negative")
	}
	if c.History.Size < 1 {
		errs = append(errs, fmt.Sprintf("history.size must be >= 1, got %d", c.History.Size))
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Display.FPS < 1 || c.Display.FPS > 120 {
		errs = append(errs, fmt.Sprintf("display.fps must be 1-120, got %d", c.Display.FPS))
	}
	if c.Display.Device == "" {
		errs = append(errs, "display.device must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads the optional YAML file at path, applies DICEROLLER_* environment
// overrides on top of the defaults, and validates the result. An empty path
// skips the file.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// New returns a Viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	if v == nil {
		return Config{}, errors.New("nil viper instance")
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("roll.count", 2)
	v.SetDefault("roll.sides", 6)
	v.SetDefault("roll.frames", dice.DefaultFrameCount)
	v.SetDefault("roll.frame_delay", "45ms")
	v.SetDefault("roll.seed", 0)

	v.SetDefault("history.size", 15)

	v.SetDefault("presets.file", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	v.SetDefault("web.listen", "")
	v.SetDefault("web.dev", false)

	v.SetDefault("display.device", "/dev/fb0")
	v.SetDefault("display.fps", 30)
}
