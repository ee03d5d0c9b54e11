// Package config provides Viper-based configuration loading for the Forsaken simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/forsaken/internal/game/dice"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimulationConfig holds the encounter loop constants.
type SimulationConfig struct {
	// SpawnInterval is the period of the spawn-check timer.
	SpawnInterval time.Duration `mapstructure:"spawn_interval"`
	// SpawnThreshold is the elapsed biome time that triggers a spawn attempt.
	SpawnThreshold time.Duration `mapstructure:"spawn_threshold"`
	// SpawnCooldown is the minimum time between two successful spawns.
	SpawnCooldown time.Duration `mapstructure:"spawn_cooldown"`
	// AttackCooldown is the minimum time between two player actions.
	AttackCooldown time.Duration `mapstructure:"attack_cooldown"`
	// MaxActiveEnemies caps the number of live enemy instances.
	MaxActiveEnemies int `mapstructure:"max_active_enemies"`
	// GoldReward is the single-die expression rolled for gold when an enemy is
	// defeated, e.g. "1d10" or "1d10+5".
	GoldReward string `mapstructure:"gold_reward"`
}

// ContentConfig holds the directories of the YAML content catalogs.
type ContentConfig struct {
	EnemiesDir string `mapstructure:"enemies_dir"`
	BiomesDir  string `mapstructure:"biomes_dir"`
	WeatherDir string `mapstructure:"weather_dir"`
	ItemsDir   string `mapstructure:"items_dir"`
}

// ScriptingConfig holds Lua trigger hook settings.
type ScriptingConfig struct {
	// Dir is the directory of *.lua hook scripts; empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps Lua opcodes per hook call; 0 uses the package default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Content    ContentConfig    `mapstructure:"content"`
	Scripting  ScriptingConfig  `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
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

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.SpawnInterval <= 0 {
		errs = append(errs, "simulation.spawn_interval must be > 0")
	}
	if s.SpawnThreshold < s.SpawnInterval {
		errs = append(errs, "simulation.spawn_threshold must be >= simulation.spawn_interval")
	}
	if s.SpawnCooldown < 0 {
		errs = append(errs, "simulation.spawn_cooldown must not be negative")
	}
	if s.AttackCooldown < 0 {
		errs = append(errs, "simulation.attack_cooldown must not be negative")
	}
	if s.MaxActiveEnemies < 1 {
		errs = append(errs, fmt.Sprintf("simulation.max_active_enemies must be >= 1, got %d", s.MaxActiveEnemies))
	}
	if _, err := dice.ParseUniform(s.GoldReward); err != nil {
		errs = append(errs, fmt.Sprintf("simulation.gold_reward: %v", err))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.EnemiesDir == "" {
		errs = append(errs, "content.enemies_dir must not be empty")
	}
	if c.BiomesDir == "" {
		errs = append(errs, "content.biomes_dir must not be empty")
	}
	if c.WeatherDir == "" {
		errs = append(errs, "content.weather_dir must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with FORSAKEN_ prefix
	v.SetEnvPrefix("FORSAKEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers the default value of every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("simulation.spawn_interval", "1s")
	v.SetDefault("simulation.spawn_threshold", "20s")
	v.SetDefault("simulation.spawn_cooldown", "1000ms")
	v.SetDefault("simulation.attack_cooldown", "500ms")
	v.SetDefault("simulation.max_active_enemies", 3)
	v.SetDefault("simulation.gold_reward", "1d10")

	v.SetDefault("content.enemies_dir", "content/enemies")
	v.SetDefault("content.biomes_dir", "content/biomes")
	v.SetDefault("content.weather_dir", "content/weather")
	v.SetDefault("content.items_dir", "content/items")

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 0)
}

// Default returns the configuration produced by the defaults alone.
//
// Postcondition: Returns a Config that passes Validate.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults are invalid: %v", err))
	}
	return cfg
}
