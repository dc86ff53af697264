// Package config loads verbdrill settings from defaults, an optional YAML file and
// VERBDRILL_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/aretw0/verbdrill/pkg/mutation"
)

// EnvPrefix is the prefix of environment overrides, e.g. VERBDRILL_DICTIONARY_PATH.
const EnvPrefix = "VERBDRILL"

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "verbdrill.yaml"

// Config holds all application configuration.
type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary" validate:"required"`
	Session    SessionConfig    `mapstructure:"session" validate:"required"`
	Log        LogConfig        `mapstructure:"log" validate:"required"`
}

// DictionaryConfig selects and shapes the word list.
type DictionaryConfig struct {
	// Path is a file path or a doublestar pattern.
	Path       string `mapstructure:"path" validate:"required"`
	Duplicates string `mapstructure:"duplicates" validate:"required,oneof=reject first"`
}

// SessionConfig tunes the drill loop.
type SessionConfig struct {
	Mutations   []string `mapstructure:"mutations" validate:"required,min=1,dive,required"`
	MaxAttempts int      `mapstructure:"max_attempts" validate:"required,gt=0"`
	Fallback    string   `mapstructure:"fallback" validate:"required"`
	// Seed fixes the random source. Zero picks a time-based seed.
	Seed   uint64 `mapstructure:"seed"`
	Strict bool   `mapstructure:"strict"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// ParsedMutations parses the configured mutation tokens.
func (c SessionConfig) ParsedMutations() ([]mutation.Mutation, error) {
	return mutation.ParseList(c.Mutations)
}

// ParsedFallback parses the configured fallback token.
func (c SessionConfig) ParsedFallback() (mutation.Mutation, error) {
	return mutation.Parse(c.Fallback)
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	tokens := make([]string, 0)
	for _, m := range mutation.DefaultEnabled() {
		tokens = append(tokens, m.Name())
	}
	v.SetDefault("dictionary.path", "dictionary.csv")
	v.SetDefault("dictionary.duplicates", "reject")
	v.SetDefault("session.mutations", tokens)
	v.SetDefault("session.max_attempts", 64)
	v.SetDefault("session.fallback", mutation.ChangeConcrete.Name())
	v.SetDefault("session.seed", 0)
	v.SetDefault("session.strict", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// EnvKey returns the environment variable that overrides key, e.g. VERBDRILL_DICTIONARY_PATH.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// New returns a viper instance with defaults and environment binding in place.
// Callers may bind command-line flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (or DefaultFile when empty and present) into v, then unmarshals and
// validates the result. A missing default file is not an error; a missing explicit one is.
func Load(v *viper.Viper, file string) (*Config, error) {
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that mutation tokens are known.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := c.Session.ParsedMutations(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := c.Session.ParsedFallback(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
