package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/aldertree/beacon/internal/engine"
	"github.com/aldertree/beacon/internal/policy"
)

// Config root configuration
type Config struct {
	Engine EngineConfig `mapstructure:"engine"`
	Policy PolicyConfig `mapstructure:"policy"`
	Log    LogConfig    `mapstructure:"log"`
}

// EngineConfig reply engine settings
type EngineConfig struct {
	MaxOutputChars      int    `mapstructure:"max_output_chars"`
	LongInputThreshold  int    `mapstructure:"long_input_threshold"`
	ShortInputThreshold int    `mapstructure:"short_input_threshold"`
	MaxBullets          int    `mapstructure:"max_bullets"`
	AssistantName       string `mapstructure:"assistant_name"`
}

// PolicyConfig safety gate settings
type PolicyConfig struct {
	Strict               bool   `mapstructure:"strict"`
	StrictMaxOutputRunes int    `mapstructure:"strict_max_output_runes"`
	RulesFile            string `mapstructure:"rules_file"`
}

// LogConfig application logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultConfig returns config with sensible defaults
func DefaultConfig() *Config {
	ec := engine.DefaultConfig()
	return &Config{
		Engine: EngineConfig{
			MaxOutputChars:      ec.MaxOutputChars,
			LongInputThreshold:  ec.LongInputThreshold,
			ShortInputThreshold: ec.ShortInputThreshold,
			MaxBullets:          ec.MaxBullets,
			AssistantName:       ec.AssistantName,
		},
		Policy: PolicyConfig{
			Strict:               false,
			StrictMaxOutputRunes: policy.DefaultStrictMaxOutputRunes,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// ConfigDir returns the beacon config directory
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".beacon")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads config from file or returns defaults
func Load() (*Config, error) {
	return loadFrom(ConfigPath())
}

func loadFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := saveTo(cfg, configPath); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("BEACON")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.MatchName = func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		}
	}); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func normalizeKey(input string) string {
	input = strings.ReplaceAll(input, "_", "")
	input = strings.ReplaceAll(input, "-", "")
	return strings.ToLower(input)
}

// Save saves config to file
func Save(cfg *Config) error {
	return saveTo(cfg, ConfigPath())
}

func saveTo(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// Validate checks every section by building the validated core configs.
func (c *Config) Validate() error {
	if _, err := c.BuildEngine(); err != nil {
		return err
	}
	if _, err := c.BuildPolicy(); err != nil {
		return err
	}
	if _, err := parseLevelName(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// BuildEngine returns the validated engine configuration.
func (c *Config) BuildEngine() (engine.Config, error) {
	ec := engine.Config{
		MaxOutputChars:      c.Engine.MaxOutputChars,
		LongInputThreshold:  c.Engine.LongInputThreshold,
		ShortInputThreshold: c.Engine.ShortInputThreshold,
		MaxBullets:          c.Engine.MaxBullets,
		AssistantName:       c.Engine.AssistantName,
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, err
	}
	return ec, nil
}

// BuildPolicy returns the validated policy configuration.
func (c *Config) BuildPolicy() (policy.Config, error) {
	pc := policy.Config{
		Strict:               c.Policy.Strict,
		StrictMaxOutputRunes: c.Policy.StrictMaxOutputRunes,
	}
	if err := pc.Validate(); err != nil {
		return policy.Config{}, err
	}
	return pc, nil
}

// Categories returns the policy rule table: the built-in one, or the YAML
// table named by policy.rules_file.
func (c *Config) Categories() ([]policy.Category, error) {
	rulesFile := strings.TrimSpace(c.Policy.RulesFile)
	if rulesFile == "" {
		return policy.DefaultCategories(), nil
	}
	data, err := os.ReadFile(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	categories, err := policy.LoadCategories(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", rulesFile, err)
	}
	return categories, nil
}

func parseLevelName(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return "info", nil
	case "debug":
		return "debug", nil
	case "warn", "warning":
		return "warn", nil
	case "error":
		return "error", nil
	default:
		return "", fmt.Errorf("invalid log level: %s", level)
	}
}
