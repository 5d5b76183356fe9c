// Package config manages TOML configuration for symspell services: the
// dictionary engine's tuning knobs, the IPC server's limits, and the
// CLI's defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/symspell/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig mirrors engine.Config's tunables for TOML round-tripping.
type EngineConfig struct {
	InitialCapacity           int   `toml:"initial_capacity"`
	MaxDictionaryEditDistance int   `toml:"max_dictionary_edit_distance"`
	PrefixLength              int   `toml:"prefix_length"`
	CountThreshold            int64 `toml:"count_threshold"`
	CompactLevel              int   `toml:"compact_level"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxEditDistance int `toml:"max_edit_distance"`
	MaxSuggestions  int `toml:"max_suggestions"`
}

// CliConfig holds CLI interface options.
type CliConfig struct {
	DefaultVerbosity string `toml:"default_verbosity"`
	DefaultMaxEdit   int    `toml:"default_max_edit"`
	ColorOutput      bool   `toml:"color_output"`
}

// DefaultConfig returns a Config populated with symspell's built-in
// defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			InitialCapacity:           82765,
			MaxDictionaryEditDistance: 2,
			PrefixLength:              7,
			CountThreshold:            1,
			CompactLevel:              5,
		},
		Server: ServerConfig{
			MaxEditDistance: 2,
			MaxSuggestions:  10,
		},
		CLI: CliConfig{
			DefaultVerbosity: "closest",
			DefaultMaxEdit:   2,
			ColorOutput:      true,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/symspell
// 2. current executable dir
// 3. builtin defaults (caller falls back when err != nil)
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("failed to get home directory: %v", err)
		return getExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "symspell")
	if result := checkDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	return getExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. custom path from --config flag
// 2. default path: config.toml in GetConfigDir (~/.config/symspell or
// the executable's directory)
// 3. builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			cfg, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
			log.Warnf("failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("failed to load/create config at %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates a default one if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := ensureDir(configDir); err != nil {
		log.Warnf("failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := saveTOMLFile(cfg, configPath); err != nil {
			log.Warnf("failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("created default config file at: %s", configPath)
		return cfg, nil
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads Config from a TOML file, falling back to a partial
// parse when the file contains some invalid sections.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	return cfg, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := parseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}
	if section, ok := extractSection(data, "engine"); ok {
		extractEngineConfig(section, &cfg.Engine)
	}
	if section, ok := extractSection(data, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := extractSection(data, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	return cfg, nil
}

func extractEngineConfig(data map[string]any, e *EngineConfig) {
	if v, ok := extractInt64(data, "initial_capacity"); ok {
		e.InitialCapacity = v
	}
	if v, ok := extractInt64(data, "max_dictionary_edit_distance"); ok {
		e.MaxDictionaryEditDistance = v
	}
	if v, ok := extractInt64(data, "prefix_length"); ok {
		e.PrefixLength = v
	}
	if v, ok := extractInt64(data, "count_threshold"); ok {
		e.CountThreshold = int64(v)
	}
	if v, ok := extractInt64(data, "compact_level"); ok {
		e.CompactLevel = v
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if v, ok := extractInt64(data, "max_edit_distance"); ok {
		s.MaxEditDistance = v
	}
	if v, ok := extractInt64(data, "max_suggestions"); ok {
		s.MaxSuggestions = v
	}
}

func extractCliConfig(data map[string]any, c *CliConfig) {
	if v, ok := extractInt64(data, "default_max_edit"); ok {
		c.DefaultMaxEdit = v
	}
	if v, ok := extractBool(data, "color_output"); ok {
		c.ColorOutput = v
	}
}

// RebuildConfigFile force-creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	return saveTOMLFile(DefaultConfig(), defaultPath)
}
