/*
Package config manages TOML config for ClassMatch services.

The class table itself is part of the configuration: classes are an ordered
array of tables, because their order decides which label the inverse mapping
picks for a letter. A config file with no [[classes]] entries falls back to
the builtin four-way split of A-Z.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/graydel/classmatch/internal/utils"
	"github.com/graydel/classmatch/pkg/classes"
)

// Config holds the entire config structure
type Config struct {
	Classes []ClassDef    `toml:"classes"`
	Lexicon LexiconConfig `toml:"lexicon"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// ClassDef is one [[classes]] entry: a label and its letters.
type ClassDef struct {
	Label   string `toml:"label"`
	Letters string `toml:"letters"`
}

// LexiconConfig holds word list options.
type LexiconConfig struct {
	Path      string `toml:"path"`
	MinLength int    `toml:"min_length"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit   int `toml:"max_limit"`
	MaxPattern int `toml:"max_pattern"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "classmatch")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "classmatch")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Classes: []ClassDef{
			{Label: "A-F", Letters: "ABCDEF"},
			{Label: "G-M", Letters: "GHIJKLM"},
			{Label: "N-T", Letters: "NOPQRST"},
			{Label: "U-Z", Letters: "UVWXYZ"},
		},
		Lexicon: LexiconConfig{
			Path:      "data/words_alpha.txt",
			MinLength: 0,
		},
		Server: ServerConfig{
			MaxLimit:   64,
			MaxPattern: 24,
		},
		CLI: CliConfig{
			DefaultLimit: 24,
		},
	}
}

// Table builds the class table from the configured definitions.
// An invalid table is a config error worth failing on, not papering over:
// matching against a table the user did not intend produces silent garbage.
func (c *Config) Table() (*classes.Table, error) {
	defs := make([]classes.Definition, len(c.Classes))
	for i, cd := range c.Classes {
		defs[i] = classes.Definition{Label: cd.Label, Letters: cd.Letters}
	}
	return classes.New(defs)
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	saved := *config
	config.Classes = nil
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	if len(config.Classes) == 0 {
		config.Classes = saved.Classes
	}
	return config, nil
}

// tryPartialParse salvages the scalar sections of a broken TOML file.
// The [[classes]] array is all-or-nothing: a half-parsed class table is
// worse than the default one.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if lexSection, ok := utils.ExtractSection(tempConfig, "lexicon"); ok {
		extractLexiconConfig(lexSection, &config.Lexicon)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractLexiconConfig extracts lexicon configuration from a map
func extractLexiconConfig(data map[string]any, lex *LexiconConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		lex.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "min_length"); ok {
		lex.MinLength = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_pattern"); ok {
		server.MaxPattern = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
