/*
Package config manages the TOML config of the chengyu matcher.

Values are read from config.toml and then overridden by CHENGYU_* environment variables.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/chengyu/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit    int  `toml:"max_limit" env:"CHENGYU_SERVER_MAX_LIMIT" env-description:"upper bound on matches per response, 0 for no bound"`
	MaxQueryLen int  `toml:"max_query_len" env:"CHENGYU_SERVER_MAX_QUERY_LEN" env-description:"longest accepted query in bytes"`
	Strict      bool `toml:"strict" env:"CHENGYU_SERVER_STRICT" env-description:"reject malformed patterns instead of returning no matches"`
	ReloadEvery int  `toml:"reload_every" env:"CHENGYU_SERVER_RELOAD_EVERY" env-description:"re-read the config file every N requests, 0 to disable"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path string `toml:"path" env:"CHENGYU_DICT_PATH" env-description:"idiom dictionary, .json or .bin"`
}

// CliConfig holds interactive CLI options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit" env:"CHENGYU_CLI_LIMIT" env-description:"matches printed per query, 0 for all"`
	Strict       bool `toml:"strict" env:"CHENGYU_CLI_STRICT" env-description:"print pattern errors in the CLI"`
	NoColor      bool `toml:"no_color" env:"CHENGYU_CLI_NO_COLOR" env-description:"disable highlighted output"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. the platform config dir (XDG_CONFIG_HOME or ~/.config/chengyu, %APPDATA%\chengyu)
// 2. Current executable dir
func GetConfigDir() (string, error) {
	userDir, err := utils.UserConfigDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	if result := utils.CheckDirStatus(userDir); result.Writable {
		return userDir, nil
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

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/chengyu/config.toml
// 3. Builtin defaults
//
// It returns the path actually used, empty when running on defaults.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return defaultsWithEnv(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return defaultsWithEnv(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:    200,
			MaxQueryLen: 128,
			Strict:      false,
			ReloadEvery: 100,
		},
		Dict: DictConfig{
			Path: "data/idioms.json",
		},
		CLI: CliConfig{
			DefaultLimit: 24,
			Strict:       false,
			NoColor:      false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return defaultsWithEnv(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return defaultsWithEnv(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, ApplyEnv(config)
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file and applies environment overrides.
// A file that does not fit the schema is salvaged section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	return config, ApplyEnv(config)
}

// ApplyEnv overrides config values with any CHENGYU_* variables that are set.
func ApplyEnv(config *Config) error {
	return cleanenv.ReadEnv(config)
}

func defaultsWithEnv() *Config {
	config := DefaultConfig()
	if err := ApplyEnv(config); err != nil {
		log.Warnf("Ignoring environment overrides: %v", err)
		return DefaultConfig()
	}
	return config
}

// tryPartialParse keeps every well-typed key it can find on top of the defaults
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query_len"); ok {
		server.MaxQueryLen = val
	}
	if val, ok := utils.ExtractBool(data, "strict"); ok {
		server.Strict = val
	}
	if val, ok := utils.ExtractInt64(data, "reload_every"); ok {
		server.ReloadEvery = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "strict"); ok {
		cli.Strict = val
	}
	if val, ok := utils.ExtractBool(data, "no_color"); ok {
		cli.NoColor = val
	}
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
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
