/*
Package config manages TOML config for wordjumble.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordjumble/internal/utils"
	"github.com/charmbracelet/log"
)

// Output formats understood by the sink package.
const (
	FormatText    = "text"
	FormatLine    = "line"
	FormatMsgpack = "msgpack"
)

// Config holds the entire config structure
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Dict   DictConfig   `toml:"dict"`
	Output OutputConfig `toml:"output"`
	CLI    CliConfig    `toml:"cli"`
}

// SolverConfig has the search tunables.
type SolverConfig struct {
	// MaxScore replaces a stored frequency of 0 ("unknown").
	MaxScore int `toml:"max_score"`
	// ScoreThreshold prunes any branch whose accumulated score reaches it.
	ScoreThreshold int    `toml:"score_threshold"`
	ResultLimit    int    `toml:"result_limit"`
	Separator      string `toml:"separator"`
	// MaxSteps caps recursion steps per puzzle, 0 means unlimited.
	MaxSteps         int  `toml:"max_steps"`
	Workers          int  `toml:"workers"`
	ParallelSegments bool `toml:"parallel_segments"`
	// CacheSize bounds the candidate word cache, 0 disables it.
	CacheSize int `toml:"cache_size"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path      string `toml:"path"`
	ChunkSize int    `toml:"chunk_size"`
}

// OutputConfig controls where ranked results go.
type OutputConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			MaxScore:       9999,
			ScoreThreshold: 1100,
			ResultLimit:    5,
			Separator:      "-",
			CacheSize:      4096,
		},
		Dict: DictConfig{
			Path:      "data/freq_dict.json",
			ChunkSize: 10000,
		},
		Output: OutputConfig{
			Dir:    "results",
			Format: FormatText,
		},
		CLI: CliConfig{
			DefaultLimit: 5,
		},
	}
}

// Validate reports the first invalid value as a ConfigurationError.
func (c *Config) Validate() error {
	switch {
	case c.Solver.MaxScore < 0:
		return Errorf("solver.max_score", "must not be negative, got %d", c.Solver.MaxScore)
	case c.Solver.ScoreThreshold < 0:
		return Errorf("solver.score_threshold", "must not be negative, got %d", c.Solver.ScoreThreshold)
	case c.Solver.ResultLimit < 0:
		return Errorf("solver.result_limit", "must not be negative, got %d", c.Solver.ResultLimit)
	case c.Solver.MaxSteps < 0:
		return Errorf("solver.max_steps", "must not be negative, got %d", c.Solver.MaxSteps)
	case c.Solver.CacheSize < 0:
		return Errorf("solver.cache_size", "must not be negative, got %d", c.Solver.CacheSize)
	case c.Solver.Workers < 0:
		return Errorf("solver.workers", "must not be negative, got %d", c.Solver.Workers)
	case c.Dict.ChunkSize <= 0:
		return Errorf("dict.chunk_size", "must be positive, got %d", c.Dict.ChunkSize)
	}
	switch c.Output.Format {
	case FormatText, FormatLine, FormatMsgpack:
	default:
		return Errorf("output.format", "unknown format %q", c.Output.Format)
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordjumble
// 2. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordjumble")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
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
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordjumble/config.toml
// 3. Builtin defaults
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
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
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
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every section that still decodes when the typed pass failed.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "solver"); ok {
		extractSolverConfig(section, &config.Solver)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "output"); ok {
		extractOutputConfig(section, &config.Output)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractInt64(section, "default_limit"); ok {
			config.CLI.DefaultLimit = val
		}
	}
	return config, nil
}

func extractSolverConfig(data map[string]any, solver *SolverConfig) {
	if val, ok := utils.ExtractInt64(data, "max_score"); ok {
		solver.MaxScore = val
	}
	if val, ok := utils.ExtractInt64(data, "score_threshold"); ok {
		solver.ScoreThreshold = val
	}
	if val, ok := utils.ExtractInt64(data, "result_limit"); ok {
		solver.ResultLimit = val
	}
	if val, ok := utils.ExtractString(data, "separator"); ok {
		solver.Separator = val
	}
	if val, ok := utils.ExtractInt64(data, "max_steps"); ok {
		solver.MaxSteps = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		solver.Workers = val
	}
	if val, ok := utils.ExtractBool(data, "parallel_segments"); ok {
		solver.ParallelSegments = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		solver.CacheSize = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		dict.ChunkSize = val
	}
}

func extractOutputConfig(data map[string]any, out *OutputConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		out.Dir = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		out.Format = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
