package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/outboundwatch/internal/common/errorwrapper"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const maxConfigFileSize = 10 * 1024 * 1024 // 10MB

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	LogConfig          LogConfig                `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	MonitorConfig      MonitorConfig            `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	Folders            FolderConfig             `json:"folders,omitempty" yaml:"folders,omitempty"`
	NotificationConfig NotificationConfig       `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	TimeWindows        map[string]StepWindow    `json:"time_windows,omitempty" yaml:"time_windows,omitempty" validate:"dive,keys,stepname,endkeys"`
	Processes          map[string]ProcessConfig `json:"processes,omitempty" yaml:"processes,omitempty" validate:"required,min=1,dive,keys,required,endkeys"`
	StorageConfig      StorageConfig            `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:          NewDefaultLogConfig(),
		MonitorConfig:      NewDefaultMonitorConfig(),
		Folders:            FolderConfig{},
		NotificationConfig: NewDefaultNotificationConfig(),
		TimeWindows:        make(map[string]StepWindow),
		Processes:          make(map[string]ProcessConfig),
		StorageConfig:      NewDefaultStorageConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is used if the file extension is .yaml or .yml.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		if providedPath != "" {
			return nil, errorwrapper.NewValidationError("config_file", providedPath, "config file does not exist")
		}
		return nil, errorwrapper.NewConfigurationError("config_file", "no configuration file found", nil)
	}

	data, err := loadConfigFileContent(filePath)
	if err != nil {
		return nil, errorwrapper.NewConfigurationError("config_file", "failed to load config file content", err)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.NewConfigurationError("config_file", "failed to parse config content", err)
	}

	cfg.Normalize()

	if !isYAMLFile(strings.ToLower(filepath.Ext(filePath))) && isLegacyJSON(data) {
		logger.Warn().Str("path", filePath).Msg("Legacy PascalCase configuration keys mapped, consider migrating to snake_case keys")
	}

	logger.Info().
		Str("path", filePath).
		Int("processes", len(cfg.Processes)).
		Msg("Configuration loaded")

	return cfg, nil
}

// Normalize canonicalizes step window keys. Keys that are not a known step are
// kept as-is so validation can report them.
func (gc *GlobalConfig) Normalize() {
	if gc.TimeWindows == nil {
		gc.TimeWindows = make(map[string]StepWindow)
	}
	if gc.Processes == nil {
		gc.Processes = make(map[string]ProcessConfig)
	}

	windows := make(map[string]StepWindow, len(gc.TimeWindows))
	for key, window := range gc.TimeWindows {
		if step, ok := CanonicalStepName(key); ok {
			windows[step] = window
			continue
		}
		windows[key] = window
	}
	gc.TimeWindows = windows
}

// loadConfigFileContent reads the config file, refusing oversized files
func loadConfigFileContent(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errorwrapper.NewError("config path '%s' is a directory", filePath)
	}
	if info.Size() > maxConfigFileSize {
		return nil, errorwrapper.NewError("config file '%s' exceeds %d bytes", filePath, maxConfigFileSize)
	}
	return os.ReadFile(filePath)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration, accepting the legacy
// PascalCase key schema as well.
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if isLegacyJSON(data) {
		if err := applyLegacyJSON(data, cfg); err != nil {
			return errorwrapper.NewError("failed to unmarshal legacy JSON from '%s': %w", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
