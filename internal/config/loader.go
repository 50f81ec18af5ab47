package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. the explicitly provided path (command-line argument or flag)
// 2. OUTBOUNDWATCH_CONFIG environment variable
// 3. config.json, config.yaml or config.yml in the executable's directory
// 4. the same names in the current working directory
// An explicitly provided path is returned only if it exists; it never falls
// through to the defaults. Returns "" when nothing is found.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		if fileExists(configFilePathFlag) {
			return configFilePathFlag
		}
		return ""
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if fileExists(envPath) {
			return envPath
		}
		return ""
	}

	locations := []string{}
	if exePath, err := os.Executable(); err == nil {
		locations = append(locations, filepath.Dir(exePath))
	}
	if cwd, err := os.Getwd(); err == nil && (len(locations) == 0 || locations[0] != cwd) {
		locations = append(locations, cwd)
	}

	defaultFiles := []string{"config.json", "config.yaml", "config.yml"}
	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if fileExists(path) {
				return path
			}
		}
	}
	return ""
}

// fileExists reports whether filename names an existing regular file
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
