package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// dirCheckResult reports whether a directory exists and can be written to.
type dirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// checkDirStatus tests whether dirPath exists (creating it if not) and
// is writable, used to decide between the preferred config directory
// and its fallbacks.
func checkDirStatus(dirPath string) dirCheckResult {
	result := dirCheckResult{}
	if _, err := os.Stat(dirPath); err == nil {
		result.Exists = true
		result.Writable = testWriteAccess(dirPath)
		return result
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		result.Error = err
		log.Warnf("cannot create directory %s: %v", dirPath, err)
		return result
	}
	result.Exists = true
	result.Writable = testWriteAccess(dirPath)
	return result
}

// testWriteAccess probes dirPath by creating and removing a throwaway file.
func testWriteAccess(dirPath string) bool {
	testFile := filepath.Join(dirPath, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		log.Warnf("cannot write to directory %s: %v", dirPath, err)
		return false
	}
	file.Close()
	os.Remove(testFile)
	return true
}

// ensureDir creates dirPath (and any parents) if it doesn't exist.
func ensureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// getExecutableDir returns the directory containing the running binary,
// used as a last-resort config location when the home directory isn't
// writable or can't be determined.
func getExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// saveTOMLFile writes cfg to filePath as TOML.
func saveTOMLFile(cfg interface{}, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		log.Errorf("failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(cfg)
}

// loadTOMLFile decodes configPath directly into cfg's struct tags.
func loadTOMLFile(configPath string, cfg interface{}) error {
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	return nil
}

// parseTOMLWithRecovery decodes configPath into a loosely typed map, so
// a config file with one malformed section can still yield the sections
// that do parse rather than failing outright.
func parseTOMLWithRecovery(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	tempConfig := make(map[string]any)
	if _, err := toml.Decode(string(data), &tempConfig); err != nil {
		log.Warnf("could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return tempConfig, nil
}

// extractSection extracts a named table from parsed TOML data.
func extractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// extractInt64 safely extracts an integer value from a TOML table.
func extractInt64(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// extractBool safely extracts a bool value from a TOML table.
func extractBool(data map[string]any, key string) (bool, bool) {
	if val, ok := data[key].(bool); ok {
		return val, true
	}
	return false, false
}
