package controller

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const appDirName = "PlusArchiver"

// AppConfig holds all application configuration. Extraction records are
// session state and are never written here.
type AppConfig struct {
	// Extraction settings
	MaxExtractSize int64 `json:"max_extract_size"` // bytes, 0 = unlimited

	// Logging
	LogLevel string `json:"log_level"`

	// Window settings
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`

	// Picker start locations
	LastArchiveDir     string `json:"last_archive_dir"`
	LastDestinationDir string `json:"last_destination_dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		LogLevel:     "info",
		WindowWidth:  720,
		WindowHeight: 480,
	}
}

// configDir returns the configuration directory path
func configDir() string {
	var dir string

	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, "Library", "Application Support")
	default: // linux and others
		dir = os.Getenv("XDG_CONFIG_HOME")
		if dir == "" {
			homeDir, _ := os.UserHomeDir()
			dir = filepath.Join(homeDir, ".config")
		}
	}

	return filepath.Join(dir, appDirName)
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(configDir(), "config.json")
}

// LoadConfig loads configuration from disk or returns defaults
func LoadConfig() *AppConfig {
	return LoadConfigFrom(ConfigPath())
}

// LoadConfigFrom loads configuration from path. A missing or corrupt file
// yields the defaults.
func LoadConfigFrom(path string) *AppConfig {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}

	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig()
	}

	config.ValidateConfig()
	return config
}

// SaveConfig saves configuration to disk
func SaveConfig(config *AppConfig) error {
	return SaveConfigTo(ConfigPath(), config)
}

// SaveConfigTo writes configuration to path, creating its directory.
func SaveConfigTo(path string, config *AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ValidateConfig validates and normalizes configuration values
func (c *AppConfig) ValidateConfig() {
	if c.MaxExtractSize < 0 {
		c.MaxExtractSize = 0
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		c.LogLevel = "info"
	}

	if c.WindowWidth < 480 {
		c.WindowWidth = 480
	}
	if c.WindowHeight < 320 {
		c.WindowHeight = 320
	}
}

// Clone creates a copy of the config
func (c *AppConfig) Clone() *AppConfig {
	clone := *c
	return &clone
}

// FormatFileSize formats bytes to human readable string
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return strconv.FormatInt(bytes, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return trimFloat(float64(bytes)/float64(div)) + " " + []string{"KB", "MB", "GB", "TB", "PB", "EB"}[exp]
}

// trimFloat prints f with at most two decimals and no trailing zeros.
func trimFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ParseFileSize parses a human readable size such as "512MB" or "2 g".
// A bare number is bytes. Unknown units return ok == false.
func ParseFileSize(s string) (size int64, ok bool) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, false
	}

	var shift uint
	switch strings.ToUpper(strings.TrimSpace(s[i:])) {
	case "", "B":
	case "KB", "K":
		shift = 10
	case "MB", "M":
		shift = 20
	case "GB", "G":
		shift = 30
	case "TB", "T":
		shift = 40
	default:
		return 0, false
	}
	if n > math.MaxInt64>>shift {
		return 0, false
	}
	return n << shift, true
}
