// Package config handles XDG configuration directory, file paths and the API endpoint.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// SessionFile is the stored session filename (token + identity).
	SessionFile = "session.json"

	// OverlayFilePrefix prefixes the per-identity completed-task files.
	OverlayFilePrefix = "completed_tasks_"

	// DefaultAPIURL is the task API base URL used when TASKPAD_API_URL is unset.
	DefaultAPIURL = "http://localhost:5000/api"

	// APIURLEnv overrides the task API base URL.
	APIURLEnv = "TASKPAD_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the task API base URL, without a trailing slash.
	APIURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskpad or $HOME/.config/taskpad.
// A .env file in the config directory is loaded if present, then the
// environment decides the API base URL.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	// Optional; a missing .env is not an error.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	apiURL := os.Getenv(APIURLEnv)
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	apiURL = strings.TrimRight(apiURL, "/")

	return &Config{Dir: dir, APIURL: apiURL}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// OverlayPath returns the path to the completed-task file for an identity.
// The identity is sanitized so it is always a single path element.
func (c *Config) OverlayPath(identity string) string {
	return filepath.Join(c.Dir, OverlayFilePrefix+SanitizeIdentity(identity)+".json")
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasSession checks if the session file exists.
func (c *Config) HasSession() bool {
	_, err := os.Stat(c.SessionPath())
	return err == nil
}

// RemoveSession deletes the session file.
func (c *Config) RemoveSession() error {
	return os.Remove(c.SessionPath())
}

// SanitizeIdentity maps an identity string to a filesystem-safe form.
// The encoding is injective: bytes outside a small safe set (including the
// escape character itself) become %XX, so two distinct identities can never
// collide on one overlay file.
func SanitizeIdentity(identity string) string {
	var b strings.Builder
	for i := 0; i < len(identity); i++ {
		c := identity[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '@' || c == '.' || c == '-':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
