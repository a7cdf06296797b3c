package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DirName is the directory under $HOME holding config, logs and history.
const DirName = ".agentdeck"

// Config represents the agentdeck configuration
type Config struct {
	// UI preferences
	Theme     string   `json:"theme"`
	StatusTTL Duration `json:"status_ttl"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	LogFile   string `json:"log_file"`

	// launchctl
	Launchctl string   `json:"launchctl"`
	ProbeTTL  Duration `json:"probe_ttl"`

	// Directory watching
	Watch         bool     `json:"watch"`
	WatchDebounce Duration `json:"watch_debounce"`

	// Save history
	HistoryDB   string `json:"history_db"`
	HistoryKeep int    `json:"history_keep"`

	// Locations overrides the scanned directory per location name
	// ("user", "global", "apple").
	Locations map[string]string `json:"locations,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme:         "onehalf-dark",
		StatusTTL:     Duration(3 * time.Second),
		LogLevel:      "info",
		LogFormat:     "console",
		LogFile:       "agentdeck.log",
		Launchctl:     "launchctl",
		ProbeTTL:      Duration(5 * time.Second),
		Watch:         true,
		WatchDebounce: Duration(300 * time.Millisecond),
		HistoryDB:     "history.db",
		HistoryKeep:   20,
	}
}

// Duration is a time.Duration that reads and writes as "1.5s" in JSON.
// Bare numbers are taken as seconds.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var secs float64
		if err := json.Unmarshal(data, &secs); err != nil {
			return fmt.Errorf("duration must be a string or number: %s", data)
		}
		*d = Duration(secs * float64(time.Second))
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Manager handles configuration loading and saving
type Manager struct {
	dir        string
	configPath string
	config     *Config
}

// DefaultDir returns ~/.agentdeck.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// NewManager creates a manager for dir/config.json
func NewManager(dir string) *Manager {
	return &Manager{
		dir:        dir,
		configPath: filepath.Join(dir, "config.json"),
		config:     DefaultConfig(),
	}
}

// NewManagerForFile creates a manager for an explicit config file. Relative
// paths inside it resolve against the file's directory.
func NewManagerForFile(path string) *Manager {
	return &Manager{
		dir:        filepath.Dir(path),
		configPath: path,
		config:     DefaultConfig(),
	}
}

// Dir is the directory relative paths resolve against.
func (m *Manager) Dir() string { return m.dir }

// ConfigPath is the file Load and Save use.
func (m *Manager) ConfigPath() string { return m.configPath }

// Load reads the configuration from disk, writing defaults on first run.
// Keys missing from the file keep their defaults.
func (m *Manager) Load() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return m.Save()
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}

	m.expandEnvVars(config)
	m.config = config
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates a configuration value and saves. Location overrides use
// keys of the form "locations.user".
func (m *Manager) Set(key, value string) error {
	c := m.config
	var err error
	switch key {
	case "theme":
		c.Theme = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "log_file":
		c.LogFile = value
	case "launchctl":
		c.Launchctl = value
	case "history_db":
		c.HistoryDB = value
	case "watch":
		c.Watch = value == "true"
	case "history_keep":
		var n int
		if n, err = strconv.Atoi(value); err == nil {
			c.HistoryKeep = n
		}
	case "status_ttl":
		err = setDuration(&c.StatusTTL, value)
	case "probe_ttl":
		err = setDuration(&c.ProbeTTL, value)
	case "watch_debounce":
		err = setDuration(&c.WatchDebounce, value)
	default:
		name, ok := strings.CutPrefix(key, "locations.")
		if !ok || name == "" {
			return fmt.Errorf("unknown config key: %s", key)
		}
		if c.Locations == nil {
			c.Locations = make(map[string]string)
		}
		c.Locations[name] = value
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	return m.Save()
}

func setDuration(d *Duration, value string) error {
	v, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Resolve turns a configured path into an absolute one: "~/" is the home
// directory and relative paths are under the config directory. An empty
// path stays empty.
func (m *Manager) Resolve(p string) string {
	if p == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// expandEnvVars expands environment variables in config values
func (m *Manager) expandEnvVars(config *Config) {
	for _, s := range []*string{
		&config.Theme,
		&config.LogFile,
		&config.Launchctl,
		&config.HistoryDB,
	} {
		*s = expandString(*s)
	}
	for name, dir := range config.Locations {
		config.Locations[name] = expandString(dir)
	}
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandString expands environment variables in a string
// Supports $VAR and ${VAR} syntax
func expandString(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Return original if env var not found
		return match
	})
}
