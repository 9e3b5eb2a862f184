// Package config loads and saves the per-user wgips configuration file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultHistoryLimit caps the number of retained history entries when the
// config file does not say otherwise.
const DefaultHistoryLimit = 200

// DefaultAllowedPrefill seeds the allowed input of the terminal UI on first
// run.
const DefaultAllowedPrefill = "0.0.0.0/0, ::/0"

// UI is the persisted terminal-layout state, the TUI analogue of saved
// window geometry.
type UI struct {
	InputRows      int  `yaml:"input_rows,omitempty"`
	HistoryVisible bool `yaml:"history_visible,omitempty"`
}

type File struct {
	Version int `yaml:"version,omitempty"`

	HistoryLimit int    `yaml:"history_limit,omitempty"`
	HistoryPath  string `yaml:"history_path,omitempty"`

	AllowedPrefill string `yaml:"allowed_prefill,omitempty"`

	UI *UI `yaml:"ui,omitempty"`
}

// Limit returns the effective history retention cap.
func (f File) Limit() int {
	if f.HistoryLimit > 0 {
		return f.HistoryLimit
	}
	return DefaultHistoryLimit
}

// Prefill returns the effective allowed-input prefill text.
func (f File) Prefill() string {
	if f.AllowedPrefill != "" {
		return f.AllowedPrefill
	}
	return DefaultAllowedPrefill
}

// DefaultDir returns the per-user directory holding the config file and the
// history database.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "wgips")
	}

	dir, err := os.UserConfigDir()
	if err == nil && dir != "" {
		return filepath.Join(dir, "wgips")
	}

	home := os.Getenv("HOME")
	if home == "" {
		return "."
	}
	return filepath.Join(home, ".config", "wgips")
}

func DefaultPath() string {
	return filepath.Join(DefaultDir(), "wgips.yml")
}

// HistoryDBPath returns the configured history database location, defaulting
// to history.db next to the config file.
func (f File) HistoryDBPath(configPath string) string {
	if f.HistoryPath != "" {
		return f.HistoryPath
	}
	return filepath.Join(filepath.Dir(configPath), "history.db")
}

// Load reads the config at path. The boolean reports whether the file
// existed; a missing file is not an error.
func Load(path string) (File, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, false, nil
		}
		return File{}, false, err
	}

	var cfg File
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return File{}, true, err
	}
	return cfg, true, nil
}

// Save writes cfg atomically: temp file in the target directory, then
// rename. The directory is created on demand with user-only permissions.
func Save(path string, cfg File) error {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}

	tmp, err := os.CreateTemp(dir, ".wgips-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
