// Package config loads the optional hostmaint runtime configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/eliteGoblin/hostmaint/internal/catalog"
)

// Config holds deployment settings. Every field has a working default; the
// config file only overrides.
type Config struct {
	// LogPath is where the zap production logger writes. Empty means stderr.
	LogPath string `toml:"log_path"`

	// ToolsDir is where fetched utility bundles are unpacked and where the
	// update helper is looked up.
	ToolsDir string `toml:"tools_dir"`

	// BundleURL is the tar.gz utility bundle fetched by fetch-tools.
	BundleURL string `toml:"bundle_url"`

	// ToolPaths overrides the well-known tool locations, keyed by tool
	// executable name (chkdsk.exe, sfc.exe, dism.exe, wuhelper.exe).
	ToolPaths map[string]string `toml:"tool_paths"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ToolsDir:  defaultToolsDir(),
		ToolPaths: map[string]string{},
	}
}

func defaultToolsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hostmaint/tools"
	}
	return filepath.Join(home, ".hostmaint", "tools")
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("log_path") {
		cfg.LogPath = strings.TrimSpace(raw.LogPath)
	}
	if meta.IsDefined("tools_dir") && strings.TrimSpace(raw.ToolsDir) != "" {
		cfg.ToolsDir = strings.TrimSpace(raw.ToolsDir)
	}
	if meta.IsDefined("bundle_url") {
		cfg.BundleURL = strings.TrimSpace(raw.BundleURL)
	}
	if meta.IsDefined("tool_paths") {
		for tool, p := range raw.ToolPaths {
			if v := strings.TrimSpace(p); v != "" {
				cfg.ToolPaths[tool] = v
			}
		}
	}

	return cfg, nil
}

// UpdateHelperPath returns the update helper location: an explicit override
// wins, then the tools directory, then the system default.
func (c *Config) UpdateHelperPath() string {
	const helper = "wuhelper.exe"
	if p, ok := c.ToolPaths[helper]; ok && p != "" {
		return p
	}
	local := filepath.Join(c.ToolsDir, helper)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return catalog.DefaultToolPath(helper)
}
