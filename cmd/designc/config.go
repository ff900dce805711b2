package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the contents of .designc/config.yaml.
type ProjectConfig struct {
	Version   string `yaml:"version"`
	ThemePath string `yaml:"theme_path"`
	OutDir    string `yaml:"out_dir"`
	MCPLog    string `yaml:"mcp_log"`
}

// loadProjectConfig reads .designc/config.yaml under the workspace
// root. Returns nil (no error) if the file does not exist.
func loadProjectConfig(root string) (*ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, ".designc", "config.yaml"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveThemePath returns the theme path to use, applying the
// fallback chain:
//  1. Explicit --theme flag value
//  2. theme_path from .designc/config.yaml
//  3. Empty, which lets the workspace auto-discover
func resolveThemePath(root, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg, err := loadProjectConfig(root); err == nil && cfg != nil && cfg.ThemePath != "" {
		return filepath.Join(root, cfg.ThemePath)
	}
	return ""
}

// resolveOutDir returns the output directory, applying the same
// flag -> config -> default chain.
func resolveOutDir(root, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg, err := loadProjectConfig(root); err == nil && cfg != nil && cfg.OutDir != "" {
		return filepath.Join(root, cfg.OutDir)
	}
	return filepath.Join(root, "dist")
}

// resolveMCPLog returns the MCP call log path, or "" to disable.
func resolveMCPLog(root, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg, err := loadProjectConfig(root); err == nil && cfg != nil && cfg.MCPLog != "" {
		return filepath.Join(root, cfg.MCPLog)
	}
	return ""
}
