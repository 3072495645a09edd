// File: discovery.go
// Title: Configuration File Discovery
// Description: Searches a list of directories and base names for the first
//              existing configuration file and loads it.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation of file discovery

package config

import (
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/magres/foundation/core/error"
)

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	Paths      []string               // Directories to search for config files
	Filenames  []string               // Base filenames to look for (without extension)
	Extensions []string               // File extensions to try, in order
	EnvPrefix  string                 // Environment variable prefix for overrides
	Defaults   map[string]interface{} // Defaults applied to the loaded config
	Required   bool                   // Whether finding a config file is required
}

// DefaultDiscoveryOptions returns the search order used by the magres tools
func DefaultDiscoveryOptions() DiscoveryOptions {
	return DiscoveryOptions{
		Paths:      []string{"."},
		Filenames:  []string{"magres"},
		Extensions: []string{".toml", ".yaml", ".yml"},
		EnvPrefix:  "MAGRES",
	}
}

// Discover loads the first configuration file found. When nothing is found
// and the file is not required, an empty Config carrying the defaults and
// environment overrides is returned.
func Discover(options DiscoveryOptions) (*Config, error) {
	loadOptions := LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: options.EnvPrefix,
		Defaults:  options.Defaults,
	}

	path, found := FindConfigFile(options)
	if found {
		cfg, err := LoadWithOptions(path, loadOptions)
		if err != nil {
			return nil, mdwerror.Wrap(err, "found config file but failed to load it").
				WithOperation("config.Discover").
				WithDetail("configPath", path)
		}
		return cfg, nil
	}

	if options.Required {
		return nil, mdwerror.New("no configuration file found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Discover").
			WithDetail("searched", ListPossibleConfigFiles(options))
	}

	return newConfig(nil, FormatTOML, loadOptions), nil
}

// FindConfigFile returns the first existing candidate path
func FindConfigFile(options DiscoveryOptions) (string, bool) {
	for _, candidate := range ListPossibleConfigFiles(options) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// ListPossibleConfigFiles returns every candidate path in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	paths := options.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	filenames := options.Filenames
	if len(filenames) == 0 {
		filenames = []string{"config"}
	}
	extensions := options.Extensions
	if len(extensions) == 0 {
		extensions = []string{".toml", ".yaml", ".yml"}
	}

	var candidates []string
	for _, dir := range paths {
		for _, name := range filenames {
			for _, ext := range extensions {
				candidates = append(candidates, filepath.Join(dir, name+ext))
			}
		}
	}
	return candidates
}
