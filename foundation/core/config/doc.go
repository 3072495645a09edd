// File: doc.go
// Title: Configuration Package Documentation
// Description: Package config loads TOML and YAML configuration files with
//              dot-notation access, environment overrides, file discovery,
//              rule-based validation and fsnotify based reloading.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation with TOML/YAML support

/*
Package config provides configuration loading for the magres tools.

Files are parsed into a nested map and read with dot-notation keys:

	cfg, err := config.LoadWithOptions("magres.toml", config.LoadOptions{
		EnvPrefix: "MAGRES",
	})
	if err != nil {
		return err
	}
	level := cfg.GetString("log.level", "info")

With an environment prefix, MAGRES_LOG_LEVEL overrides the "log.level" key.

Discover searches a list of directories for the first matching file. Watch
reloads a file whenever it changes on disk and hands the new Config to a
callback; WatchFile is the underlying primitive and works for any file.

Validate checks values against ValidationRules (type, bounds, allowed values)
and reports every violation in one ValidationResult.
*/
package config
