// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     config
// Description: Typed application settings for the magres tools
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package config

import (
	"strings"
	"time"

	mdwconfig "github.com/msto63/magres/foundation/core/config"
	mdwerror "github.com/msto63/magres/foundation/core/error"
	mdwlog "github.com/msto63/magres/foundation/core/log"
	"github.com/msto63/magres/pkg/magres"
)

// EnvPrefix is the prefix of environment overrides (MAGRES_LOG_LEVEL, ...)
const EnvPrefix = "MAGRES"

// Config holds the complete application configuration
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Report ReportConfig `toml:"report" yaml:"report"`
	Store  StoreConfig  `toml:"store" yaml:"store"`
	Watch  WatchConfig  `toml:"watch" yaml:"watch"`

	// path of the loaded file, empty when only defaults apply
	source string
}

// ParserConfig mirrors magres.Options
type ParserConfig struct {
	Header          string `toml:"header" yaml:"header"`
	MaxMajorVersion int    `toml:"max_major_version" yaml:"max_major_version"`
	StrictCloseTags bool   `toml:"strict_close_tags" yaml:"strict_close_tags"`
	LenientSymmetry bool   `toml:"lenient_symmetry" yaml:"lenient_symmetry"`
	CheckUnits      bool   `toml:"check_units" yaml:"check_units"`
	Contributions   bool   `toml:"contributions" yaml:"contributions"`
	MaxInputBytes   int    `toml:"max_input_bytes" yaml:"max_input_bytes"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// ReportConfig holds summary rendering settings
type ReportConfig struct {
	Style     string `toml:"style" yaml:"style"` // plain or styled
	Precision int    `toml:"precision" yaml:"precision"`
}

// StoreConfig holds catalogue database settings
type StoreConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// WatchConfig holds file watching settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for text (un)marshaling
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the default values in dot notation
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"parser.header":            "ignore",
		"parser.max_major_version": 1,
		"parser.strict_close_tags": false,
		"parser.lenient_symmetry":  false,
		"parser.check_units":       false,
		"parser.contributions":     false,
		"parser.max_input_bytes":   0,
		"log.level":                "warn",
		"log.format":               "text",
		"report.style":             "plain",
		"report.precision":         6,
		"store.path":               "./data/magres.db",
		"watch.debounce":           "100ms",
	}
}

// Rules returns the validation rules for a settings file
func Rules() mdwconfig.ValidationRules {
	return mdwconfig.ValidationRules{
		"parser.header":            {Type: "string", OneOf: []string{"ignore", "optional", "required"}},
		"parser.max_major_version": {Type: "int", Min: mdwconfig.IntPtr(0)},
		"parser.strict_close_tags": {Type: "bool"},
		"parser.lenient_symmetry":  {Type: "bool"},
		"parser.check_units":       {Type: "bool"},
		"parser.contributions":     {Type: "bool"},
		"parser.max_input_bytes":   {Type: "int", Min: mdwconfig.IntPtr(0)},
		"log.level":                {Type: "string", OneOf: []string{"trace", "debug", "info", "warn", "error", "fatal"}},
		"log.format":               {Type: "string", OneOf: []string{"json", "text", "console", "logfmt"}},
		"report.style":             {Type: "string", OneOf: []string{"plain", "styled"}},
		"report.precision":         {Type: "int", Min: mdwconfig.IntPtr(0), Max: mdwconfig.IntPtr(17)},
		"store.path":               {Type: "string", Required: true},
	}
}

// Load reads settings from path. An empty path searches ./magres.toml,
// ./magres.yaml and ./magres.yml and falls back to defaults.
func Load(path string) (*Config, error) {
	var (
		src *mdwconfig.Config
		err error
	)
	if path == "" {
		opts := mdwconfig.DefaultDiscoveryOptions()
		opts.EnvPrefix = EnvPrefix
		opts.Defaults = Defaults()
		src, err = mdwconfig.Discover(opts)
	} else {
		src, err = mdwconfig.LoadWithOptions(path, mdwconfig.LoadOptions{
			Format:    mdwconfig.FormatAuto,
			EnvPrefix: EnvPrefix,
			Defaults:  Defaults(),
		})
	}
	if err != nil {
		return nil, err
	}
	return FromSource(src)
}

// LoadFromString parses settings from content in the given format
func LoadFromString(content string, format mdwconfig.Format) (*Config, error) {
	src, err := mdwconfig.LoadFromStringWithOptions(content, mdwconfig.LoadOptions{
		Format:    format,
		EnvPrefix: EnvPrefix,
		Defaults:  Defaults(),
	})
	if err != nil {
		return nil, err
	}
	return FromSource(src)
}

// FromSource validates a loaded configuration and converts it to Config
func FromSource(src *mdwconfig.Config) (*Config, error) {
	if err := src.Validate(Rules()).Err(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Parser: ParserConfig{
			Header:          strings.ToLower(src.GetString("parser.header")),
			MaxMajorVersion: src.GetInt("parser.max_major_version"),
			StrictCloseTags: src.GetBool("parser.strict_close_tags"),
			LenientSymmetry: src.GetBool("parser.lenient_symmetry"),
			CheckUnits:      src.GetBool("parser.check_units"),
			Contributions:   src.GetBool("parser.contributions"),
			MaxInputBytes:   src.GetInt("parser.max_input_bytes"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(src.GetString("log.level")),
			Format: strings.ToLower(src.GetString("log.format")),
		},
		Report: ReportConfig{
			Style:     strings.ToLower(src.GetString("report.style")),
			Precision: src.GetInt("report.precision"),
		},
		Store: StoreConfig{
			Path: src.GetString("store.path"),
		},
		source: src.FilePath(),
	}

	if err := cfg.Watch.Debounce.UnmarshalText([]byte(src.GetString("watch.debounce"))); err != nil {
		return nil, mdwerror.Wrap(err, "invalid watch.debounce").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.FromSource")
	}

	return cfg, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg, err := LoadFromString("", mdwconfig.FormatTOML)
	if err != nil {
		// defaults always validate
		panic(err)
	}
	return cfg
}

// Source returns the path of the loaded settings file
func (c *Config) Source() string {
	return c.source
}

// ParserOptions converts the parser section to magres.Options
func (c *Config) ParserOptions(logger *mdwlog.Logger) (magres.Options, error) {
	header, err := magres.ParseHeaderMode(c.Parser.Header)
	if err != nil {
		return magres.Options{}, mdwerror.Wrap(err, "invalid parser.header").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.ParserOptions")
	}

	return magres.Options{
		Logger:          logger,
		Header:          header,
		MaxMajorVersion: c.Parser.MaxMajorVersion,
		StrictCloseTags: c.Parser.StrictCloseTags,
		LenientSymmetry: c.Parser.LenientSymmetry,
		Contributions:   c.Parser.Contributions,
		CheckUnits:      c.Parser.CheckUnits,
		MaxInputBytes:   c.Parser.MaxInputBytes,
	}, nil
}
