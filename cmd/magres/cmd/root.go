package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwconfig "github.com/msto63/magres/foundation/core/config"
	mdwerror "github.com/msto63/magres/foundation/core/error"
	mdwlog "github.com/msto63/magres/foundation/core/log"
	"github.com/msto63/magres/pkg/core/config"
	"github.com/msto63/magres/pkg/core/logging"
	"github.com/msto63/magres/pkg/magres"
)

var (
	cfgFile    string
	verbose    bool
	logFormat  string
	headerMode string
)

// application state shared by the subcommands, built in setup
var (
	appConfig *config.Config
	appLogger *mdwlog.Logger
	appParser *magres.Parser
)

var rootCmd = &cobra.Command{
	Use:   "magres",
	Short: "magres - Werkzeuge für magres-abinitio Dateien",
	Long: `magres liest, prüft, konvertiert und katalogisiert Dateien im
magres-abinitio Format (NMR-Parameter aus ab-initio Rechnungen).

Befehle:
  parse    - Datei einlesen und Zusammenfassung ausgeben
  convert  - Datei nach JSON, YAML oder magres konvertieren
  merge    - Mehrere Dateien zusammenführen
  index    - Dateien im SQLite-Katalog speichern
  query    - Tensoren im Katalog abfragen
  catalog  - Katalog verwalten
  watch    - Datei bei Änderungen neu einlesen
  doctor   - Installation und Konfiguration prüfen`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and prints a failure to stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

// ExitCode maps an error to the process exit status:
// 2 for parse errors, 3 for configuration, 4 for io and storage, 1 otherwise
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return magres.AsError(err).Code().ExitCode()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./magres.toml, ./magres.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output (Log-Level debug)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log-Format: json, text, console, logfmt")
	rootCmd.PersistentFlags().StringVar(&headerMode, "header", "", "Signaturprüfung: ignore, optional, required")
}

// setup loads the configuration, applies flag overrides and builds the
// logger and parser
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cfg); err != nil {
		return err
	}
	return configure(cfg)
}

// applyFlagOverrides lets --verbose, --log-format and --header win over the
// loaded settings. Config reloads go through it as well.
func applyFlagOverrides(cfg *config.Config) error {
	if verbose {
		cfg.Log.Level = "debug"
	}
	if logFormat != "" {
		if _, err := mdwlog.ParseFormat(logFormat); err != nil {
			return mdwerror.Wrap(err, "invalid --log-format").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("cmd.applyFlagOverrides")
		}
		cfg.Log.Format = logFormat
	}
	if headerMode != "" {
		cfg.Parser.Header = headerMode
	}
	return nil
}

// reloadConfig rebuilds the application state from a reloaded settings file
func reloadConfig(raw *mdwconfig.Config) error {
	cfg, err := config.FromSource(raw)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cfg); err != nil {
		return err
	}
	return configure(cfg)
}

// configure replaces the application state with one built from cfg
func configure(cfg *config.Config) error {
	logger := logging.NewLogger(logging.FromConfig("magres", cfg.Log))

	opts, err := cfg.ParserOptions(logger)
	if err != nil {
		return err
	}
	parser, err := magres.New(opts)
	if err != nil {
		return err
	}

	mdwlog.SetDefault(logger)
	appConfig, appLogger, appParser = cfg, logger, parser
	docCache.Clear()

	logger.Debug("configuration loaded", mdwlog.Fields{
		"config": cfg.Source(),
		"header": cfg.Parser.Header,
		"store":  cfg.Store.Path,
	})
	return nil
}

func printError(err error) {
	var lineErr *magres.LineError
	if errors.As(err, &lineErr) {
		fmt.Fprintf(os.Stderr, "Fehler: %v\n  > %s\n", err, lineErr.Content)
		return
	}
	fmt.Fprintf(os.Stderr, "Fehler: %v\n", err)
}
