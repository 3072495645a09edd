package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/magres/pkg/core/health"
)

// selfTestDocument is parsed by the parser check
const selfTestDocument = `#$magres-abinitio-v1.0
[atoms]
units atom Angstrom
atom H H1 1 0.0 0.0 0.0
atom H H2 2 0.74 0.0 0.0
[/atoms]
[magres]
units ms ppm
ms H 1 26.0 0.0 0.0 0.0 26.0 0.0 0.0 0.0 26.0
units isc 10^19.T^2.J^-1
isc H 1 H 2 28.0 0.0 0.0 0.0 28.0 0.0 0.0 0.0 28.0
[/magres]
`

var doctorCmd = &cobra.Command{
	Use:   "doctor [datei...]",
	Short: "Installation und Konfiguration prüfen",
	Long: `Prüft Config-Datei, Parser und Katalog. Angegebene Dateien werden
zusätzlich eingelesen.

Beispiele:
  magres doctor
  magres doctor ethanol.magres`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	registry := health.NewRegistry("magres", Version)
	registry.Register(configCheck())
	registry.RegisterFunc("parser", checkParser)
	registry.Register(health.WritableDirCheck("store-dir", filepath.Dir(catalogPath())))
	registry.RegisterFunc("store", checkStore)
	for _, path := range args {
		path := path
		registry.RegisterFunc("file "+path, func(ctx context.Context) health.CheckResult {
			doc, err := parseFile(path)
			if err != nil {
				return health.Unhealthy(err)
			}
			c := doc.Counts()
			return health.Healthy(fmt.Sprintf("%d atoms, %d ms, %d efg, %d isc", c.Atoms, c.Ms, c.Efg, c.Isc))
		})
	}

	report := registry.CheckWithTimeout(30 * time.Second)

	fmt.Fprintln(out, "magres Diagnose")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)
	for _, c := range report.Checks {
		icon := "[+]"
		if c.Status != health.StatusHealthy {
			icon = "[-]"
		}
		fmt.Fprintf(out, "  %s %-12s - %s\n", icon, c.Name, c.Message)
	}
	fmt.Fprintln(out)

	if err := report.Err(); err != nil {
		fmt.Fprintln(out, "Einige Prüfungen sind fehlgeschlagen.")
		return err
	}
	fmt.Fprintln(out, "Alle Prüfungen bestanden.")
	return nil
}

func configCheck() health.Checker {
	src := appConfig.Source()
	if src == "" {
		return health.NewChecker("config", func(ctx context.Context) health.CheckResult {
			return health.Healthy("keine Config-Datei, Standardwerte aktiv")
		})
	}
	return health.FileCheck("config", src)
}

func checkParser(ctx context.Context) health.CheckResult {
	doc, err := appParser.Parse(selfTestDocument)
	if err != nil {
		return health.Unhealthy(err)
	}
	if c := doc.Counts(); c.Atoms != 2 || c.Ms != 1 || c.Isc != 1 {
		return health.CheckResult{
			Status:  health.StatusUnhealthy,
			Message: fmt.Sprintf("self test parsed %d atoms, %d ms, %d isc", c.Atoms, c.Ms, c.Isc),
		}
	}
	return health.Healthy("header " + appConfig.Parser.Header)
}

func checkStore(ctx context.Context) health.CheckResult {
	s, err := openStore()
	if err != nil {
		return health.Unhealthy(err)
	}
	defer s.Close()

	stats, err := s.Statistics(ctx)
	if err != nil {
		return health.Unhealthy(storeError(err, "doctor"))
	}
	result := health.Healthy(fmt.Sprintf("%s (%v Dokumente)", catalogPath(), stats["total_documents"]))
	result.Details = stats
	return result
}
