package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/magres/internal/report"
)

var (
	parseStyle     string
	parsePrecision int
)

var parseCmd = &cobra.Command{
	Use:   "parse <datei>...",
	Short: "Datei einlesen und Zusammenfassung ausgeben",
	Long: `Liest eine oder mehrere magres Dateien ein und gibt eine Zusammenfassung
aus: Anzahl der Atome, Symmetrien, Gitter, J-Kopplungen, EFG- und MS-Tensoren
sowie die isotropen Werte je Atom.

Beispiele:
  magres parse ethanol.magres
  magres parse --style styled ethanol.magres
  magres parse --header required --precision 3 *.magres`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseStyle, "style", "", "Ausgabestil: plain, styled (default aus Config)")
	parseCmd.Flags().IntVar(&parsePrecision, "precision", -1, "Nachkommastellen (default aus Config)")
}

func runParse(cmd *cobra.Command, args []string) error {
	style := appConfig.Report.Style
	if parseStyle != "" {
		style = parseStyle
	}
	precision := appConfig.Report.Precision
	if parsePrecision >= 0 {
		precision = parsePrecision
	}

	renderer, err := report.New(style, precision)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, path := range args {
		doc, err := parseFile(path)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			if i > 0 {
				out.Write([]byte("\n"))
			}
			out.Write([]byte("== " + path + " ==\n"))
		}
		if err := renderer.Render(out, report.NewSummary(path, doc)); err != nil {
			return err
		}
	}
	return nil
}
