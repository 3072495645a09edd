package cmd

import (
	"github.com/spf13/cobra"
)

var (
	convertTo     string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert <datei>",
	Short: "Datei nach JSON, YAML oder magres konvertieren",
	Long: `Liest eine magres Datei ein und schreibt sie im Zielformat.

Das Format magres erzeugt die kanonische Schreibweise (Signatur, Blöcke in
fester Reihenfolge, zwei Leerzeichen Einrückung).

Beispiele:
  magres convert ethanol.magres --to json
  magres convert ethanol.magres --to yaml -o ethanol.yaml
  magres convert legacy.magres --to magres`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertTo, "to", formatJSON, "Zielformat: json, yaml, magres")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Ausgabedatei (default: stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	doc, err := parseFile(args[0])
	if err != nil {
		return err
	}

	data, err := encode(doc, convertTo)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), convertOutput, data)
}
