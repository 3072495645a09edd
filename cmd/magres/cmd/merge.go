package cmd

import (
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/magres/foundation/core/log"
	"github.com/msto63/magres/pkg/magres"
)

var (
	mergeTo     string
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <datei> <datei>...",
	Short: "Mehrere Dateien zusammenführen",
	Long: `Führt mehrere magres Dateien zu einer zusammen.

Atome, Gitter und Symmetrien stammen aus der ersten Datei. Die Tensoren aller
Dateien werden in Reihenfolge angehängt und über Spezies und Index den Atomen
der ersten Datei zugeordnet. Ein unbekanntes Atom bricht mit einem Fehler ab.

Beispiele:
  magres merge ms.magres efg.magres isc.magres -o combined.magres
  magres merge --to json a.magres b.magres`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeTo, "to", formatMagres, "Zielformat: magres, json, yaml")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Ausgabedatei (default: stdout)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	docs := make([]*magres.Document, 0, len(args))
	for _, path := range args {
		doc, err := parseFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	merged, err := magres.Merge(docs...)
	if err != nil {
		return err
	}

	c := merged.Counts()
	appLogger.Info("merged documents", mdwlog.Fields{
		"files": len(args),
		"ms":    c.Ms,
		"efg":   c.Efg,
		"isc":   c.Isc,
	})

	data, err := encode(merged, mergeTo)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), mergeOutput, data)
}
