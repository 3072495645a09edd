package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/magres/foundation/core/error"
	mdwlog "github.com/msto63/magres/foundation/core/log"
	"github.com/msto63/magres/internal/store"
)

var storePath string

var indexCmd = &cobra.Command{
	Use:   "index <datei>...",
	Short: "Dateien im SQLite-Katalog speichern",
	Long: `Liest magres Dateien ein und speichert Atome sowie abgeleitete Tensorwerte
(isotrope Abschirmung, Anisotropie, Vzz, Asymmetrie, K_iso) im Katalog.

Fehlerhafte Dateien werden gemeldet und übersprungen.

Beispiele:
  magres index ethanol.magres
  magres index --store ./data/nmr.db results/*.magres`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Katalog-Datenbank (default aus Config)")
}

// catalogPath returns the catalogue database path
func catalogPath() string {
	if storePath != "" {
		return storePath
	}
	return appConfig.Store.Path
}

// openStore opens the catalogue configured by --store or [store] path
func openStore() (*store.SQLiteStore, error) {
	path := catalogPath()
	s, err := store.NewSQLiteStore(store.Config{Path: path})
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to open catalogue").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("cmd.openStore").
			WithDetail("path", path)
	}
	return s, nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	var firstErr error
	indexed := 0
	for _, path := range args {
		doc, err := parseFile(path)
		if err != nil {
			fmt.Fprintf(out, "  [-] %s: %v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		id, err := s.SaveDocument(ctx, path, doc)
		if err != nil {
			return mdwerror.Wrap(err, "failed to save document").
				WithCode(mdwerror.CodeDatabaseError).
				WithOperation("cmd.index").
				WithDetail("path", path)
		}
		indexed++
		fmt.Fprintf(out, "  [+] %s -> %s\n", path, id)
	}

	appLogger.Info("indexing finished", mdwlog.Fields{
		"indexed": indexed,
		"failed":  len(args) - indexed,
	})

	fmt.Fprintf(out, "\n%d von %d Datei(en) indiziert.\n", indexed, len(args))
	return firstErr
}
