package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/magres/foundation/core/error"
)

var (
	catalogLimit  int
	catalogOffset int
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Katalog verwalten",
	Long: `Listet, zeigt und löscht indizierte Dokumente.

Beispiele:
  magres catalog list
  magres catalog show <id>
  magres catalog delete <id>
  magres catalog stats`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Indizierte Dokumente auflisten (neueste zuerst)",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Details eines Dokuments anzeigen",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Dokument aus dem Katalog löschen",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogDelete,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Statistik des Katalogs",
	Args:  cobra.NoArgs,
	RunE:  runCatalogStats,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd, catalogDeleteCmd, catalogStatsCmd)
	catalogListCmd.Flags().IntVar(&catalogLimit, "limit", 50, "Maximale Anzahl")
	catalogListCmd.Flags().IntVar(&catalogOffset, "offset", 0, "Überspringen")
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	docs, err := s.ListDocuments(context.Background(), catalogLimit, catalogOffset)
	if err != nil {
		return storeError(err, "list")
	}

	out := cmd.OutOrStdout()
	if len(docs) == 0 {
		fmt.Fprintln(out, "Katalog ist leer.")
		return nil
	}
	fmt.Fprintf(out, "%-36s  %-19s  %5s %4s %4s %4s  %s\n", "ID", "ERSTELLT", "ATOME", "MS", "EFG", "ISC", "QUELLE")
	for _, d := range docs {
		fmt.Fprintf(out, "%-36s  %-19s  %5d %4d %4d %4d  %s\n",
			d.ID, d.CreatedAt.Local().Format("2006-01-02 15:04:05"), d.Atoms, d.Ms, d.Efg, d.Isc, d.Source)
	}
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := s.GetDocument(context.Background(), args[0])
	if err != nil {
		return storeError(err, "show")
	}

	version := d.Version
	if version == "" {
		version = "(ohne Signatur)"
	}
	lattice := "nein"
	if d.HasLattice {
		lattice = "ja"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:         %s\n", d.ID)
	fmt.Fprintf(out, "Quelle:     %s\n", d.Source)
	fmt.Fprintf(out, "Version:    %s\n", version)
	fmt.Fprintf(out, "Erstellt:   %s\n", d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Atome:      %d\n", d.Atoms)
	fmt.Fprintf(out, "Symmetrien: %d\n", d.Symmetries)
	fmt.Fprintf(out, "Gitter:     %s\n", lattice)
	fmt.Fprintf(out, "Tensoren:   %d MS, %d EFG, %d ISC\n", d.Ms, d.Efg, d.Isc)
	return nil
}

func runCatalogDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteDocument(context.Background(), args[0]); err != nil {
		return storeError(err, "delete")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dokument %s gelöscht.\n", args[0])
	return nil
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.Statistics(context.Background())
	if err != nil {
		return storeError(err, "stats")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Dokumente: %v\n", stats["total_documents"])
	fmt.Fprintf(out, "Atome:     %v\n", stats["total_atoms"])
	fmt.Fprintf(out, "MS:        %v\n", stats["total_ms"])
	fmt.Fprintf(out, "EFG:       %v\n", stats["total_efg"])
	fmt.Fprintf(out, "ISC:       %v\n", stats["total_isc"])

	if species, ok := stats["species"].(map[string]int64); ok && len(species) > 0 {
		names := make([]string, 0, len(species))
		for name := range species {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(out, "\nSpezies:")
		for _, name := range names {
			fmt.Fprintf(out, "  %-4s %d\n", name, species[name])
		}
	}
	return nil
}

// storeError keeps not-found codes and marks everything else as a storage failure
func storeError(err error, op string) error {
	if mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		return err
	}
	return mdwerror.Wrap(err, "catalogue operation failed").
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation("cmd.catalog." + op)
}
