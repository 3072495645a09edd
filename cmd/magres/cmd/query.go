package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/magres/foundation/core/error"
)

var queryFormat string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Tensoren im Katalog abfragen",
	Long: `Fragt die im Katalog gespeicherten Tensorwerte ab.

Beispiele:
  magres query ms H
  magres query efg O --format json
  magres query isc C H`,
}

var queryMsCmd = &cobra.Command{
	Use:   "ms [spezies]",
	Short: "Magnetische Abschirmung abfragen",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQueryMs,
}

var queryEfgCmd = &cobra.Command{
	Use:   "efg [spezies]",
	Short: "Elektrische Feldgradienten abfragen",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQueryEfg,
}

var queryIscCmd = &cobra.Command{
	Use:   "isc [spezies1] [spezies2]",
	Short: "J-Kopplungen abfragen (Reihenfolge der Spezies beliebig)",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runQueryIsc,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(queryMsCmd, queryEfgCmd, queryIscCmd)
	queryCmd.PersistentFlags().StringVar(&queryFormat, "format", "table", "Ausgabe: table, json, yaml")
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func runQueryMs(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.QueryMs(context.Background(), arg(args, 0))
	if err != nil {
		return queryError(err, "ms")
	}

	return printEntries(cmd.OutOrStdout(), entries, len(entries), func(w io.Writer) {
		p := appConfig.Report.Precision
		fmt.Fprintf(w, "%-6s %5s %14s %14s %10s  %s\n", "ATOM", "INDEX", "ISO", "ANISO", "ETA", "QUELLE")
		for _, e := range entries {
			fmt.Fprintf(w, "%-6s %5d %14.*f %14.*f %10.*f  %s\n",
				e.Species, e.Index, p, e.Iso, p, e.Aniso, p, e.Asymmetry, e.Source)
		}
	})
}

func runQueryEfg(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.QueryEfg(context.Background(), arg(args, 0))
	if err != nil {
		return queryError(err, "efg")
	}

	return printEntries(cmd.OutOrStdout(), entries, len(entries), func(w io.Writer) {
		p := appConfig.Report.Precision
		fmt.Fprintf(w, "%-6s %5s %-10s %14s %10s  %s\n", "ATOM", "INDEX", "TERM", "VZZ", "ETA", "QUELLE")
		for _, e := range entries {
			fmt.Fprintf(w, "%-6s %5d %-10s %14.*f %10.*f  %s\n",
				e.Species, e.Index, termName(e.Term), p, e.Vzz, p, e.Asymmetry, e.Source)
		}
	})
}

func runQueryIsc(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.QueryIsc(context.Background(), arg(args, 0), arg(args, 1))
	if err != nil {
		return queryError(err, "isc")
	}

	return printEntries(cmd.OutOrStdout(), entries, len(entries), func(w io.Writer) {
		p := appConfig.Report.Precision
		fmt.Fprintf(w, "%-12s %-12s %-10s %14s  %s\n", "ATOM1", "ATOM2", "TERM", "K_ISO", "QUELLE")
		for _, e := range entries {
			fmt.Fprintf(w, "%-12s %-12s %-10s %14.*f  %s\n",
				fmt.Sprintf("%s %d", e.Species1, e.Index1),
				fmt.Sprintf("%s %d", e.Species2, e.Index2),
				termName(e.Term), p, e.Iso, e.Source)
		}
	})
}

func termName(term string) string {
	if term == "" {
		return "total"
	}
	return term
}

func queryError(err error, kind string) error {
	return mdwerror.Wrap(err, "catalogue query failed").
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation("cmd.query").
		WithDetail("kind", kind)
}

// printEntries writes v as JSON or YAML, or calls table for the text layout
func printEntries(w io.Writer, v interface{}, n int, table func(io.Writer)) error {
	switch strings.ToLower(queryFormat) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	case "table", "":
		if n == 0 {
			fmt.Fprintln(w, "Keine Einträge gefunden.")
			return nil
		}
		table(w)
		return nil
	default:
		return mdwerror.New(fmt.Sprintf("unknown output format %q", queryFormat)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.query")
	}
}
