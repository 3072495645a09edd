package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/magres/pkg/core/version"
)

var (
	Version   = version.Toolkit
	GitCommit = "development"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	// no configuration needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "magres v%s\n", Version)
		fmt.Fprintf(out, "  Format:     magres-abinitio v%s (liest bis v%d.x)\n", version.Format(), version.MaxSupportedFormat())
		fmt.Fprintf(out, "  Parser:     %s\n", version.ComponentVersion("parser"))
		fmt.Fprintf(out, "  Store:      %s\n", version.ComponentVersion("store"))
		fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
