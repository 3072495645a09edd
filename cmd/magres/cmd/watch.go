package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	mdwconfig "github.com/msto63/magres/foundation/core/config"
	mdwlog "github.com/msto63/magres/foundation/core/log"
	"github.com/msto63/magres/internal/report"
	"github.com/msto63/magres/pkg/core/config"
)

var watchIndex bool

var watchCmd = &cobra.Command{
	Use:   "watch <datei>",
	Short: "Datei bei Änderungen neu einlesen",
	Long: `Beobachtet eine magres Datei und gibt nach jeder Änderung die
Zusammenfassung neu aus. Ist eine Config-Datei geladen, wird auch sie
beobachtet und der Parser bei Änderungen neu konfiguriert.

Beenden mit Ctrl+C.

Beispiele:
  magres watch ethanol.magres
  magres watch --index ethanol.magres`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchIndex, "index", false, "Jede gültige Fassung im Katalog speichern")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mdwconfig.DebounceInterval = appConfig.Watch.Debounce.Duration

	// reparse and config reload run on different goroutines
	var mu sync.Mutex
	// digest of the last rendered content
	var lastKey string

	reparse := func() {
		mu.Lock()
		defer mu.Unlock()

		renderer, err := report.New(appConfig.Report.Style, appConfig.Report.Precision)
		if err != nil {
			printError(err)
			return
		}

		doc, key, err := loadFile(path)
		if err != nil {
			lastKey = ""
			printError(err)
			return
		}
		if key == lastKey {
			appLogger.Debug("content unchanged, skipping", mdwlog.Fields{"path": path})
			return
		}
		lastKey = key
		fmt.Fprintf(out, "\n== %s ==\n", path)
		if err := renderer.Render(out, report.NewSummary(path, doc)); err != nil {
			printError(err)
			return
		}

		if watchIndex {
			s, err := openStore()
			if err != nil {
				printError(err)
				return
			}
			defer s.Close()
			id, err := s.SaveDocument(ctx, path, doc)
			if err != nil {
				printError(storeError(err, "watch"))
				return
			}
			fmt.Fprintf(out, "  [+] indiziert als %s\n", id)
		}
	}

	var wg sync.WaitGroup
	if src := appConfig.Source(); src != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mdwconfig.Watch(ctx, src, mdwconfig.LoadOptions{
				Format:    mdwconfig.FormatAuto,
				EnvPrefix: config.EnvPrefix,
				Defaults:  config.Defaults(),
			}, func(raw *mdwconfig.Config, err error) {
				mu.Lock()
				defer mu.Unlock()

				if err == nil {
					err = reloadConfig(raw)
				}
				if err != nil {
					appLogger.WarnWithErr("config reload failed, keeping previous settings", err,
						mdwlog.Fields{"config": src})
					return
				}
				lastKey = ""
				appLogger.Info("config reloaded", mdwlog.Fields{"config": src})
			})
			if err != nil {
				printError(err)
			}
		}()
	}

	reparse()
	fmt.Fprintf(out, "\nBeobachte %s (Ctrl+C zum Beenden)\n", path)

	err := mdwconfig.WatchFile(ctx, path, reparse)
	stop()
	wg.Wait()
	return err
}
