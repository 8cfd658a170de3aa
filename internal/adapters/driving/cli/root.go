// Package cli is the driving adapter exposing the downloader as a
// cobra command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/adapters/driven/config/file"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driven"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driving"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool

	// Wiring seams. Execute fills them with the real implementations;
	// tests inject fakes.
	configStore driven.ConfigStore
	syncRunner  driving.SyncRunner
)

var rootCmd = &cobra.Command{
	Use:   "wisales",
	Short: "Download Wisconsin DOR historical real estate sales data",
	Long: `wisales keeps a local directory in step with the monthly real estate
sales files published by the Wisconsin Department of Revenue.

Each run enumerates the months from the start date through the current
month, downloads the archives missing locally, unpacks each one to its
<YYYYMM>CSV.csv data file, and prints a summary. Runs are idempotent:
months already on disk are skipped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print diagnostic detail to stderr")
}

// Execute wires the real configuration store and runs the root command.
func Execute() error {
	if configStore == nil {
		store, err := file.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("open configuration: %w", err)
		}
		configStore = store
	}
	return rootCmd.Execute()
}

// configString reads a string key from the config store, tolerating
// the store being absent in tests.
func configString(key string) string {
	if configStore == nil {
		return ""
	}
	return configStore.GetString(key)
}

// configInt reads an integer key from the config store.
func configInt(key string) int {
	if configStore == nil {
		return 0
	}
	return configStore.GetInt(key)
}
