// Package main provides a CLI for running single order guide files through
// the processing pipeline without going through the job queue.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ogparsing/internal/config"
	"ogparsing/internal/fetch"
	"ogparsing/internal/logger"
	"ogparsing/internal/models"
	"ogparsing/internal/payload"
	"ogparsing/internal/processor"
	"ogparsing/internal/store"
	"ogparsing/internal/worker"
	"ogparsing/pkg/metadata"
)

var (
	cfgFile           string
	locationVendorIDs []uint
	submit            bool
)

var rootCmd = &cobra.Command{
	Use:   "import",
	Short: "Process order guide files from the command line",
	Long: `import runs a vendor order guide file through format detection and
processing, printing a summary of the extracted documents. With --submit the
documents are also posted to the backend.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Process one local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(metadata.BuildInfo())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "Path to YAML configuration file")
	runCmd.Flags().UintSliceVar(&locationVendorIDs, "location-vendor", nil, "Location vendor ID (repeatable)")
	runCmd.Flags().BoolVar(&submit, "submit", false, "Submit processed documents to the backend")
	_ = runCmd.MarkFlagRequired("location-vendor")

	rootCmd.AddCommand(runCmd, versionCmd)
}

func runImport(path string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Logging.Level)

	db, err := store.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}

	lvs, err := db.LocationVendorsByIDs(locationVendorIDs)
	if err != nil {
		return err
	}

	if len(lvs) == 0 {
		return fmt.Errorf("no location vendors found for ids %v", locationVendorIDs)
	}

	fetcher := fetch.NewFetcherWithConfig(&cfg.Fetch.Retry)

	body, err := fetcher.ReadLocalFile(path)
	if err != nil {
		return err
	}

	var sink worker.DocumentSink = discardSink{}
	if submit {
		sink = payload.NewSubmitter(cfg.Backend.Endpoint, cfg.Backend.APIKey, cfg.GetBackendTimeout(), log)
	}

	locator := processor.DefaultLocator(processor.Deps{
		Accounts:             db,
		Catalog:              db,
		PriceChangeThreshold: cfg.Processing.PriceChangeThreshold,
	})
	pipeline := worker.NewPipeline(fetcher, db, locator, sink, worker.NewMetrics(), log)

	rep, err := pipeline.RunLocal(path, body, lvs)
	if err != nil {
		return err
	}

	fmt.Print(rep.Render())

	return nil
}

// discardSink keeps dry runs local.
type discardSink struct{}

func (discardSink) SubmitAll([]*models.OrderGuideDocument) error { return nil }

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
