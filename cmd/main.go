package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"parcels/internal/database"
	"parcels/internal/frame"
	"parcels/internal/logger"
)

// Path to the .env file holding DB_* settings for --load.
var envFile = ".env"

var (
	logLevel string
	jsonLogs bool

	osFs = afero.NewOsFs()
	log  *charmlog.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "parcels",
		Short:         "Normalize county parcel extracts into one schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", string(logger.InfoLevel), "debug, info, warn or error")
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON")

	root.AddCommand(newSampleCmd(), newNormalizeCmd(), newRunCmd(), newPreviewCmd())
	return root
}

// setupLogging writes text logs to an interactive stderr and JSON otherwise.
func setupLogging() {
	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	if interactive && runtime.GOOS == "windows" {
		enableVT()
	}
	logger.Init(&logger.Config{
		Level:      logger.LogLevel(logLevel),
		Output:     os.Stderr,
		JSON:       jsonLogs || !interactive,
		TimeFormat: "15:04:05",
	})
	log = logger.Default()
}

// writeFrame writes f as CSV to path, or to stdout when path is empty.
func writeFrame(path string, f *frame.Frame) (err error) {
	if path == "" {
		return f.WriteCSV(os.Stdout)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := osFs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := osFs.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return f.WriteCSV(out)
}

// loadParcels stores a canonical parcel table in the configured database.
func loadParcels(ctx context.Context, parcels *frame.Frame) error {
	cfg, err := database.LoadDatabaseConfig(envFile)
	if err != nil {
		return err
	}
	db, err := database.NewDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.InsertParcels(ctx, parcels)
	if err != nil {
		return err
	}
	log.Info("parcels loaded", "rows", n, "table", cfg.Table)

	counts, err := db.CountParcelsByCounty(ctx)
	if err != nil {
		return err
	}
	for county, c := range counts {
		log.Info("stored parcels", "county", county, "rows", c)
	}
	return nil
}
