package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"moto-repaint-backend/config"
	"moto-repaint-backend/internal/app"
	"moto-repaint-backend/internal/pricelist"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Moto repaint site and management console",
	Long: `Serves the marketing site, the price list with its selection cart and the
management console. Settings come from the environment or a .env file.

Run without a subcommand to start serving.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		zcfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var importCmd = &cobra.Command{
	Use:   "import-prices <file.xlsx>",
	Short: "Replace the price list with the first sheet of a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportPrices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	a, err := app.New(ctx, cfg, store, logger)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

func runImportPrices(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := pricelist.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	for _, skipped := range res.Skipped {
		logger.Warn("row skipped", zap.Int("row", skipped.Row), zap.String("reason", skipped.Reason))
	}

	ctx := cmd.Context()
	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceItems(ctx, res.Items); err != nil {
		return fmt.Errorf("replace price list: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d items from sheet %q (%d rows skipped)\n",
		len(res.Items), res.Sheet, len(res.Skipped))
	return nil
}
