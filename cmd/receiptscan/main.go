package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/pipeline"
)

var (
	verbose bool

	zlog *zap.SugaredLogger
	proc *pipeline.Processor
)

var rootCmd = &cobra.Command{
	Use:   "receiptscan",
	Short: "Turn receipt images into structured expense records",
	Long: `receiptscan runs receipt images through validation, preprocessing,
OCR and field extraction, and prints the structured result as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func setup() error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	var err error
	proc, err = pipeline.NewProcessor(cfg, logger)
	return err
}

func main() {
	z, _ := zap.NewProduction()
	defer func() { _ = z.Sync() }()
	zlog = z.Sugar()

	if err := rootCmd.Execute(); err != nil {
		zlog.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
