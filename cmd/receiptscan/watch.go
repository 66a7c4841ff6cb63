package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/ingest"
)

var (
	watchInitialScan bool
	watchDebounce    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Watch directories and process receipt images as they appear",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", false, "process files already present at startup")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before processing a changed file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       args,
		AllowedExts: constants.AllowedExtensions,
		InitialScan: watchInitialScan,
		Debounce:    watchDebounce,
	}, nil)
	if err != nil {
		return err
	}

	zlog.Infow("watching", "roots", args)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			zlog.Warnw("watch error", "error", err)
		case path, ok := <-paths:
			if !ok {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				zlog.Warnw("file failed", "path", path, "error", err)
				continue
			}
			receipt, err := proc.Process(ctx, data, filepath.Base(path), int64(len(data)))
			if err != nil {
				zlog.Warnw("file failed", "path", path, "error", err)
				continue
			}
			out, err := marshalReceipt(receipt, false)
			if err != nil {
				zlog.Warnw("file failed", "path", path, "error", err)
				continue
			}
			cmd.Println(string(out))
		}
	}
}
