package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/ingest"
)

var (
	batchExts       []string
	batchSkipHidden bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Process every receipt image under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringSliceVar(&batchExts, "ext", constants.ExtensionList(), "file extensions to include")
	batchCmd.Flags().BoolVar(&batchSkipHidden, "skip-hidden", true, "skip hidden files and directories")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	root := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exts := make(map[string]struct{}, len(batchExts))
	for _, e := range batchExts {
		exts[constants.NormalizeExt(e)] = struct{}{}
	}

	results, stats, err := ingest.ScanDirectory(ctx, proc, root, exts, batchSkipHidden, nil)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != "" {
			zlog.Warnw("file failed", "path", r.Path, "error", r.Err)
			continue
		}
		out, err := marshalReceipt(r.Receipt, false)
		if err != nil {
			zlog.Warnw("file failed", "path", r.Path, "error", err)
			continue
		}
		cmd.Println(string(out))
	}

	zlog.Infow("batch complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
	)
	return nil
}
