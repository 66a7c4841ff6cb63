package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kharcha-app/receipt-engine/internal/parser"
)

var scanPretty bool

var scanCmd = &cobra.Command{
	Use:   "scan [image]",
	Short: "Process a single receipt image",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanPretty, "pretty", true, "indent JSON output")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	receipt, err := proc.Process(ctx, data, filepath.Base(path), int64(len(data)))
	if err != nil {
		return err
	}

	out, err := marshalReceipt(receipt, scanPretty)
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

func marshalReceipt(v any, pretty bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal receipt: %w", err)
	}
	if err := parser.ValidateReceiptJSON(out); err != nil {
		return nil, fmt.Errorf("receipt output failed validation: %w", err)
	}
	return out, nil
}
