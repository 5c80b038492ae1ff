package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"aset-analyzer/internal/batch"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every image in a folder and write figures plus a spreadsheet",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().String("src", "", "Source folder of ASET images")
	batchCmd.Flags().String("dest", "", "Destination folder for figures and the report")
	batchCmd.Flags().Int("workers", 0, "Images analyzed concurrently (default from config)")
	batchCmd.Flags().Duration("timeout", 0, "Per-image time limit, e.g. 30s (default from config)")
	batchCmd.Flags().Bool("no-render", false, "Skip the diagnostic figures")
	batchCmd.MarkFlagRequired("src")
	batchCmd.MarkFlagRequired("dest")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, _ := cmd.Flags().GetString("src")
	dest, _ := cmd.Flags().GetString("dest")
	noRender, _ := cmd.Flags().GetBool("no-render")
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cfg, err = cfg.Normalize(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := batch.Run(ctx, batch.Options{
		Src:        src,
		Dest:       dest,
		Extensions: cfg.Extensions,
		Workers:    cfg.Workers,
		Timeout:    cfg.Timeout,
		Render:     cfg.Render && !noRender,
		ReportName: cfg.ReportName,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d images: %d analyzed, %d problems\n", len(sum.Files), len(sum.Rows), len(sum.Failures))
	for _, f := range sum.Failures {
		fmt.Printf("  %s: %v\n", f.File, f.Err)
	}
	if sum.ReportPath != "" {
		fmt.Printf("Report: %s\n", sum.ReportPath)
	}
	return nil
}
