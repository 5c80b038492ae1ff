// Package main provides the entry point for the ASET analyzer.
package main

import (
	"fmt"
	"log"
	"os"

	"aset-analyzer/internal/config"
	"aset-analyzer/internal/version"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "aset-analyzer",
	Short:   "Measure red, green, blue and achromatic areas in ASET diamond images",
	Version: version.String(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
}

// loadConfig reads the config file named by --config.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
