package main

import (
	"fmt"

	"aset-analyzer/internal/analysis"
	"aset-analyzer/internal/render"
	"aset-analyzer/internal/report"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one ASET image and print its color percentages",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("input", "i", "", "Input ASET image (JPEG, PNG or TIFF)")
	analyzeCmd.Flags().StringP("output", "o", "", "Write the diagnostic figure (PNG) to this path")
	analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	res, err := analysis.AnalyzeFile(inputPath)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", inputPath, err)
	}
	defer res.Close()

	fmt.Printf("File:        %s\n", inputPath)
	fmt.Printf("Diamond:     %dx%d at (%d,%d), %d px\n",
		res.Box.Width, res.Box.Height, res.Box.X, res.Box.Y, res.Counts.DiamondArea)
	for _, c := range analysis.Categories {
		fmt.Printf("%-12s %6.2f %%\n", c.String()+":", report.Round2(res.Percentages[c]))
	}

	if outputPath != "" {
		if err := render.WriteFile(outputPath, res); err != nil {
			return err
		}
		fmt.Printf("Figure:      %s\n", outputPath)
	}
	return nil
}
