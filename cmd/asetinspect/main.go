// Command asetinspect runs the ASET analysis on one image and prints every
// intermediate number: threshold, bounding box, raw counts and percentages.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"aset-analyzer/internal/analysis"
	asetimage "aset-analyzer/internal/image"
	"aset-analyzer/internal/render"
)

func main() {
	imagePath := flag.String("image", "", "Path to ASET image (JPEG, PNG, or TIFF)")
	figure := flag.String("figure", "", "Optional path for the diagnostic figure (PNG)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: asetinspect -image <path> [-figure out.png]")
		os.Exit(1)
	}

	if err := run(os.Stdout, *imagePath, *figure); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run prints the analysis of imagePath to w and optionally writes the figure.
func run(w io.Writer, imagePath, figure string) error {
	src, err := asetimage.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	fmt.Fprintf(w, "Loaded %s image: %dx%d pixels\n", src.Format, src.Width(), src.Height())

	fmt.Fprintf(w, "\nClassification ranges (OpenCV HSV):\n")
	for _, class := range analysis.OverlayOrder {
		for _, r := range class.Ranges {
			fmt.Fprintf(w, "  %-6s H(%3.0f-%3.0f) S(%3.0f-%3.0f) V(%3.0f-%3.0f)\n",
				class.Name, r.HueMin, r.HueMax, r.SatMin, r.SatMax, r.ValMin, r.ValMax)
		}
	}

	res, err := analysis.Analyze(src.Image)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	defer res.Close()

	fmt.Fprintf(w, "\nOtsu threshold: %.0f\n", res.Threshold)
	fmt.Fprintf(w, "Bounding box:   x=%d y=%d w=%d h=%d\n", res.Box.X, res.Box.Y, res.Box.Width, res.Box.Height)
	fmt.Fprintf(w, "Diamond area:   %d of %d px (%.1f%% of crop)\n",
		res.Counts.DiamondArea, res.Box.Area(), 100*float64(res.Counts.DiamondArea)/float64(res.Box.Area()))

	fmt.Fprintf(w, "\n%-10s %10s %10s\n", "Category", "Pixels", "Percent")
	for _, c := range analysis.Categories {
		fmt.Fprintf(w, "%-10s %10d %9.2f%%\n", c, res.Counts.Categories[c], res.Percentages[c])
	}
	fmt.Fprintf(w, "\n%-10s %10s\n", "Shade", "Pixels")
	for _, s := range analysis.Shades {
		fmt.Fprintf(w, "%-10s %10d\n", s, res.Counts.Shades[s])
	}

	if figure != "" {
		if err := render.WriteFile(figure, res); err != nil {
			return fmt.Errorf("figure failed: %w", err)
		}
		fmt.Fprintf(w, "\nFigure written to %s\n", figure)
	}
	return nil
}
