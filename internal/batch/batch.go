package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"aset-analyzer/internal/analysis"
	"aset-analyzer/internal/render"
	"aset-analyzer/internal/report"
)

// partSuffix marks a figure that is still being written.
const partSuffix = ".part"

// Options configures a batch run.
type Options struct {
	Src        string        // Folder scanned for images
	Dest       string        // Folder receiving figures and the report; created if missing
	Extensions []string      // Extensions picked up by Scan
	Workers    int           // Concurrent images
	Timeout    time.Duration // Per-image limit; 0 disables it
	Render     bool          // Write a figure per image
	ReportName string        // Spreadsheet file name inside Dest
}

// Summary is the outcome of a batch run.
type Summary struct {
	Files      []string         // Scanned files, in processing order
	Rows       []report.Row     // One per successfully analyzed image, in scan order
	Failures   []report.Failure // Images without a row, and figures that failed
	Figures    []string         // Paths of written figures
	ReportPath string           // Spreadsheet path, empty when no row was produced
}

// outcome is the per-image result collected by the workers.
type outcome struct {
	pct       analysis.Percentages
	figure    string
	err       error // analysis failed; no row
	renderErr error // figure failed; row kept
}

// Run analyzes every matching file in opts.Src. A failing image is recorded
// in the summary and never stops the batch.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	files, err := Scan(opts.Src, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.Dest, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination folder: %w", err)
	}

	log.Printf("Batch: %d images in %s (workers=%d, timeout=%s)", len(files), opts.Src, opts.Workers, opts.Timeout)

	outcomes := make([]*outcome, len(files))
	forEach(ctx, opts.Workers, len(files), func(ctx context.Context, i int) {
		outcomes[i] = process(ctx, opts, files[i])
	})

	sum := &Summary{Files: files}
	for i, file := range files {
		o := outcomes[i]
		if o == nil {
			sum.Failures = append(sum.Failures, report.Failure{File: file, Err: fmt.Errorf("not processed: %w", ctx.Err())})
			continue
		}
		if o.err != nil {
			log.Printf("Batch: %s failed: %v", file, o.err)
			sum.Failures = append(sum.Failures, report.Failure{File: file, Err: o.err})
			continue
		}
		sum.Rows = append(sum.Rows, report.Row{File: file, Percentages: o.pct})
		if o.renderErr != nil {
			log.Printf("Batch: %s figure failed: %v", file, o.renderErr)
			sum.Failures = append(sum.Failures, report.Failure{File: file, Err: o.renderErr})
		} else if o.figure != "" {
			sum.Figures = append(sum.Figures, o.figure)
		}
	}

	if len(sum.Rows) > 0 {
		name := opts.ReportName
		if name == "" {
			name = report.DefaultName
		}
		path := filepath.Join(opts.Dest, name)
		if err := report.WriteXLSX(path, sum.Rows, sum.Failures); err != nil {
			return sum, err
		}
		sum.ReportPath = path
		log.Printf("Batch: report written to %s", path)
	}

	return sum, ctx.Err()
}

// process analyzes one file, bounded by opts.Timeout. Analysis cannot be
// interrupted, so the worker waits for it; an image that finishes after the
// deadline is recorded as failed and its figure is removed.
func process(ctx context.Context, opts Options, file string) *outcome {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	o := analyzeOne(ctx, opts, file)

	err := ctx.Err()
	if err == nil {
		return o
	}
	if o.figure != "" {
		os.Remove(o.figure)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &outcome{err: fmt.Errorf("%w after %s", analysis.ErrTimeout, opts.Timeout)}
	}
	return &outcome{err: err}
}

func analyzeOne(ctx context.Context, opts Options, file string) *outcome {
	start := time.Now()
	res, err := analysis.AnalyzeFile(filepath.Join(opts.Src, file))
	if err != nil {
		return &outcome{err: err}
	}
	defer res.Close()

	if err := ctx.Err(); err != nil {
		return &outcome{err: err}
	}

	o := &outcome{pct: res.Percentages}
	if opts.Render {
		path, err := writeFigure(ctx, filepath.Join(opts.Dest, OutputName(file)), res)
		if err != nil {
			o.renderErr = err
		} else {
			o.figure = path
		}
	}

	p := res.Percentages
	log.Printf("Batch: %s red=%.2f%% green=%.2f%% blue=%.2f%% others=%.2f%% (%s)",
		file, p[analysis.Red], p[analysis.Green], p[analysis.Blue], p[analysis.Others],
		time.Since(start).Round(time.Millisecond))
	return o
}

// writeFigure renders to a partial file beside path and renames it into
// place only while ctx is live, so dest never holds a truncated figure.
// It returns "" without error when ctx expired before the rename.
func writeFigure(ctx context.Context, path string, res *analysis.Result) (string, error) {
	part := path + partSuffix
	if err := render.WriteFile(part, res); err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		os.Remove(part)
		return "", nil
	}
	if err := os.Rename(part, path); err != nil {
		os.Remove(part)
		return "", fmt.Errorf("%w: %w", analysis.ErrRender, err)
	}
	return path, nil
}
