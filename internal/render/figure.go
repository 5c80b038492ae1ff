// Package render draws the four-panel diagnostic figure for an analyzed
// ASET image and writes it to disk as PNG.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"aset-analyzer/internal/analysis"
	asetimage "aset-analyzer/internal/image"
	"aset-analyzer/pkg/colorutil"
)

// Figure size in pixels.
const (
	FigureWidth  = 1000
	FigureHeight = 800
)

const (
	titleBand = 36 // Height reserved above each panel for its title
	margin    = 12
)

// Panel titles, in reading order.
const (
	TitleOriginal = "Original ASET image"
	TitleCropped  = "Diamond (background removed)"
	TitleDetected = "Detected colors (R=red, G=green, B=blue, Others=black+white+grey)"
	TitlePie      = "Color distribution inside diamond"
)

// PieColors are the wedge colors of the distribution chart.
var PieColors = map[analysis.Category]color.RGBA{
	analysis.Red:    colorutil.MustHex("#FF0000"),
	analysis.Green:  colorutil.MustHex("#00FF00"),
	analysis.Blue:   colorutil.MustHex("#0000FF"),
	analysis.Others: colorutil.MustHex("#808080"),
}

// Renderer draws diagnostic figures. It owns font faces and must be closed.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	faces *faces
}

// NewRenderer acquires the fonts used for titles and labels.
func NewRenderer() (*Renderer, error) {
	f, err := loadFaces()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", analysis.ErrRender, err)
	}
	return &Renderer{faces: f}, nil
}

// Close releases the renderer's fonts.
func (r *Renderer) Close() error {
	if r == nil || r.faces == nil {
		return nil
	}
	err := r.faces.Close()
	r.faces = nil
	return err
}

// cell returns the frame of panel i (0-3) in a 2x2 grid, below its title band.
func cell(i int) (frame image.Rectangle, titleCenter image.Point) {
	w, h := FigureWidth/2, FigureHeight/2
	x0, y0 := (i%2)*w, (i/2)*h
	titleCenter = image.Pt(x0+w/2, y0+titleBand/2)
	frame = image.Rect(x0+margin, y0+titleBand, x0+w-margin, y0+h-margin)
	return frame, titleCenter
}

// Figure composes the original image, the crop, the blended overlay and the
// distribution pie chart into one image.
func (r *Renderer) Figure(res *analysis.Result) (*image.RGBA, error) {
	if r == nil || r.faces == nil {
		return nil, fmt.Errorf("%w: renderer is closed", analysis.ErrRender)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: no result", analysis.ErrRender)
	}

	comp := asetimage.NewComposite(FigureWidth, FigureHeight)
	panels := []image.Image{res.Original, res.Cropped, res.Blended}
	for i, img := range panels {
		if img == nil {
			continue
		}
		frame, _ := cell(i)
		comp.AddPanel(img, frame)
	}
	fig := comp.Render()

	frame, _ := cell(3)
	radius := min(frame.Dx(), frame.Dy())*2/5 - margin
	wedges := make([]Wedge, len(analysis.Categories))
	for i, c := range analysis.Categories {
		wedges[i] = Wedge{Label: c.String(), Value: res.Percentages[c], Color: PieColors[c]}
	}
	center := image.Pt((frame.Min.X+frame.Max.X)/2, (frame.Min.Y+frame.Max.Y)/2)
	drawPie(fig, center, radius, wedges, r.faces.label)

	for i, title := range []string{TitleOriginal, TitleCropped, TitleDetected, TitlePie} {
		_, at := cell(i)
		face := r.faces.title
		if textWidth(face, title) > FigureWidth/2-2*margin {
			face = r.faces.label
		}
		drawCentered(fig, face, title, at.X, at.Y, color.Black)
	}

	return fig, nil
}

// WriteFile renders the figure and writes it to path as PNG. A partially
// written file is removed.
func (r *Renderer) WriteFile(path string, res *analysis.Result) (err error) {
	fig, err := r.Figure(res)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", analysis.ErrRender, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: %w", analysis.ErrRender, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := png.Encode(f, fig); err != nil {
		return fmt.Errorf("%w: encoding %s: %w", analysis.ErrRender, path, err)
	}
	return nil
}

// WriteFile renders res to path with a temporary Renderer.
func WriteFile(path string, res *analysis.Result) error {
	r, err := NewRenderer()
	if err != nil {
		return err
	}
	defer r.Close()
	return r.WriteFile(path, res)
}

// IsRenderError reports whether err came from figure rendering.
func IsRenderError(err error) bool {
	return errors.Is(err, analysis.ErrRender)
}
