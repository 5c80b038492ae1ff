package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"aset-analyzer/internal/analysis"
	"aset-analyzer/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func fakeResult(p analysis.Percentages) *analysis.Result {
	return &analysis.Result{
		Original:    solid(120, 90, colorutil.White),
		Cropped:     solid(60, 60, colorutil.Red),
		Blended:     solid(60, 60, colorutil.Gray),
		Percentages: p,
	}
}

func pieCenter() (image.Point, int) {
	frame, _ := cell(3)
	radius := min(frame.Dx(), frame.Dy())*2/5 - margin
	return image.Pt((frame.Min.X+frame.Max.X)/2, (frame.Min.Y+frame.Max.Y)/2), radius
}

func TestWedgeSpans(t *testing.T) {
	spans := wedgeSpans([]float64{25, 25, 50, 0})
	require.Len(t, spans, 4)
	assert.InDelta(t, 0, spans[0][0], 1e-12)
	assert.InDelta(t, math.Pi/2, spans[0][1], 1e-12)
	assert.InDelta(t, math.Pi, spans[1][1], 1e-12)
	assert.InDelta(t, 2*math.Pi, spans[2][1], 1e-12)
	assert.Equal(t, spans[3][0], spans[3][1])

	for _, s := range wedgeSpans([]float64{0, 0}) {
		assert.Zero(t, s[1]-s[0])
	}
}

func TestFigureLayout(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	defer r.Close()

	fig, err := r.Figure(fakeResult(analysis.Percentages{analysis.Red: 100}))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, FigureWidth, FigureHeight), fig.Bounds())

	// The cropped panel is pure red and fills the centre of its cell.
	frame, _ := cell(1)
	mid := image.Pt((frame.Min.X+frame.Max.X)/2, (frame.Min.Y+frame.Max.Y)/2)
	assert.Equal(t, colorutil.Red, fig.RGBAAt(mid.X, mid.Y))

	c, radius := pieCenter()
	assert.Equal(t, PieColors[analysis.Red], fig.RGBAAt(c.X+radius/2, c.Y+radius/3))
}

func TestFigureQuarterWedges(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	defer r.Close()

	fig, err := r.Figure(fakeResult(analysis.Percentages{
		analysis.Red: 10, analysis.Green: 10, analysis.Blue: 10, analysis.Others: 10,
	}))
	require.NoError(t, err)

	c, radius := pieCenter()
	d := radius * 9 / 10 / 2
	// Counter-clockwise from 3 o'clock: red upper-right, green upper-left,
	// blue lower-left, others lower-right.
	assert.Equal(t, PieColors[analysis.Red], fig.RGBAAt(c.X+d, c.Y-d/4))
	assert.Equal(t, PieColors[analysis.Green], fig.RGBAAt(c.X-d/4, c.Y-d))
	assert.Equal(t, PieColors[analysis.Blue], fig.RGBAAt(c.X-d, c.Y+d/4))
	assert.Equal(t, PieColors[analysis.Others], fig.RGBAAt(c.X+d/4, c.Y+d))
}

func TestFigureEmptyDistribution(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	defer r.Close()

	fig, err := r.Figure(fakeResult(analysis.Percentages{}))
	require.NoError(t, err)

	c, radius := pieCenter()
	assert.Equal(t, colorutil.White, fig.RGBAAt(c.X, c.Y))
	assert.Equal(t, color.RGBA{A: 255}, fig.RGBAAt(c.X+radius, c.Y))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stone_analysis.png")
	require.NoError(t, WriteFile(path, fakeResult(analysis.Percentages{analysis.Blue: 40, analysis.Others: 60})))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, FigureWidth, cfg.Width)
	assert.Equal(t, FigureHeight, cfg.Height)
}

func TestWriteFileUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	err := WriteFile(path, fakeResult(analysis.Percentages{analysis.Red: 1}))
	require.Error(t, err)
	assert.True(t, IsRenderError(err))
	assert.NoFileExists(t, path)
}

func TestClosedRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.Figure(fakeResult(analysis.Percentages{}))
	assert.ErrorIs(t, err, analysis.ErrRender)
}
