package image

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Composite lays out several images in fixed frames on one canvas.
type Composite struct {
	Width     int
	Height    int
	Panels    []*Panel
	BackColor color.Color
}

// Panel is an image placed, scaled to fit, inside Frame.
type Panel struct {
	Image image.Image
	Frame image.Rectangle
}

// NewComposite creates a new Composite with the specified dimensions.
func NewComposite(width, height int) *Composite {
	return &Composite{
		Width:     width,
		Height:    height,
		BackColor: color.White,
	}
}

// AddPanel adds an image to be drawn inside frame.
func (c *Composite) AddPanel(img image.Image, frame image.Rectangle) {
	c.Panels = append(c.Panels, &Panel{Image: img, Frame: frame})
}

// Render produces the final composited image.
func (c *Composite) Render() *image.RGBA {
	result := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(result, result.Bounds(), &image.Uniform{c.BackColor}, image.Point{}, draw.Src)

	for _, p := range c.Panels {
		if p.Image == nil || p.Frame.Empty() {
			continue
		}
		xdraw.ApproxBiLinear.Scale(result, FitRect(p.Image.Bounds(), p.Frame), p.Image, p.Image.Bounds(), draw.Over, nil)
	}

	return result
}

// FitRect returns the largest rectangle with src's aspect ratio centred in frame.
func FitRect(src, frame image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	fw, fh := frame.Dx(), frame.Dy()
	if sw <= 0 || sh <= 0 || fw <= 0 || fh <= 0 {
		return image.Rectangle{}
	}

	w, h := fw, sh*fw/sw
	if h > fh {
		w, h = sw*fh/sh, fh
	}
	w, h = max(w, 1), max(h, 1)

	x := frame.Min.X + (fw-w)/2
	y := frame.Min.Y + (fh-h)/2
	return image.Rect(x, y, x+w, y+h)
}
