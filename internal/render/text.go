package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font sizes in points at 72 dpi, i.e. pixels.
const (
	titleSize = 15
	labelSize = 12
)

// faces holds the font faces used by a Renderer.
type faces struct {
	title font.Face
	label font.Face
}

func loadFaces() (*faces, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	title, err := opentype.NewFace(f, &opentype.FaceOptions{Size: titleSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("failed to create title face: %w", err)
	}
	label, err := opentype.NewFace(f, &opentype.FaceOptions{Size: labelSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		title.Close()
		return nil, fmt.Errorf("failed to create label face: %w", err)
	}
	return &faces{title: title, label: label}, nil
}

func (f *faces) Close() error {
	err := f.title.Close()
	if lerr := f.label.Close(); err == nil {
		err = lerr
	}
	return err
}

// textWidth returns the advance width of s in pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawCentered draws s with its centre at (cx, cy).
func drawCentered(dst draw.Image, face font.Face, s string, cx, cy int, c color.Color) {
	m := face.Metrics()
	baseline := cy + (m.Ascent.Ceil()-m.Descent.Ceil())/2
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(cx-textWidth(face, s)/2, baseline),
	}
	d.DrawString(s)
}
