package analysis

import (
	"fmt"
	"image"

	asetimage "aset-analyzer/internal/image"

	"gocv.io/x/gocv"
)

// Overlay blending weights.
const (
	originalWeight = 0.6
	overlayWeight  = 0.4
)

// Counts holds the pixel counts inside the foreground mask.
type Counts struct {
	DiamondArea int              // Foreground pixels, the percentage denominator
	Categories  map[Category]int // Others counts the union of the shade masks
	Shades      map[Shade]int    // Raw per-shade counts; may overlap
}

// Percentages maps each category to its share of the diamond area, 0-100.
type Percentages map[Category]float64

// Values returns the percentages in Categories order.
func (p Percentages) Values() []float64 {
	out := make([]float64, len(Categories))
	for i, c := range Categories {
		out[i] = p[c]
	}
	return out
}

// ComputePercentages divides each category count by the diamond area.
func ComputePercentages(counts Counts) (Percentages, error) {
	if counts.DiamondArea <= 0 {
		return nil, ErrSegmentation
	}
	area := float64(counts.DiamondArea)
	p := make(Percentages, len(Categories))
	for _, c := range Categories {
		p[c] = 100 * float64(counts.Categories[c]) / area
	}
	return p, nil
}

// Classification is the outcome of classifying a cropped diamond.
type Classification struct {
	Counts      Counts
	Percentages Percentages
	Blended     *image.RGBA // Overlay blended onto the crop, display order
}

// Classify assigns the pixels of a cropped BGR image to color buckets,
// counts them inside foreground, and blends the category overlay onto the
// crop. foreground must be a single-channel mask the same size as bgr.
func Classify(bgr, foreground gocv.Mat) (*Classification, error) {
	if bgr.Empty() {
		return nil, ErrInput
	}
	if foreground.Rows() != bgr.Rows() || foreground.Cols() != bgr.Cols() {
		return nil, fmt.Errorf("foreground %dx%d does not match image %dx%d",
			foreground.Cols(), foreground.Rows(), bgr.Cols(), bgr.Rows())
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	masks := make([]gocv.Mat, len(OverlayOrder))
	for i, class := range OverlayOrder {
		masks[i] = class.Mask(hsv)
	}
	defer func() {
		for i := range masks {
			masks[i].Close()
		}
	}()

	counts := measure(masks, foreground)
	pct, err := ComputePercentages(counts)
	if err != nil {
		return nil, err
	}

	blended, err := blendOverlay(bgr, masks)
	if err != nil {
		return nil, err
	}

	return &Classification{Counts: counts, Percentages: pct, Blended: blended}, nil
}

// measure counts masks (in OverlayOrder) inside foreground. Shades are merged
// by mask union after intersection so a pixel is never counted twice.
func measure(masks []gocv.Mat, foreground gocv.Mat) Counts {
	counts := Counts{
		DiamondArea: gocv.CountNonZero(foreground),
		Categories:  make(map[Category]int, len(Categories)),
		Shades:      make(map[Shade]int, len(Shades)),
	}

	inside := gocv.NewMat()
	defer inside.Close()

	for i, c := range []Category{Red, Green, Blue} {
		gocv.BitwiseAnd(masks[i], foreground, &inside)
		counts.Categories[c] = gocv.CountNonZero(inside)
	}

	others := zeroMask(foreground.Rows(), foreground.Cols())
	defer others.Close()

	for i, s := range Shades {
		gocv.BitwiseAnd(masks[3+i], foreground, &inside)
		counts.Shades[s] = gocv.CountNonZero(inside)
		gocv.BitwiseOr(others, inside, &others)
	}
	counts.Categories[Others] = gocv.CountNonZero(others)

	return counts
}

// blendOverlay paints each class in OverlayOrder over a black canvas,
// ignoring the foreground, and mixes it with the crop.
func blendOverlay(bgr gocv.Mat, masks []gocv.Mat) (*image.RGBA, error) {
	rows, cols := bgr.Rows(), bgr.Cols()
	overlay := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC3)
	defer overlay.Close()

	for i, class := range OverlayOrder {
		c := class.Overlay
		solid := gocv.NewMatWithSizeFromScalar(
			gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0), rows, cols, gocv.MatTypeCV8UC3)
		solid.CopyToWithMask(&overlay, masks[i])
		solid.Close()
	}

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(bgr, originalWeight, overlay, overlayWeight, 0, &blended)

	return asetimage.ToRGBA(blended)
}
