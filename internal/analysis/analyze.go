package analysis

import (
	"fmt"
	"image"

	asetimage "aset-analyzer/internal/image"
	"aset-analyzer/pkg/geometry"

	"gocv.io/x/gocv"
)

// Result holds everything derived from one ASET photograph.
type Result struct {
	Original    image.Image      // Uncropped input, display order
	Cropped     *image.RGBA      // Bounding-box crop, display order
	Mask        gocv.Mat         // Foreground mask cropped to Box
	Blended     *image.RGBA      // Category overlay blended onto Cropped
	Percentages Percentages      // Share of the diamond per category
	Counts      Counts           // Pixel counts behind Percentages
	Threshold   float64          // Otsu threshold on the grayscale image
	Box         geometry.RectInt // Foreground bounding box in Original
}

// Close releases the Mat held by the result.
func (r *Result) Close() {
	if r == nil {
		return
	}
	r.Mask.Close()
}

// Analyze runs the full pipeline on a decoded image: foreground extraction,
// crop, HSV classification, masked counts and percentages.
func Analyze(img image.Image) (*Result, error) {
	bgr, err := asetimage.ToBGRMat(img)
	if err != nil {
		bgr.Close()
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}
	defer bgr.Close()

	res, err := AnalyzeMat(bgr)
	if err != nil {
		return nil, err
	}
	res.Original = img
	return res, nil
}

// AnalyzeFile loads path and analyzes it.
func AnalyzeFile(path string) (*Result, error) {
	src, err := asetimage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}
	return Analyze(src.Image)
}

// AnalyzeMat is Analyze for an image already held as a BGR Mat.
// Original is left nil on the returned result.
func AnalyzeMat(bgr gocv.Mat) (*Result, error) {
	if bgr.Empty() || bgr.Rows() < 1 || bgr.Cols() < 1 {
		return nil, ErrInput
	}
	if bgr.Channels() != 3 {
		return nil, fmt.Errorf("%w: expected 3 channels, got %d", ErrInput, bgr.Channels())
	}

	fg, thresh := ForegroundMask(bgr)
	defer fg.Close()

	box, err := BoundingBox(fg)
	if err != nil {
		return nil, err
	}

	cropped := Crop(bgr, box)
	defer cropped.Close()
	mask := Crop(fg, box)

	cls, err := Classify(cropped, mask)
	if err != nil {
		mask.Close()
		return nil, err
	}

	display, err := asetimage.ToRGBA(cropped)
	if err != nil {
		mask.Close()
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	return &Result{
		Cropped:     display,
		Mask:        mask,
		Blended:     cls.Blended,
		Percentages: cls.Percentages,
		Counts:      cls.Counts,
		Threshold:   thresh,
		Box:         box,
	}, nil
}
