// Package analysis isolates the diamond in an ASET photograph and measures
// how much of it falls into each color bucket.
package analysis

import (
	"fmt"
	"image"

	"aset-analyzer/pkg/geometry"

	"gocv.io/x/gocv"
)

// closeKernelSize is the structuring element used to close the foreground mask.
const closeKernelSize = 5

// ForegroundMask thresholds a BGR image with Otsu's method, inverted so the
// darker class is foreground, and closes small gaps with a 5x5 rectangle.
// It returns the mask and the chosen threshold. The caller owns the mask.
func ForegroundMask(bgr gocv.Mat) (gocv.Mat, float64) {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)

	binary := gocv.NewMat()
	defer binary.Close()
	thresh := gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinaryInv+gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{closeKernelSize, closeKernelSize})
	defer kernel.Close()

	closed := gocv.NewMat()
	gocv.MorphologyEx(binary, &closed, gocv.MorphClose, kernel)

	return closed, float64(thresh)
}

// BoundingBox returns the smallest rectangle containing every non-zero cell
// of a single-channel mask. A mask without such cells yields ErrSegmentation.
func BoundingBox(mask gocv.Mat) (geometry.RectInt, error) {
	if mask.Empty() {
		return geometry.RectInt{}, ErrSegmentation
	}
	if mask.Channels() != 1 {
		return geometry.RectInt{}, fmt.Errorf("mask has %d channels, want 1", mask.Channels())
	}

	src := mask
	if !mask.IsContinuous() {
		src = mask.Clone()
		defer src.Close()
	}
	data := src.ToBytes()
	w, h := src.Cols(), src.Rows()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := data[y*w : (y+1)*w]
		for x, v := range row {
			if v == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		return geometry.RectInt{}, ErrSegmentation
	}

	return geometry.RectInt{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}, nil
}

// Crop copies the box out of mat. The caller owns the returned Mat.
func Crop(mat gocv.Mat, box geometry.RectInt) gocv.Mat {
	region := mat.Region(box.Rectangle())
	defer region.Close()
	return region.Clone()
}

func zeroMask(rows, cols int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8U)
}
