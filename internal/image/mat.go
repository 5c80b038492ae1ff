package image

import (
	"fmt"
	"image"
	"image/color"
	"runtime"

	"gocv.io/x/gocv"
)

// ToBGRMat converts a Go image.Image to a 3-channel gocv.Mat in BGR order.
func ToBGRMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), ErrEmpty
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 1 || h < 1 {
		return gocv.NewMat(), ErrEmpty
	}

	buf := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Alpha is dropped, not premultiplied into the color.
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 3
			buf[i+0] = c.B
			buf[i+1] = c.G
			buf[i+2] = c.R
		}
	}

	// NewMatFromBytes borrows buf; clone so the Mat owns its pixels.
	view, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC3, buf)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to build mat: %w", err)
	}
	mat := view.Clone()
	view.Close()
	runtime.KeepAlive(buf)

	return mat, nil
}

// ToRGBA converts a BGR (3-channel) or grayscale (1-channel) 8-bit Mat into
// an *image.RGBA in display order.
func ToRGBA(mat gocv.Mat) (*image.RGBA, error) {
	if mat.Empty() {
		return nil, ErrEmpty
	}
	w, h, ch := mat.Cols(), mat.Rows(), mat.Channels()
	if ch != 1 && ch != 3 {
		return nil, fmt.Errorf("unsupported channel count %d", ch)
	}

	src := mat
	if !mat.IsContinuous() {
		src = mat.Clone()
		defer src.Close()
	}
	data := src.ToBytes()

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := out.PixOffset(x, y)
			if ch == 1 {
				v := data[y*w+x]
				out.Pix[o+0], out.Pix[o+1], out.Pix[o+2] = v, v, v
			} else {
				i := (y*w + x) * 3
				out.Pix[o+0] = data[i+2]
				out.Pix[o+1] = data[i+1]
				out.Pix[o+2] = data[i+0]
			}
			out.Pix[o+3] = 255
		}
	}
	return out, nil
}
