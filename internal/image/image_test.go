package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestBGRChannelOrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 200, G: 10, B: 30, A: 255})
	img.SetRGBA(2, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	mat, err := ToBGRMat(img)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 2, mat.Rows())
	assert.Equal(t, 3, mat.Cols())
	assert.Equal(t, 3, mat.Channels())
	v := mat.GetVecbAt(0, 0)
	assert.Equal(t, []uint8{30, 10, 200}, []uint8{v[0], v[1], v[2]})

	back, err := ToRGBA(mat)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, back.Pix)
}

func TestToBGRMatOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.SetRGBA(6, 5, color.RGBA{R: 9, A: 255})

	mat, err := ToBGRMat(img)
	require.NoError(t, err)
	defer mat.Close()
	assert.Equal(t, uint8(9), mat.GetVecbAt(0, 1)[2])
}

func TestToBGRMatDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})

	mat, err := ToBGRMat(img)
	require.NoError(t, err)
	defer mat.Close()

	v := mat.GetVecbAt(0, 0)
	assert.Equal(t, []uint8{50, 100, 200}, []uint8{v[0], v[1], v[2]})
	v = mat.GetVecbAt(0, 1)
	assert.Equal(t, []uint8{30, 20, 10}, []uint8{v[0], v[1], v[2]})
}

func TestToBGRMatEmpty(t *testing.T) {
	mat, err := ToBGRMat(image.NewRGBA(image.Rectangle{}))
	defer mat.Close()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestToRGBAGray(t *testing.T) {
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), 2, 2, gocv.MatTypeCV8U)
	defer mask.Close()

	out, err := ToRGBA(mask)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(1, 1))
}

func TestToRGBARegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(2, 3, color.RGBA{G: 77, A: 255})
	mat, err := ToBGRMat(img)
	require.NoError(t, err)
	defer mat.Close()

	region := mat.Region(image.Rect(1, 2, 4, 4))
	defer region.Close()

	out, err := ToRGBA(region)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	assert.Equal(t, uint8(77), out.RGBAAt(1, 1).G)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stone.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 7, 3))))
	require.NoError(t, f.Close())

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", src.Format)
	assert.Equal(t, 7, src.Width())
	assert.Equal(t, 3, src.Height())

	bogus := filepath.Join(dir, "bogus.jpg")
	require.NoError(t, os.WriteFile(bogus, []byte("garbage"), 0o644))
	_, err = Load(bogus)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("a/B.JPG", DefaultExtensions()))
	assert.True(t, HasExtension("x.tif", SupportedFormats()))
	assert.False(t, HasExtension("x.tif", DefaultExtensions()))
	assert.False(t, HasExtension("noext", DefaultExtensions()))
}

func TestFitRect(t *testing.T) {
	frame := image.Rect(10, 10, 110, 60)
	assert.Equal(t, image.Rect(35, 10, 85, 60), FitRect(image.Rect(0, 0, 20, 20), frame))
	assert.Equal(t, image.Rect(10, 30, 110, 40), FitRect(image.Rect(0, 0, 100, 10), frame))
	assert.True(t, FitRect(image.Rectangle{}, frame).Empty())
}

func TestCompositeRender(t *testing.T) {
	red := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(red.Pix); i += 4 {
		red.Pix[i], red.Pix[i+3] = 255, 255
	}
	c := NewComposite(40, 20)
	c.AddPanel(red, image.Rect(0, 0, 20, 20))
	c.AddPanel(nil, image.Rect(20, 0, 40, 20))

	out := c.Render()
	assert.Equal(t, image.Rect(0, 0, 40, 20), out.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(30, 10))
}
