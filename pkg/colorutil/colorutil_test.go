package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	c, err := Hex("#808080")
	require.NoError(t, err)
	assert.Equal(t, Gray, c)
	assert.Equal(t, Red, MustHex("#FF0000"))
	assert.Equal(t, color.RGBA{R: 0x12, G: 0xab, B: 0xef, A: 255}, MustHex("#12abef"))

	_, err = Hex("red")
	assert.Error(t, err)
	assert.Panics(t, func() { MustHex("#12") })
}

func TestRGBToHSV(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"red", 255, 0, 0, 0, 255, 255},
		{"green", 0, 255, 0, 60, 255, 255},
		{"blue", 0, 0, 255, 120, 255, 255},
		{"white", 255, 255, 255, 0, 0, 255},
		{"black", 0, 0, 0, 0, 0, 0},
		{"dark magenta", 128, 0, 128, 150, 255, 128},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tc.r, tc.g, tc.b)
			assert.InDelta(t, tc.h, h, 1e-9)
			assert.InDelta(t, tc.s, s, 1e-9)
			assert.InDelta(t, tc.v, v, 1e-9)
		})
	}
}
