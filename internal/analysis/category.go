package analysis

import (
	"image/color"

	"aset-analyzer/pkg/colorutil"

	"gocv.io/x/gocv"
)

// Category is a reported color bucket.
type Category int

const (
	Red Category = iota
	Green
	Blue
	Others
)

// Categories lists every reported bucket in report column order.
var Categories = []Category{Red, Green, Blue, Others}

func (c Category) String() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Others:
		return "Others"
	default:
		return "Unknown"
	}
}

// Shade is one of the achromatic classes merged into Others.
type Shade int

const (
	Black Shade = iota
	Gray
	White
)

// Shades lists the achromatic classes.
var Shades = []Shade{Black, Gray, White}

func (s Shade) String() string {
	switch s {
	case Black:
		return "Black"
	case Gray:
		return "Gray"
	case White:
		return "White"
	default:
		return "Unknown"
	}
}

// ColorRange is an inclusive box in OpenCV 8-bit HSV space
// (H 0-179, S 0-255, V 0-255).
type ColorRange struct {
	HueMin, HueMax float64
	SatMin, SatMax float64
	ValMin, ValMax float64
}

// Contains reports whether an HSV triple lies inside the range.
func (r ColorRange) Contains(h, s, v float64) bool {
	return h >= r.HueMin && h <= r.HueMax &&
		s >= r.SatMin && s <= r.SatMax &&
		v >= r.ValMin && v <= r.ValMax
}

func (r ColorRange) lower() gocv.Scalar {
	return gocv.NewScalar(r.HueMin, r.SatMin, r.ValMin, 0)
}

func (r ColorRange) upper() gocv.Scalar {
	return gocv.NewScalar(r.HueMax, r.SatMax, r.ValMax, 0)
}

// ColorClass is a named union of HSV ranges.
type ColorClass struct {
	Name    string
	Ranges  []ColorRange
	Overlay color.RGBA
}

// Contains reports whether an HSV triple lies in any of the class ranges.
func (c ColorClass) Contains(h, s, v float64) bool {
	for _, r := range c.Ranges {
		if r.Contains(h, s, v) {
			return true
		}
	}
	return false
}

// Classification ranges. Hue wraps at 180, so red is split in two.
var (
	RedClass = ColorClass{
		Name: "red",
		Ranges: []ColorRange{
			{HueMin: 0, HueMax: 10, SatMin: 90, SatMax: 255, ValMin: 50, ValMax: 255},
			{HueMin: 170, HueMax: 179, SatMin: 90, SatMax: 255, ValMin: 50, ValMax: 255},
		},
		Overlay: colorutil.Red,
	}
	GreenClass = ColorClass{
		Name:    "green",
		Ranges:  []ColorRange{{HueMin: 35, HueMax: 90, SatMin: 60, SatMax: 255, ValMin: 40, ValMax: 255}},
		Overlay: colorutil.Green,
	}
	BlueClass = ColorClass{
		Name:    "blue",
		Ranges:  []ColorRange{{HueMin: 90, HueMax: 140, SatMin: 60, SatMax: 255, ValMin: 40, ValMax: 255}},
		Overlay: colorutil.Blue,
	}
	BlackClass = ColorClass{
		Name:    "black",
		Ranges:  []ColorRange{{HueMin: 0, HueMax: 180, SatMin: 0, SatMax: 255, ValMin: 0, ValMax: 50}},
		Overlay: colorutil.Gray,
	}
	GrayClass = ColorClass{
		Name:    "gray",
		Ranges:  []ColorRange{{HueMin: 0, HueMax: 180, SatMin: 0, SatMax: 50, ValMin: 80, ValMax: 200}},
		Overlay: colorutil.Gray,
	}
	WhiteClass = ColorClass{
		Name:    "white",
		Ranges:  []ColorRange{{HueMin: 0, HueMax: 180, SatMin: 0, SatMax: 40, ValMin: 200, ValMax: 255}},
		Overlay: colorutil.Gray,
	}
)

// OverlayOrder is the paint order of the visualization overlay. A pixel
// matching several classes takes the overlay color of the last one.
var OverlayOrder = []ColorClass{RedClass, GreenClass, BlueClass, BlackClass, GrayClass, WhiteClass}

// ClassFor returns the ranges that define a reported category's chromatic
// class. Others has no class of its own; see ShadeClass.
func ClassFor(c Category) (ColorClass, bool) {
	switch c {
	case Red:
		return RedClass, true
	case Green:
		return GreenClass, true
	case Blue:
		return BlueClass, true
	default:
		return ColorClass{}, false
	}
}

// ShadeClass returns the ranges for an achromatic class.
func ShadeClass(s Shade) ColorClass {
	switch s {
	case Black:
		return BlackClass
	case Gray:
		return GrayClass
	default:
		return WhiteClass
	}
}

// Mask builds the binary membership mask of c over an HSV Mat.
// The caller owns the returned Mat.
func (c ColorClass) Mask(hsv gocv.Mat) gocv.Mat {
	mask := zeroMask(hsv.Rows(), hsv.Cols())
	part := gocv.NewMat()
	defer part.Close()

	for _, r := range c.Ranges {
		gocv.InRangeWithScalar(hsv, r.lower(), r.upper(), &part)
		gocv.BitwiseOr(mask, part, &mask)
	}
	return mask
}
