package render

import (
	"fmt"
	"image/color"
)

// Wing colors per variant: royal blue, a darker blue and medium blue.
var wingColors = [...]color.RGBA{
	{R: 0x41, G: 0x69, B: 0xe1, A: 0xff},
	{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff},
	{R: 0x00, G: 0x00, B: 0xcd, A: 0xff},
}

var (
	accentWhite  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	accentYellow = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	// BodyColor is shared by every butterfly.
	BodyColor = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
)

// WingColor returns the wing color of a variant.
func WingColor(variant int) color.RGBA {
	return wingColors[mod(variant, len(wingColors))]
}

// AccentColor returns the wing spot color: white for even variants, yellow for odd.
func AccentColor(variant int) color.RGBA {
	if mod(variant, 2) == 0 {
		return accentWhite
	}
	return accentYellow
}

// MaterialKey names the shared material of a variant in a Library.
func MaterialKey(variant int) string {
	return fmt.Sprintf("wing-%d", mod(variant, len(wingColors)))
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
