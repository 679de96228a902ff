package ui

import "github.com/hajimehoshi/ebiten/v2"

// Pointer is the mouse state the widgets react to during one Update.
type Pointer struct {
	X, Y    float64
	Pressed bool    // left button held
	WheelY  float64 // vertical scroll this frame
}

// ReadPointer samples the ebiten mouse state.
func ReadPointer() Pointer {
	mx, my := ebiten.CursorPosition()
	_, dy := ebiten.Wheel()
	return Pointer{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  dy,
	}
}

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) is inside r, borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Widget is anything a Panel can stack.
type Widget interface {
	Update(p Pointer)
	Draw(screen *ebiten.Image)
	Height() float64
	MoveTo(y float64)
}

// press turns a held button into a single click: it reports true only on the
// first frame the button goes down over the target.
type press struct {
	down bool
}

func (c *press) clicked(over bool, p Pointer) bool {
	if !p.Pressed {
		c.down = false
		return false
	}
	if c.down {
		return false
	}
	c.down = true
	return over
}
