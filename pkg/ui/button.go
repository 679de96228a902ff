package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button runs OnClick once per press.
type Button struct {
	Rect
	Label   string
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA

	press press
	hover bool
}

func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Rect:       Rect{X: x, Y: y, W: width, H: height},
		Label:      label,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) Update(p Pointer) {
	b.hover = b.Contains(p.X, p.Y)
	if b.press.clicked(b.hover, p) && b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hover {
		bg = b.HoverColor
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+8), int(b.Y+b.H/2-8))
}

func (b *Button) Height() float64 { return b.H + 8 }
func (b *Button) MoveTo(y float64) { b.Y = y }
