package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider edits a number in [Min, Max] by clicking or dragging along its bar.
type Slider struct {
	Rect
	Label    string
	Value    float64
	Min, Max float64
	Format   string // printf verb for the value, "%.2f" by default

	// OnChange is called with the new value whenever it changes.
	OnChange func(v float64)

	dragging bool
}

func NewSlider(x, y, width float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Rect:   Rect{X: x, Y: y, W: width, H: 12},
		Label:  label,
		Min:    min,
		Max:    max,
		Format: "%.2f",
	}
	s.Value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Ratio is the filled fraction of the bar.
func (s *Slider) Ratio() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Text is the label with the current value.
func (s *Slider) Text() string {
	return fmt.Sprintf("%s: "+s.Format, s.Label, s.Value)
}

func (s *Slider) Update(p Pointer) {
	if !p.Pressed {
		s.dragging = false
		return
	}
	if !s.dragging && !s.Contains(p.X, p.Y) {
		return
	}
	s.dragging = true

	v := s.clamp(s.Min + (p.X-s.X)/s.W*(s.Max-s.Min))
	if v == s.Value {
		return
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

func (s *Slider) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, s.Text(), int(s.X), int(s.Y-16))
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H),
		color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*s.Ratio()), float32(s.H),
		color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}

func (s *Slider) Height() float64 { return s.H + 25 }
func (s *Slider) MoveTo(y float64) { s.Y = y + 16 }
