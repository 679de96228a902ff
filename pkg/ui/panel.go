package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	margin        = 10.0
)

// Panel stacks widgets under section headers in a scrollable box.
type Panel struct {
	Rect
	Title        string
	ScrollOffset float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	items []item
}

// item is either a section header (widget nil) or a widget.
type item struct {
	title  string
	widget Widget
}

func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{
		Rect:        Rect{X: x, Y: y, W: width, H: height},
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new titled group.
func (p *Panel) AddSection(title string) {
	p.items = append(p.items, item{title: title})
	p.layout()
}

func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+margin, 0, p.W-2*margin, label, min, max, value)
	p.add(s)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+margin, 0, label, value)
	p.add(c)
	return c
}

func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+margin, 0, p.W-2*margin, 24, label, onClick)
	p.add(b)
	return b
}

func (p *Panel) add(w Widget) {
	p.items = append(p.items, item{widget: w})
	p.layout()
}

// layout places every widget below the previous one, shifted by the scroll offset.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, it := range p.items {
		if it.widget == nil {
			y += sectionHeight
			continue
		}
		it.widget.MoveTo(y)
		y += it.widget.Height()
	}
}

// ContentHeight is the height of everything in the panel, unscrolled.
func (p *Panel) ContentHeight() float64 {
	h := titleHeight
	for _, it := range p.items {
		if it.widget == nil {
			h += sectionHeight
		} else {
			h += it.widget.Height()
		}
	}
	return h
}

// Update scrolls when the wheel turns over the panel, then feeds the pointer to
// the widgets. A press outside the panel never reaches them.
func (p *Panel) Update(ptr Pointer) {
	if ptr.WheelY != 0 && p.Contains(ptr.X, ptr.Y) {
		maxScroll := math.Max(0, p.ContentHeight()-p.H+margin)
		p.ScrollOffset = math.Max(0, math.Min(maxScroll, p.ScrollOffset-ptr.WheelY*20))
		p.layout()
	}
	if !p.Contains(ptr.X, ptr.Y) {
		ptr.Pressed = false
	}
	for _, it := range p.items {
		if it.widget != nil {
			it.widget.Update(ptr)
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	for _, it := range p.items {
		h := sectionHeight
		if it.widget != nil {
			h = it.widget.Height()
		}
		visible := y >= p.Y+titleHeight-5 && y+h <= p.Y+p.H
		switch {
		case !visible:
		case it.widget == nil:
			vector.FillRect(screen, float32(p.X+5), float32(y), float32(p.W-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, it.title, int(p.X+margin), int(y+3))
		default:
			it.widget.Draw(screen)
		}
		y += h
	}
}
