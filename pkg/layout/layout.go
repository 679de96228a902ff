// Package layout maps page cards onto the plane butterflies fly over.
//
// Cards are rectangles in page pixels (origin top-left, y down). The page is
// stretched onto a world rectangle on the z = 0 plane (y up), and the two upper
// corners of every card become landing sites.
package layout

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Card is one page element, in page pixels.
type Card struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Bound returns the card as a planar bound.
func (c Card) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{c.X, c.Y},
		Max: orb.Point{c.X + c.Width, c.Y + c.Height},
	}
}

// Page is the pixel size of the layout and the world rectangle it is drawn on.
type Page struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	// World is the region of the z = 0 plane covered by the page.
	World orb.Bound `json:"-" yaml:"-"`
}

// DefaultPage is a 1200x900 page covering x[-4,4] y[-3,3], the default flight zone face.
func DefaultPage() Page {
	return Page{
		Width:  1200,
		Height: 900,
		World:  orb.Bound{Min: orb.Point{-4, -3}, Max: orb.Point{4, 3}},
	}
}

// Validate rejects pages that cannot be mapped.
func (p Page) Validate() error {
	if !(p.Width > 0) || !(p.Height > 0) {
		return fmt.Errorf("page size %.0fx%.0f must be positive", p.Width, p.Height)
	}
	if p.World.Right() <= p.World.Left() || p.World.Top() <= p.World.Bottom() {
		return errors.New("page world rectangle is empty")
	}
	return nil
}

// bound is the page itself in page pixels.
func (p Page) bound() orb.Bound {
	return orb.Bound{Max: orb.Point{p.Width, p.Height}}
}

// ToWorld maps a page pixel onto the z = 0 plane.
func (p Page) ToWorld(px orb.Point) geometry.Vector3D {
	u := px.X() / p.Width
	v := px.Y() / p.Height
	return geometry.Vector3D{
		X: p.World.Left() + u*(p.World.Right()-p.World.Left()),
		Y: p.World.Top() - v*(p.World.Top()-p.World.Bottom()),
	}
}

// LandingSites returns the upper corners of every card that overlaps the page,
// clipped to the page, in card order. Corners shared by adjacent cards appear once.
func LandingSites(page Page, cards []Card) ([]geometry.Vector3D, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	sites := make([]geometry.Vector3D, 0, 2*len(cards))
	seen := make(map[geometry.Vector3D]struct{}, 2*len(cards))
	for i, c := range cards {
		if !(c.Width > 0) || !(c.Height > 0) {
			return nil, fmt.Errorf("card %d: size %.0fx%.0f must be positive", i, c.Width, c.Height)
		}
		b := c.Bound()
		if !b.Intersects(page.bound()) {
			continue
		}
		b = clip(b, page.bound())
		for _, corner := range []orb.Point{{b.Left(), b.Min.Y()}, {b.Right(), b.Min.Y()}} {
			site := page.ToWorld(corner)
			if _, dup := seen[site]; dup {
				continue
			}
			seen[site] = struct{}{}
			sites = append(sites, site)
		}
	}
	return sites, nil
}

func clip(b, to orb.Bound) orb.Bound {
	return orb.Bound{
		Min: orb.Point{max(b.Min.X(), to.Min.X()), max(b.Min.Y(), to.Min.Y())},
		Max: orb.Point{min(b.Max.X(), to.Max.X()), min(b.Max.Y(), to.Max.Y())},
	}
}
