// Package terminal draws a meadow with tcell, one character cell per pixel.
package terminal

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/flight"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/render"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/simulation"
)

// ErrSurfaceDetached is returned when drawing on or closing a renderer whose
// screen has already been released.
var ErrSurfaceDetached = errors.New("terminal: surface detached")

// Terminal cells are about twice as tall as they are wide.
const cellAspect = 2

var (
	siteStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// material is the pair of styles one variant is drawn with.
type material struct {
	wing   tcell.Style
	accent tcell.Style
}

// Renderer implements simulation.Renderer on a tcell screen.
type Renderer struct {
	mu        sync.Mutex
	screen    tcell.Screen
	camera    render.Camera
	materials *render.Library[material]
	held      map[string]string // butterfly id -> material key
	logger    log.Logger
	detached  bool
}

var _ simulation.Renderer = (*Renderer)(nil)

// New draws on an initialized screen. The renderer owns the screen from now on and
// finalizes it on Close.
func New(screen tcell.Screen, camera render.Camera, logger log.Logger) *Renderer {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &Renderer{
		screen:    screen,
		camera:    camera,
		materials: render.NewLibrary[material](nil, logger),
		held:      make(map[string]string),
		logger:    logger,
	}
}

// Render draws landing sites, then butterflies from back to front, then the status line.
func (r *Renderer) Render(s *simulation.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return ErrSurfaceDetached
	}

	w, h := r.screen.Size()
	if w <= 0 || h <= 1 {
		return nil
	}
	r.screen.Clear()
	view := r.camera.Viewport(w, (h-1)*cellAspect)

	for _, site := range s.Sites {
		if x, y, _, ok := view.Project(site); ok {
			r.put(int(math.Floor(x)), cell(y), '+', siteStyle, h-1)
		}
	}

	poses := append([]simulation.Pose(nil), s.Butterflies...)
	sort.SliceStable(poses, func(i, j int) bool { return poses[i].Position.Z < poses[j].Position.Z })
	for _, p := range poses {
		x, y, _, ok := view.Project(p.Position)
		if !ok {
			continue
		}
		m, err := r.materialFor(p)
		if err != nil {
			return err
		}
		wing := m.wing
		if p.State == flight.Resting {
			wing = wing.Dim(true)
		}
		left, right := wingGlyphs(p.LeftWing)
		cx, cy := int(math.Round(x)), cell(y)
		r.put(cx-1, cy, left, wing, h-1)
		r.put(cx, cy, 'o', m.accent, h-1)
		r.put(cx+1, cy, right, wing, h-1)
	}

	r.drawStatus(s, w, h-1)
	r.screen.Show()
	return nil
}

// cell maps a pixel row to a terminal row; points above the screen stay negative.
func cell(y float64) int {
	return int(math.Floor(y / cellAspect))
}

func (r *Renderer) put(x, y int, ch rune, style tcell.Style, rows int) {
	if y < 0 || y >= rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) drawStatus(s *simulation.Snapshot, w, row int) {
	line := fmt.Sprintf(" frame %d  t=%.1fs  cruising %d  seeking %d  resting %d   q: quit ",
		s.Frame, s.Elapsed,
		s.Count(flight.Cruising), s.Count(flight.Seeking), s.Count(flight.Resting))
	col := 0
	for _, ch := range line {
		if col >= w {
			break
		}
		r.screen.SetContent(col, row, ch, nil, statusStyle)
		col++
	}
	for ; col < w; col++ {
		r.screen.SetContent(col, row, ' ', nil, statusStyle)
	}
}

// materialFor returns the shared material of the butterfly's variant, taking a
// reference the first time the butterfly is seen.
func (r *Renderer) materialFor(p simulation.Pose) (material, error) {
	if key, ok := r.held[p.ID]; ok {
		if m, ok := r.materials.Get(key); ok {
			return m, nil
		}
	}
	key := render.MaterialKey(p.Variant)
	m, err := r.materials.Acquire(key, func() (material, error) {
		return material{
			wing:   tcell.StyleDefault.Foreground(rgb(render.WingColor(p.Variant))),
			accent: tcell.StyleDefault.Foreground(rgb(render.AccentColor(p.Variant))).Bold(true),
		}, nil
	})
	if err != nil {
		return m, err
	}
	r.held[p.ID] = key
	return m, nil
}

// Close releases every material and finalizes the screen.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return ErrSurfaceDetached
	}
	r.detached = true

	for id, key := range r.held {
		if err := r.materials.Release(key); err != nil {
			r.logger.Debugf("release material of %s: %v", id, err)
		}
	}
	r.held = nil
	r.materials.Close()
	r.screen.Fini()
	return nil
}

// Materials returns how many variant materials are alive and how many butterflies reference them.
func (r *Renderer) Materials() (alive, refs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.materials.Len(), len(r.held)
}

func wingGlyphs(angle float64) (left, right rune) {
	switch {
	case angle > math.Pi/6:
		return '\\', '/'
	case angle < -math.Pi/6:
		return '/', '\\'
	default:
		return '-', '-'
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
