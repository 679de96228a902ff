// Package viewer shows a meadow in an ebiten window. The meadow itself runs in a
// MeadowActor; the window only sends frame ticks and tuning, and draws the
// snapshots that come back.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/flight"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/render"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/ui"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	panelWidth   = 260
)

var (
	backgroundColor = color.RGBA{R: 0xf4, G: 0xf1, B: 0xea, A: 0xff}
	siteColor       = color.RGBA{R: 0xc0, G: 0x8a, B: 0x3e, A: 0xff}
	zoneColor       = color.RGBA{R: 0x90, G: 0x90, B: 0xa0, A: 0xff}
)

type Game struct {
	ctx        context.Context
	system     actor.ActorSystem
	meadowPID  *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	logger     log.Logger

	camera    render.Camera
	materials *render.Library[*ebiten.Image]
	held      map[string]string // butterfly id -> material key

	// UI Controls
	panel           *ui.Panel
	widgetLanding   *ui.Slider
	widgetFlapRate  *ui.Slider
	widgetShowSites *ui.Checkbox
	widgetShowZone  *ui.Checkbox
	widgetPause     *ui.Button
	paused          bool
	pendingTune     map[string]float64
}

// NewGame spawns the meadow actor in system and builds the window state.
func NewGame(ctx context.Context, system actor.ActorSystem, cfg *simulation.Config, opts ...simulation.Option) (*Game, error) {
	// Buffer to avoid blocking
	snapshotCh := make(chan *simulation.Snapshot, 10)

	pid, err := system.Spawn(ctx, "meadow", simulation.NewMeadowActor(cfg, snapshotCh, opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn meadow: %w", err)
	}

	logger := system.Logger()
	g := &Game{
		ctx:        ctx,
		system:     system,
		meadowPID:  pid,
		snapshotCh: snapshotCh,
		lastState:  &simulation.Snapshot{},
		logger:     logger,
		camera:     render.DefaultCamera(),
		materials: render.NewLibrary(func(img *ebiten.Image) error {
			img.Deallocate()
			return nil
		}, logger),
		held:        make(map[string]string),
		pendingTune: make(map[string]float64),
	}

	g.panel = ui.NewPanel(ScreenWidth-panelWidth-10, 10, panelWidth, 300, "Meadow")
	g.panel.AddSection("Behavior")
	g.widgetLanding = g.panel.AddSlider("Landing probability", 0, 1, cfg.Flight.LandingProbability)
	g.widgetFlapRate = g.panel.AddSlider("Flap rate (rad/s)", 2, 16, cfg.Flight.FlapRate)
	g.panel.AddSection("Overlays")
	g.widgetShowSites = g.panel.AddCheckbox("Landing sites", true)
	g.widgetShowZone = g.panel.AddCheckbox("Flight zone", false)
	g.panel.AddSection("Animation")
	g.widgetPause = g.panel.AddButton("Pause", g.togglePause)

	g.widgetLanding.OnChange = func(v float64) { g.pendingTune[simulation.TuneLandingProbability] = v }
	g.widgetFlapRate.OnChange = func(v float64) { g.pendingTune[simulation.TuneFlapRate] = v }
	return g, nil
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.widgetPause.Label = "Resume"
	} else {
		g.widgetPause.Label = "Pause"
	}
}

func (g *Game) Update() error {
	g.panel.Update(ui.ReadPointer())

	// Slider drags produce one tuning message per frame at most
	if len(g.pendingTune) > 0 {
		if err := actor.Tell(g.ctx, g.meadowPID, simulation.TuningMessage(g.pendingTune)); err != nil {
			g.logger.Warnf("tune: %v", err)
		}
		g.pendingTune = make(map[string]float64)
	}

	if !g.paused {
		if err := actor.Tell(g.ctx, g.meadowPID, timestamppb.Now()); err != nil {
			return fmt.Errorf("frame tick: %w", err)
		}
	}

	// Drain every snapshot that arrived, keep the latest
	for {
		select {
		case s := <-g.snapshotCh:
			g.lastState = s
		default:
			return nil
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	view := g.camera.Viewport(screen.Bounds().Dx(), screen.Bounds().Dy())
	state := g.lastState

	if g.widgetShowZone.Value {
		g.drawZone(screen, view, state.Zone)
	}
	if g.widgetShowSites.Value {
		for _, site := range state.Sites {
			if x, y, unit, ok := view.Project(site); ok {
				vector.StrokeCircle(screen, float32(x), float32(y), float32(unit*0.15), 1, siteColor, true)
			}
		}
	}

	poses := append([]simulation.Pose(nil), state.Butterflies...)
	sort.SliceStable(poses, func(i, j int) bool { return poses[i].Position.Z < poses[j].Position.Z })
	for _, p := range poses {
		g.drawButterfly(screen, view, p)
	}

	g.panel.Draw(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"frame %d  t=%.1fs  cruising %d  seeking %d  resting %d  TPS %.0f",
		state.Frame, state.Elapsed,
		state.Count(flight.Cruising), state.Count(flight.Seeking), state.Count(flight.Resting),
		ebiten.ActualTPS()), 10, 10)
}

func (g *Game) drawButterfly(screen *ebiten.Image, view render.Projection, p simulation.Pose) {
	img, err := g.material(p)
	if err != nil {
		g.logger.Warnf("material for %s: %v", p.ID, err)
		return
	}
	g.drawWing(screen, view, img, render.WingQuad(p.Position, p.Orientation, p.Scale, p.LeftWing, render.Left))
	g.drawWing(screen, view, img, render.WingQuad(p.Position, p.Orientation, p.Scale, p.RightWing, render.Right))

	if x, y, unit, ok := view.Project(p.Position); ok {
		vector.FillCircle(screen, float32(x), float32(y), float32(unit*0.03*p.Scale), render.BodyColor, true)
		vector.FillCircle(screen, float32(x), float32(y), float32(unit*0.015*p.Scale), render.AccentColor(p.Variant), true)
	}
}

// drawWing fills a projected wing quad with two triangles sourced from the
// variant's material image.
func (g *Game) drawWing(screen *ebiten.Image, view render.Projection, img *ebiten.Image, quad [4]geometry.Vector3D) {
	vertices := make([]ebiten.Vertex, 0, 4)
	for _, corner := range quad {
		x, y, _, ok := view.Project(corner)
		if !ok {
			return
		}
		vertices = append(vertices, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 0.9,
		})
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}
	screen.DrawTriangles(vertices, indices, img, &ebiten.DrawTrianglesOptions{})
}

// material returns the shared wing image of the butterfly's variant, taking a
// reference the first time the butterfly is drawn.
func (g *Game) material(p simulation.Pose) (*ebiten.Image, error) {
	if key, ok := g.held[p.ID]; ok {
		if img, ok := g.materials.Get(key); ok {
			return img, nil
		}
	}
	key := render.MaterialKey(p.Variant)
	img, err := g.materials.Acquire(key, func() (*ebiten.Image, error) {
		img := ebiten.NewImage(3, 3)
		img.Fill(render.WingColor(p.Variant))
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	g.held[p.ID] = key
	return img, nil
}

func (g *Game) drawZone(screen *ebiten.Image, view render.Projection, zone flight.Bounds) {
	for _, z := range []float64{zone.Min.Z, zone.Max.Z} {
		x0, y0, _, ok0 := view.Project(geometry.Vector3D{X: zone.Min.X, Y: zone.Max.Y, Z: z})
		x1, y1, _, ok1 := view.Project(geometry.Vector3D{X: zone.Max.X, Y: zone.Min.Y, Z: z})
		if ok0 && ok1 {
			vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1, zoneColor, true)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close stops the meadow actor and releases every shared material.
func (g *Game) Close() {
	if err := g.meadowPID.Shutdown(context.Background()); err != nil {
		g.logger.Debugf("meadow shutdown: %v", err)
	}
	for id, key := range g.held {
		if err := g.materials.Release(key); err != nil {
			g.logger.Debugf("release material of %s: %v", id, err)
		}
	}
	g.held = make(map[string]string)
	g.materials.Close()
}
