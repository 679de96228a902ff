package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/flight"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/render"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/simulation"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	return screen
}

func rowText(screen tcell.Screen, row, width int) string {
	out := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		ch, _, _, _ := screen.GetContent(x, row)
		out = append(out, ch)
	}
	return string(out)
}

func TestRenderer_DrawsButterfly(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, render.DefaultCamera(), nil)

	snap := &simulation.Snapshot{
		Frame: 12,
		Butterflies: []simulation.Pose{
			{ID: "Butterfly-001", Variant: 1, LeftWing: 0.9, RightWing: 0.9, State: flight.Cruising},
		},
	}
	require.NoError(t, r.Render(snap))

	// the origin projects to the middle of the 80x23 drawing area
	body, _, bodyStyle, _ := screen.GetContent(40, 11)
	left, _, wingStyle, _ := screen.GetContent(39, 11)
	right, _, _, _ := screen.GetContent(41, 11)
	assert.Equal(t, 'o', body)
	assert.Equal(t, '\\', left, "wings raised")
	assert.Equal(t, '/', right)

	wingFg, _, _ := wingStyle.Decompose()
	bodyFg, _, _ := bodyStyle.Decompose()
	assert.Equal(t, rgb(render.WingColor(1)), wingFg)
	assert.Equal(t, rgb(render.AccentColor(1)), bodyFg)

	assert.Contains(t, rowText(screen, 23, 80), "frame 12")
	assert.Contains(t, rowText(screen, 23, 80), "cruising 1")
}

func TestRenderer_SitesAndFoldedWings(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, render.DefaultCamera(), nil)

	snap := &simulation.Snapshot{
		Sites: []geometry.Vector3D{{}},
		Butterflies: []simulation.Pose{
			{ID: "a", Position: geometry.Vector3D{Y: 2}, State: flight.Resting},
		},
	}
	require.NoError(t, r.Render(snap))

	site, _, _, _ := screen.GetContent(40, 11)
	assert.Equal(t, '+', site)
	assert.Contains(t, rowText(screen, 23, 80), "resting 1")

	found := false
	for row := 0; row < 11; row++ {
		if ch, _, _, _ := screen.GetContent(39, row); ch == '-' {
			found = true
		}
	}
	assert.True(t, found, "level wings drawn above the site")
}

func TestRenderer_SkipsPointsAboveScreen(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, render.DefaultCamera(), nil)

	// 23 drawing rows are 46 pixel rows; aim one pixel above the top edge
	view := render.DefaultCamera().Viewport(80, 23*cellAspect)
	_, center, unit, ok := view.Project(geometry.Vector3D{})
	require.True(t, ok)
	above := geometry.Vector3D{Y: (center + 1) / unit}
	_, y, _, ok := view.Project(above)
	require.True(t, ok)
	require.True(t, y > -cellAspect && y < 0, "projects to pixel row %.3f", y)

	snap := &simulation.Snapshot{
		Sites:       []geometry.Vector3D{above},
		Butterflies: []simulation.Pose{{ID: "a", Position: above}},
	}
	require.NoError(t, r.Render(snap))

	assert.Equal(t, "", strings.TrimSpace(rowText(screen, 0, 80)), "nothing drawn on the top row")
}

func TestRenderer_MaterialsShared(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, render.DefaultCamera(), nil)
	snap := &simulation.Snapshot{Butterflies: []simulation.Pose{
		{ID: "a", Variant: 0, Position: geometry.Vector3D{X: -2}},
		{ID: "b", Variant: 0, Position: geometry.Vector3D{X: 2}},
		{ID: "c", Variant: 2},
	}}

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Render(snap))
	}

	alive, refs := r.Materials()
	assert.Equal(t, 2, alive, "one material per variant")
	assert.Equal(t, 3, refs, "one reference per butterfly")
}

func TestRenderer_Close(t *testing.T) {
	r := New(newScreen(t), render.DefaultCamera(), nil)
	require.NoError(t, r.Render(&simulation.Snapshot{Butterflies: []simulation.Pose{{ID: "a"}}}))

	require.NoError(t, r.Close())

	alive, refs := r.Materials()
	assert.Zero(t, alive)
	assert.Zero(t, refs)
	assert.ErrorIs(t, r.Close(), ErrSurfaceDetached)
	assert.ErrorIs(t, r.Render(&simulation.Snapshot{}), ErrSurfaceDetached)
}

func TestRenderer_DrivenRun(t *testing.T) {
	screen := newScreen(t)
	r := New(screen, render.DefaultCamera(), nil)
	meadow, err := simulation.NewMeadow(simulation.DefaultConfig(), nil)
	require.NoError(t, err)
	d := simulation.NewDriver(meadow, r)

	start := time.Unix(0, 0)
	for i := 0; i < 120; i++ {
		_, err := d.FrameAt(start.Add(time.Duration(i) * time.Second / 60))
		require.NoError(t, err)
	}
	assert.Contains(t, rowText(screen, 23, 80), "frame 120")

	require.NoError(t, d.Close())
	assert.ErrorIs(t, r.Close(), ErrSurfaceDetached, "the driver already closed the renderer")
}

func TestQuitRequested(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"Q", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{"resize", tcell.NewEventResize(80, 24), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuitRequested(tt.ev))
		})
	}
}

func TestListen(t *testing.T) {
	screen := newScreen(t)
	defer screen.Fini()
	quit := make(chan struct{})
	go Listen(screen, func() { close(quit) })

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatal("quit key not noticed")
	}
}
