package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
)

func fixture() (*Controller, acoustic.Config, acoustic.Point, []acoustic.Source) {
	cfg := acoustic.Config{Frequency: 60, Count: 2, Spacing: 2, Optimized: true}
	v := New(400, 400)
	v.Zoom = 20
	// Sources land at screen (180, 200) and (220, 200); the probe at (200, 100).
	return NewController(v), cfg, acoustic.Point{Y: -5}, acoustic.GenerateSources(cfg)
}

func TestPointerDownPrefersProbe(t *testing.T) {
	c, _, probe, src := fixture()

	c.PointerDown(210, 110, probe, src)

	assert.Equal(t, DraggingProbe{}, c.Drag())
	assert.True(t, c.Active())
}

func TestPointerDownPicksNearestSource(t *testing.T) {
	c, _, probe, src := fixture()

	c.PointerDown(218, 205, probe, src)

	assert.Equal(t, DraggingSource{Index: 1}, c.Drag())
	assert.Equal(t, "dragging-source[1]", c.Drag().String())
}

func TestPointerDownElsewherePans(t *testing.T) {
	c, cfg, probe, src := fixture()

	c.PointerDown(20, 380, probe, src)
	require.Equal(t, Panning{}, c.Drag())

	gotCfg, gotProbe := c.PointerMove(30, 370, cfg, probe)

	assert.Equal(t, cfg, gotCfg)
	assert.Equal(t, probe, gotProbe)
	assert.Equal(t, 10.0, c.View().PanX)
	assert.Equal(t, -10.0, c.View().PanY)
}

func TestProbeDragMovesInWorldUnits(t *testing.T) {
	c, cfg, probe, src := fixture()
	c.PointerDown(200, 100, probe, src)

	gotCfg, gotProbe := c.PointerMove(240, 90, cfg, probe)

	assert.InDelta(t, 2.0, gotProbe.X, 1e-12)
	assert.InDelta(t, -5.5, gotProbe.Y, 1e-12)
	assert.False(t, gotCfg.Optimized)
	assert.Equal(t, cfg.Spacing, gotCfg.Spacing)
}

func TestSourceDragAdjustsSpacing(t *testing.T) {
	c, cfg, probe, src := fixture()
	c.PointerDown(180, 200, probe, src)
	require.Equal(t, DraggingSource{Index: 0}, c.Drag())

	up, _ := c.PointerMove(180, 160, cfg, probe)
	assert.InDelta(t, 2+2*SpacingSensitivity, up.Spacing, 1e-12)
	assert.False(t, up.Optimized)

	sideways, _ := c.PointerMove(260, 160, up, probe)
	assert.Equal(t, up, sideways)

	floor, _ := c.PointerMove(260, 2000, up, probe)
	assert.Equal(t, acoustic.MinSpacing, floor.Spacing)

	ceiling, _ := c.PointerMove(260, -4000, floor, probe)
	assert.Equal(t, acoustic.MaxSpacing, ceiling.Spacing)
}

func TestPointerUpAndCancelReturnToIdle(t *testing.T) {
	c, cfg, probe, src := fixture()

	c.PointerDown(200, 100, probe, src)
	c.PointerUp()
	assert.Equal(t, Idle{}, c.Drag())

	_, moved := c.PointerMove(300, 300, cfg, probe)
	assert.Equal(t, probe, moved)

	c.PointerDown(5, 5, probe, src)
	c.Cancel()
	assert.False(t, c.Active())
}

func TestWheelZoomKeepsDragState(t *testing.T) {
	c, _, probe, src := fixture()
	c.PointerDown(5, 5, probe, src)

	c.Wheel(1)
	assert.InDelta(t, 20*ZoomInFactor, c.View().Zoom, 1e-12)
	c.Wheel(-1)
	assert.InDelta(t, 20*ZoomInFactor*ZoomOutFactor, c.View().Zoom, 1e-12)
	c.Wheel(0)
	assert.InDelta(t, 20*ZoomInFactor*ZoomOutFactor, c.View().Zoom, 1e-12)

	assert.Equal(t, Panning{}, c.Drag())
}
