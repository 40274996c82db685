package view

import (
	"math"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
)

const (
	// HitRadius is the screen distance, in pixels, that grabs the probe or a source.
	HitRadius = 50.0
	// SpacingSensitivity scales vertical drag metres into spacing metres.
	SpacingSensitivity = 0.5
)

// Controller turns pointer input into view, probe and spacing edits. It owns
// the view and the drag state for the lifetime of the surface; configuration
// and probe are passed in as snapshots and returned updated.
type Controller struct {
	view  View
	drag  Drag
	lastX float64
	lastY float64
}

// NewController starts idle with the given view.
func NewController(v View) *Controller {
	return &Controller{view: v, drag: Idle{}}
}

// View returns the current camera.
func (c *Controller) View() View { return c.view }

// SetView replaces the camera, e.g. after a surface resize.
func (c *Controller) SetView(v View) { c.view = v }

// Drag returns the gesture in progress.
func (c *Controller) Drag() Drag { return c.drag }

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	_, idle := c.drag.(Idle)
	return !idle
}

// PointerDown starts a gesture at surface position (x, y). The probe wins
// over sources; otherwise the nearest real source within HitRadius is
// grabbed; anything else pans.
func (c *Controller) PointerDown(x, y float64, probe acoustic.Point, sources []acoustic.Source) {
	c.lastX, c.lastY = x, y

	px, py := c.view.ToScreen(probe)
	if math.Hypot(x-px, y-py) < HitRadius {
		c.drag = DraggingProbe{}
		return
	}

	closest := -1
	best := HitRadius
	for i, s := range sources {
		if s.Reflection {
			continue
		}
		sx, sy := c.view.ToScreen(s.Pos)
		if d := math.Hypot(x-sx, y-sy); d < best {
			best = d
			closest = i
		}
	}
	if closest >= 0 {
		c.drag = DraggingSource{Index: sources[closest].Index}
		return
	}
	c.drag = Panning{}
}

// PointerMove applies the delta since the last event to whatever the active
// gesture edits and returns the resulting snapshots. Idle moves change nothing.
func (c *Controller) PointerMove(x, y float64, cfg acoustic.Config, probe acoustic.Point) (acoustic.Config, acoustic.Point) {
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y

	switch c.drag.(type) {
	case Panning:
		c.view = c.view.Pan(dx, dy)
	case DraggingProbe:
		probe.X += dx / c.view.Zoom
		probe.Y += dy / c.view.Zoom
		cfg.Optimized = false
	case DraggingSource:
		if dm := -dy / c.view.Zoom; dm != 0 {
			cfg = cfg.WithSpacing(cfg.Spacing + dm*SpacingSensitivity)
		}
	}
	return cfg, probe
}

// PointerUp ends any gesture.
func (c *Controller) PointerUp() { c.drag = Idle{} }

// Cancel ends any gesture when the pointer leaves the surface or the gesture
// is otherwise aborted, so a drag never sticks.
func (c *Controller) Cancel() { c.drag = Idle{} }

// Wheel zooms in for a positive delta and out for a negative one. It does not
// touch the drag state.
func (c *Controller) Wheel(delta float64) {
	switch {
	case delta > 0:
		c.view = c.view.ZoomBy(ZoomInFactor)
	case delta < 0:
		c.view = c.view.ZoomBy(ZoomOutFactor)
	}
}
