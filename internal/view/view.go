// Package view holds the pan/zoom camera and the pointer interaction state
// machine that edits it, the probe position and the array spacing.
package view

import (
	"math"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
)

// Zoom limits in pixels per metre.
const (
	DefaultZoom = 30.0
	MinZoom     = 5.0
	MaxZoom     = 100.0

	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

// View maps world metres onto a surface of Width x Height pixels. The world
// origin sits at the surface centre shifted by the pan offset.
type View struct {
	Zoom       float64
	PanX, PanY float64
	Width      int
	Height     int
}

// New returns a centred view at the default zoom.
func New(width, height int) View {
	return View{Zoom: DefaultZoom, Width: width, Height: height}
}

// Origin returns the screen position of the world origin.
func (v View) Origin() (float64, float64) {
	return float64(v.Width)/2 + v.PanX, float64(v.Height)/2 + v.PanY
}

// ToScreen converts a world point to surface pixels.
func (v View) ToScreen(p acoustic.Point) (float64, float64) {
	cx, cy := v.Origin()
	return cx + p.X*v.Zoom, cy + p.Y*v.Zoom
}

// ToWorld converts surface pixels to a world point.
func (v View) ToWorld(sx, sy float64) acoustic.Point {
	cx, cy := v.Origin()
	return acoustic.Point{X: (sx - cx) / v.Zoom, Y: (sy - cy) / v.Zoom}
}

// ZoomBy scales the zoom, clamped to [MinZoom, MaxZoom].
func (v View) ZoomBy(factor float64) View {
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, v.Zoom*factor))
	return v
}

// Pan shifts the view by a pixel delta.
func (v View) Pan(dx, dy float64) View {
	v.PanX += dx
	v.PanY += dy
	return v
}

// Resize updates the surface dimensions; negative sizes become zero.
func (v View) Resize(width, height int) View {
	v.Width = max(0, width)
	v.Height = max(0, height)
	return v
}

// Empty reports whether the surface has no pixels.
func (v View) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

// VisibleRange returns the whole-metre span covering the surface on each axis,
// as used for grid lines and ruler ticks.
func (v View) VisibleRange() (x0, x1, y0, y1 int) {
	cx, cy := v.Origin()
	x0 = int(math.Floor(-cx / v.Zoom))
	x1 = int(math.Ceil((float64(v.Width) - cx) / v.Zoom))
	y0 = int(math.Floor(-cy / v.Zoom))
	y1 = int(math.Ceil((float64(v.Height) - cy) / v.Zoom))
	return x0, x1, y0, y1
}
