package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

var (
	stageFill = color.NRGBA{40, 40, 80, 153}
	stageEdge = color.RGBA{0x88, 0x88, 0xff, 0xff}
)

// stageRect returns the stage in world metres: it spans the reflector width
// centred on x=0 and extends stageDepth behind the reflector line.
func stageRect(c acoustic.Config) (x0, y0, x1, y1 float64) {
	half := c.ReflectorWidth / 2
	return -half, c.ReflectorDistance, half, c.ReflectorDistance + stageDepth
}

// drawStage draws the stage and its reflecting edge when a stage width is
// set. A zero-distance stage is still drawn but does not reflect.
func (g *Game) drawStage(screen *ebiten.Image, v view.View) {
	c := g.state.Config
	if c.ReflectorWidth <= 0 {
		return
	}
	x0, y0, x1, y1 := stageRect(c)
	sx0, sy0 := v.ToScreen(acoustic.Point{X: x0, Y: y0})
	sx1, sy1 := v.ToScreen(acoustic.Point{X: x1, Y: y1})
	vector.DrawFilledRect(screen, float32(sx0), float32(sy0), float32(sx1-sx0), float32(sy1-sy0), stageFill, false)
	vector.StrokeLine(screen, float32(sx0), float32(sy0), float32(sx1), float32(sy0),
		float32(probeStroke*v.Zoom), stageEdge, true)

	const label = "STAGE"
	lx, ly := v.ToScreen(acoustic.Point{Y: y0 + stageLabelOffset})
	ebitenutil.DebugPrintAt(screen, label, int(lx)-len(label)*debugCharWidth/2, int(ly)-debugLineHeight)
}
