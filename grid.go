package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/MauroCasarin/SONIDO/internal/view"
)

var (
	gridColor      = color.RGBA{0x22, 0x22, 0x22, 0xff}
	rulerColor     = color.NRGBA{255, 255, 255, 102}
	rulerTickColor = color.NRGBA{255, 255, 255, 51}
)

// drawGrid strokes a line on every whole metre.
func (g *Game) drawGrid(screen *ebiten.Image, v view.View) {
	x0, x1, y0, y1 := v.VisibleRange()
	cx, cy := v.Origin()
	w, h := float32(v.Width), float32(v.Height)
	for m := x0; m <= x1; m++ {
		sx := float32(cx + float64(m)*v.Zoom)
		vector.StrokeLine(screen, sx, 0, sx, h, 1, gridColor, false)
	}
	for m := y0; m <= y1; m++ {
		sy := float32(cy + float64(m)*v.Zoom)
		vector.StrokeLine(screen, 0, sy, w, sy, 1, gridColor, false)
	}
}

// drawRulers draws the bottom and left metre rulers. The side ruler labels
// distance in front of the array as positive.
func (g *Game) drawRulers(screen *ebiten.Image, v view.View) {
	w, h := float32(v.Width), float32(v.Height)
	ry := h - bottomRulerInset
	vector.StrokeLine(screen, 0, ry, w, ry, 1, rulerColor, false)
	g.ticks = v.XTicks(g.ticks)
	for _, t := range g.ticks {
		x := float32(t.Pos)
		if t.Major {
			vector.StrokeLine(screen, x, ry, x, ry+majorTickLen, 1, rulerColor, false)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%dm", t.Metre), int(x)+3, int(ry)+2)
			continue
		}
		vector.StrokeLine(screen, x, ry, x, ry+minorTickLen, 1, rulerTickColor, false)
	}

	rx := float32(leftRulerX)
	vector.StrokeLine(screen, rx, 0, rx, h, 1, rulerColor, false)
	g.ticks = v.YTicks(g.ticks)
	for _, t := range g.ticks {
		y := float32(t.Pos)
		if t.Major {
			vector.StrokeLine(screen, rx-majorTickLen, y, rx, y, 1, rulerColor, false)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%dm", -t.Metre), 2, int(y)-14)
			continue
		}
		vector.StrokeLine(screen, rx-minorTickLen, y, rx, y, 1, rulerTickColor, false)
	}
}
