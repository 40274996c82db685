package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/crazy3lf/colorconv"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

var (
	glyphFill         = color.RGBA{0xe4, 0xe4, 0xe7, 0xff}
	glyphFillInverted = color.RGBA{0xef, 0x44, 0x44, 0xff}
	glyphEdge         = color.RGBA{0, 0, 0, 0xff}
	glyphEdgeDown     = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
	selectedRing      = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	labelBackground   = color.NRGBA{0, 0, 0, 204}
	probeColor        = color.RGBA{0x22, 0xc5, 0x5e, 0xff}
	scopeBackground   = color.NRGBA{0, 0, 0, 230}
	scopeMidline      = color.NRGBA{255, 255, 255, 51}
	scopeNormal       = color.RGBA{0x00, 0xff, 0x00, 0xff}
	scopeCancel       = color.RGBA{0xef, 0x44, 0x44, 0xff}
	scopeSum          = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	hudBackground     = color.NRGBA{0, 0, 0, 153}

	whiteImage = func() *ebiten.Image {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}()
)

// Draw composites the heatmap raster and every overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	v := g.ctrl.View()

	g.drawGrid(screen, v)
	g.drawHeatmap(screen)
	g.drawRulers(screen, v)
	g.drawStage(screen, v)
	if g.frame.Sampler != nil {
		g.drawSources(screen, v)
		g.drawProbe(screen, v)
		g.drawScope(screen, v)
	}
	g.drawHUD(screen)
	if g.showHelp {
		g.drawHelp(screen)
	}
	if g.showDebug {
		msg := fmt.Sprintf("FPS: %.1f TPS: %.1f\nRender: %.2f ms (%s)\nDrag: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.frame.Elapsed.Seconds()*1000, g.frame.Backend, g.ctrl.Drag())
		ebitenutil.DebugPrintAt(screen, msg, v.Width-200, 4)
	}
}

// drawHeatmap uploads the latest raster. The raster is straight alpha and
// ebiten expects premultiplied pixels.
func (g *Game) drawHeatmap(screen *ebiten.Image) {
	if g.raster.Empty() {
		return
	}
	w, h := g.raster.Size()
	if g.heat == nil || g.heat.Bounds().Dx() != w || g.heat.Bounds().Dy() != h {
		if g.heat != nil {
			g.heat.Deallocate()
		}
		g.heat = ebiten.NewImage(w, h)
	}
	g.upload = g.raster.Premultiply(g.upload)
	g.heat.WritePixels(g.upload)
	screen.DrawImage(g.heat, nil)
}

// drawSources draws one glyph per real source: fill by polarity, outline by
// facing, an arrow pointing forward and the delay label above.
func (g *Game) drawSources(screen *ebiten.Image, v view.View) {
	r := float32(glyphRadius * v.Zoom)
	stroke := float32(math.Max(1, glyphStroke*v.Zoom))
	for _, s := range g.frame.Sources {
		sx, sy := v.ToScreen(s.Pos)
		x, y := float32(sx), float32(sy)

		fill, edge := glyphFill, glyphEdge
		if s.Inverted {
			fill = glyphFillInverted
		}
		if s.FrontDown {
			edge = glyphEdgeDown
		}
		vector.DrawFilledCircle(screen, x, y, r, fill, true)
		vector.StrokeCircle(screen, x, y, r, stroke, edge, true)
		if s.Index == g.selected {
			vector.StrokeCircle(screen, x, y, r+3, 1, selectedRing, true)
		}
		drawFacingArrow(screen, x, y, float32(v.Zoom), s.Front().Y)

		label := fmt.Sprintf("%.2fms", s.DelayMs)
		lx, ly := v.ToScreen(acoustic.Point{X: s.Pos.X, Y: s.Pos.Y - delayLabelRise})
		bw := float32(len(label)*debugCharWidth + 6)
		vector.DrawFilledRect(screen, float32(lx)-bw/2, float32(ly)-9, bw, 18, labelBackground, false)
		ebitenutil.DebugPrintAt(screen, label, int(lx)-len(label)*debugCharWidth/2, int(ly)-8)
	}
}

// drawFacingArrow fills a small triangle pointing along the front direction.
func drawFacingArrow(screen *ebiten.Image, x, y, zoom float32, frontY float64) {
	tip := float32(frontY) * arrowLength * zoom
	hw := arrowHalfWidth * zoom
	var p vector.Path
	p.MoveTo(x-hw, y)
	p.LineTo(x+hw, y)
	p.LineTo(x, y+tip)
	p.Close()

	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = 0, 0, 0, 0.5
	}
	screen.DrawTriangles(vs, is, whiteImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// drawProbe draws the microphone ring, its crosshair and the distance to the
// nearest real source.
func (g *Game) drawProbe(screen *ebiten.Image, v view.View) {
	p := g.state.Probe
	sx, sy := v.ToScreen(p)
	x, y := float32(sx), float32(sy)
	z := float32(v.Zoom)
	stroke := float32(math.Max(1, probeStroke*v.Zoom))

	vector.StrokeCircle(screen, x, y, probeRadius*z, stroke, probeColor, true)
	vector.StrokeLine(screen, x-probeCross*z, y, x+probeCross*z, y, stroke, probeColor, true)
	vector.StrokeLine(screen, x, y-probeCross*z, x, y+probeCross*z, stroke, probeColor, true)

	lx, ly := v.ToScreen(acoustic.Point{X: p.X + probeRadius, Y: p.Y - 0.5})
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Dist: %.2fm", g.frame.Nearest), int(lx), int(ly)-debugLineHeight/2)
}

// drawScope draws the vector-sum oscilloscope beside the probe, coloured by
// the probe classification.
func (g *Game) drawScope(screen *ebiten.Image, v view.View) {
	sx, sy := v.ToScreen(g.state.Probe)
	bx, by := float32(sx+scopeOffsetX), float32(sy+scopeOffsetY)
	const bw, bh = scopeWidth, scopeHeight

	clr := scopeColor(g.frame.Analysis.State)
	vector.DrawFilledRect(screen, bx, by, bw, bh, scopeBackground, false)
	vector.StrokeRect(screen, bx, by, bw, bh, 2, clr, false)
	mid := by + bh/2
	vector.StrokeLine(screen, bx, mid, bx+bw, mid, 1, scopeMidline, false)

	trace := g.frame.Trace
	for i := 1; i < len(trace) && i < bw; i++ {
		y0 := mid - float32(trace[i-1]*scopeGain)
		y1 := mid - float32(trace[i]*scopeGain)
		vector.StrokeLine(screen, bx+float32(i-1), y0, bx+float32(i), y1, 2, clr, true)
	}

	if label := g.frame.Analysis.State.Label(); label != "" {
		ebitenutil.DebugPrintAt(screen, label, int(bx)+(bw-len(label)*debugCharWidth)/2, int(by)+1)
	}
}

func scopeColor(s acoustic.Classification) color.Color {
	switch s {
	case acoustic.Cancellation:
		return scopeCancel
	case acoustic.Reinforcement:
		return scopeSum
	default:
		return scopeNormal
	}
}

// phaseColor maps the probe phase onto the hue wheel.
func phaseColor(phase float64) color.RGBA {
	hue := math.Mod((phase+math.Pi)/(2*math.Pi)*360, 360)
	r, gg, b, _ := colorconv.HSVToRGB(hue, 1, 1)
	return color.RGBA{r, gg, b, 0xff}
}

// drawHUD prints the array summary in the top-left corner.
func (g *Game) drawHUD(screen *ebiten.Image) {
	c := g.state.Config
	st := g.frame.Status
	a := g.frame.Analysis

	layout := c.Mode.String()
	if c.Dual {
		layout += fmt.Sprintf(" dual +/-%.1fm", c.LateralMargin)
	}
	status := strings.ReplaceAll(st.Kind.String(), "λ", "lambda")
	if st.EndFireDelayMs > 0 {
		status += fmt.Sprintf("  end-fire step %.2f ms", st.EndFireDelayMs)
	}
	stage := "off"
	if c.ReflectorWidth > 0 {
		stage = fmt.Sprintf("%.1fm wide at %.1fm", c.ReflectorWidth, c.ReflectorDistance)
		if !c.ReflectorEnabled() {
			stage += " (no reflection)"
		}
	}
	play := "PLAYING"
	if !g.state.Playing {
		play = "PAUSED"
	}
	focus := ""
	if c.Optimized {
		focus = "  FOCUSED"
	}
	sel := g.selected
	pol := "+"
	if c.Inverted[sel] {
		pol = "-"
	}
	facing := "up"
	if c.FrontDown[sel] {
		facing = "down"
	}

	lines := []string{
		fmt.Sprintf("%.0f Hz   lambda %.2fm   lambda/4 %.2fm", c.Frequency, st.Wavelength, st.Wavelength/4),
		fmt.Sprintf("%d x %.2fm %s", c.Count, c.Spacing, layout),
		"status: " + status + focus,
		"stage: " + stage,
		fmt.Sprintf("source %d: pol %s  facing %s  delay %.2f ms", sel, pol, facing, c.DelayMs[sel]),
		fmt.Sprintf("probe: |sum| %.3f  coherence %.3f  phase", a.Magnitude, a.Coherence),
		fmt.Sprintf("%s   zoom %.0f px/m   H: help", play, g.ctrl.View().Zoom),
	}
	x, y := leftRulerX+10, 4
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	vector.DrawFilledRect(screen, float32(x-4), float32(y-2), float32(width*debugCharWidth+24), float32(len(lines)*debugLineHeight+4), hudBackground, false)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), x, y)

	// Phase swatch after the probe line.
	px := float32(x + len(lines[5])*debugCharWidth + 4)
	py := float32(y + 5*debugLineHeight + 3)
	vector.DrawFilledRect(screen, px, py, 10, 10, phaseColor(a.Phase()), false)
}

var helpLines = []string{
	"Mouse: drag probe / source (spacing) / background (pan), wheel zoom",
	"WASD, arrows  pan        +/-  zoom       C  reset view",
	"Space  play/pause        Q/E  frequency  Z/X  count",
	"M  broadside/end-fire    U  dual lanes   [ ]  lane margin",
	"R  stage on/off          ; '  stage distance",
	"L  spacing lambda/4      K  spacing lambda/2",
	"F  focus delays on probe",
	"Tab  select source       P  polarity     O  facing   , .  delay",
	"F3  debug overlay        H  close help   Esc  cancel drag",
}

func (g *Game) drawHelp(screen *ebiten.Image) {
	v := g.ctrl.View()
	width := 0
	for _, l := range helpLines {
		width = max(width, len(l))
	}
	w := width*debugCharWidth + 16
	h := len(helpLines)*debugLineHeight + 12
	x := (v.Width - w) / 2
	y := (v.Height - h) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), scopeBackground, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, rulerColor, false)
	ebitenutil.DebugPrintAt(screen, strings.Join(helpLines, "\n"), x+8, y+6)
}
