package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

const (
	repeatDelay    = 15 // ticks before a held key starts repeating
	repeatInterval = 3
)

// repeating reports a fresh press, then every repeatInterval ticks once the
// key has been held for repeatDelay ticks.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// panVector returns WASD/arrow panning in pixels, normalised on diagonals.
func panVector() (float64, float64) {
	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx -= panSpeed
	}
	if dx != 0 && dy != 0 {
		dx *= 0.7071
		dy *= 0.7071
	}
	return dx, dy
}

// handleKeyboard applies the keyboard bindings listed by the help overlay.
func (g *Game) handleKeyboard() {
	if dx, dy := panVector(); dx != 0 || dy != 0 {
		g.ctrl.SetView(g.ctrl.View().Pan(dx, dy))
	}
	if repeating(ebiten.KeyEqual) || repeating(ebiten.KeyKPAdd) {
		g.ctrl.Wheel(1)
	}
	if repeating(ebiten.KeyMinus) || repeating(ebiten.KeyKPSubtract) {
		g.ctrl.Wheel(-1)
	}
	if justPressed(ebiten.KeyC) {
		g.ctrl.SetView(view.New(g.width, g.height))
	}
	if justPressed(ebiten.KeyEscape) {
		g.ctrl.Cancel()
	}
	if justPressed(ebiten.KeyH, ebiten.KeyF1) {
		g.showHelp = !g.showHelp
	}
	if justPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}

	s := &g.state
	c := s.Config
	if justPressed(ebiten.KeySpace) {
		s.Playing = !s.Playing
	}
	if repeating(ebiten.KeyQ) {
		c.Frequency = math.Max(acoustic.MinFrequency, c.Frequency-frequencyStep)
	}
	if repeating(ebiten.KeyE) {
		c.Frequency = math.Min(acoustic.MaxFrequency, c.Frequency+frequencyStep)
	}
	if justPressed(ebiten.KeyZ) && c.Count > 1 {
		c.Count--
		c.Optimized = false
	}
	if justPressed(ebiten.KeyX) && c.Count < acoustic.MaxSources {
		c.Count++
		c.Optimized = false
	}
	if justPressed(ebiten.KeyM) {
		if c.Mode == acoustic.Broadside {
			c.Mode = acoustic.EndFire
		} else {
			c.Mode = acoustic.Broadside
		}
		c.Optimized = false
	}
	if justPressed(ebiten.KeyU) {
		c.Dual = !c.Dual
	}
	if repeating(ebiten.KeyBracketLeft) {
		c.LateralMargin = clampFloat(c.LateralMargin-marginStep, 0, 5)
	}
	if repeating(ebiten.KeyBracketRight) {
		c.LateralMargin = clampFloat(c.LateralMargin+marginStep, 0, 5)
	}
	if justPressed(ebiten.KeyR) {
		if c.ReflectorWidth > 0 {
			g.lastStage = c.ReflectorWidth
			c.ReflectorWidth = 0
		} else {
			c.ReflectorWidth = g.lastStage
			if c.ReflectorDistance == 0 {
				c.ReflectorDistance = 2
			}
		}
	}
	if repeating(ebiten.KeySemicolon) {
		c.ReflectorDistance = clampFloat(c.ReflectorDistance-stageStep, 0, 5)
	}
	if repeating(ebiten.KeyQuote) {
		c.ReflectorDistance = clampFloat(c.ReflectorDistance+stageStep, 0, 5)
	}
	if justPressed(ebiten.KeyL) {
		c = c.SetLambdaFraction(0.25)
	}
	if justPressed(ebiten.KeyK) {
		c = c.SetLambdaFraction(0.5)
	}
	if justPressed(ebiten.KeyF) {
		c = acoustic.Focus(c, s.Probe)
	}

	if justPressed(ebiten.KeyTab) {
		g.selected = (g.selected + 1) % c.Count
	}
	if g.selected >= c.Count {
		g.selected = c.Count - 1
	}
	if justPressed(ebiten.KeyP) {
		c = c.TogglePolarity(g.selected)
	}
	if justPressed(ebiten.KeyO) {
		c = c.ToggleFrontDown(g.selected)
	}
	if repeating(ebiten.KeyComma) {
		c = c.SetDelay(g.selected, c.DelayMs[g.selected]-delayStep)
		c.Optimized = false
	}
	if repeating(ebiten.KeyPeriod) {
		c = c.SetDelay(g.selected, c.DelayMs[g.selected]+delayStep)
		c.Optimized = false
	}
	s.Config = c
}

// handlePointer feeds mouse, wheel and touch input to the view controller.
func (g *Game) handlePointer() {
	sources := acoustic.GenerateSources(g.state.Config.Normalize())

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ctrl.PointerDown(float64(mx), float64(my), g.state.Probe, sources)
	}
	if !g.touching && g.ctrl.Active() {
		switch {
		case !g.inside(mx, my):
			g.ctrl.Cancel()
		case !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			g.ctrl.PointerUp()
		default:
			g.state.Config, g.state.Probe = g.ctrl.PointerMove(float64(mx), float64(my), g.state.Config, g.state.Probe)
		}
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.ctrl.Wheel(wy)
	}

	g.handleTouch(sources)
}

func (g *Game) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// handleTouch maps the first finger onto the pointer gestures and a second
// finger onto pinch zoom.
func (g *Game) handleTouch(sources []acoustic.Source) {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) >= 2 {
		if g.touching {
			g.ctrl.Cancel()
			g.touching = false
		}
		x0, y0 := ebiten.TouchPosition(g.touchIDs[0])
		x1, y1 := ebiten.TouchPosition(g.touchIDs[1])
		d := math.Hypot(float64(x1-x0), float64(y1-y0))
		if g.pinchDist > 0 && d > 0 {
			g.ctrl.SetView(g.ctrl.View().ZoomBy(d / g.pinchDist))
		}
		g.pinchDist = d
		return
	}
	g.pinchDist = 0

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if g.touching {
			break
		}
		x, y := ebiten.TouchPosition(id)
		g.touchID, g.touching = id, true
		g.ctrl.PointerDown(float64(x), float64(y), g.state.Probe, sources)
	}
	if !g.touching {
		return
	}
	if inpututil.IsTouchJustReleased(g.touchID) {
		g.ctrl.PointerUp()
		g.touching = false
		return
	}
	x, y := ebiten.TouchPosition(g.touchID)
	g.state.Config, g.state.Probe = g.ctrl.PointerMove(float64(x), float64(y), g.state.Config, g.state.Probe)
}
