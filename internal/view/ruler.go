package view

// MinorTicks is the number of subdivisions drawn after each whole metre.
const MinorTicks = 9

// Tick is one ruler mark along an axis, in surface pixels.
type Tick struct {
	Pos   float64
	Metre int
	Major bool
}

// XTicks returns the bottom ruler marks for the visible surface.
func (v View) XTicks(dst []Tick) []Tick {
	x0, x1, _, _ := v.VisibleRange()
	cx, _ := v.Origin()
	return v.appendTicks(dst, cx, float64(v.Width), x0, x1)
}

// YTicks returns the side ruler marks for the visible surface.
func (v View) YTicks(dst []Tick) []Tick {
	_, _, y0, y1 := v.VisibleRange()
	_, cy := v.Origin()
	return v.appendTicks(dst, cy, float64(v.Height), y0, y1)
}

// appendTicks emits a major tick for every whole metre on screen followed by
// its minor ticks at 0.1 m steps, stopping at the far edge.
func (v View) appendTicks(dst []Tick, origin, extent float64, lo, hi int) []Tick {
	dst = dst[:0]
	for m := lo; m <= hi; m++ {
		p := origin + float64(m)*v.Zoom
		if p < 0 || p > extent {
			continue
		}
		dst = append(dst, Tick{Pos: p, Metre: m, Major: true})
		for sm := 1; sm <= MinorTicks; sm++ {
			sp := p + float64(sm)*0.1*v.Zoom
			if sp > extent {
				break
			}
			dst = append(dst, Tick{Pos: sp, Metre: m})
		}
	}
	return dst
}
