package acoustic

import "math"

// Point is a position in world metres. Y grows towards the bottom of the screen.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Source is a single point radiator derived from a Config.
type Source struct {
	Pos       Point
	Inverted  bool
	FrontDown bool
	DelayMs   float64
	// Phase is the constant offset produced by DelayMs at the configured
	// frequency: -(2*pi*f)*(delay/1000).
	Phase float64
	// Index is the per-source settings slot the source was built from.
	Index int
	// Reflection marks virtual sources mirrored by the stage reflector.
	Reflection bool
}

// Gain returns the fixed amplitude factor of the source.
func (s Source) Gain() float64 {
	if s.Reflection {
		return ReflectionGain
	}
	return 1
}

// Front returns the unit vector the source faces.
func (s Source) Front() Point {
	if s.FrontDown {
		return Point{Y: 1}
	}
	return Point{Y: -1}
}

// GenerateSources lays out the real sources described by c. The result order
// is stable: left array before right array, index 0..Count-1 within each.
func GenerateSources(c Config) []Source {
	n := c.Count
	if c.Dual {
		n *= 2
	}
	return AppendSources(make([]Source, 0, n), c)
}

// AppendSources appends the real sources described by c to dst.
func AppendSources(dst []Source, c Config) []Source {
	lanes := []float64{0}
	if c.Dual {
		lanes = []float64{-c.LateralMargin, c.LateralMargin}
	}
	start := len(dst)
	for _, off := range lanes {
		for i := 0; i < c.Count; i++ {
			var pos Point
			switch c.Mode {
			case EndFire:
				pos = Point{X: off, Y: -float64(i) * c.Spacing}
			default:
				total := float64(c.Count-1) * c.Spacing
				pos = Point{X: off - total/2 + float64(i)*c.Spacing}
			}
			dst = append(dst, Source{
				Pos:       pos,
				Inverted:  c.Inverted[i],
				FrontDown: c.FrontDown[i],
				DelayMs:   c.DelayMs[i],
				Index:     i,
			})
		}
	}
	omega := 2 * math.Pi * c.Frequency
	for i := start; i < len(dst); i++ {
		dst[i].Phase = -omega * (dst[i].DelayMs / 1000)
	}
	return dst
}

// Mirror returns the virtual source reflected about the plane y = distance.
func (s Source) Mirror(distance float64) Source {
	v := s
	v.Pos.Y = distance + (distance - s.Pos.Y)
	v.FrontDown = !s.FrontDown
	v.Reflection = true
	return v
}

// EffectiveSources returns the set the sampler sums over. With the reflector
// enabled every real source is immediately followed by its mirror.
func EffectiveSources(c Config, real []Source) []Source {
	if !c.ReflectorEnabled() {
		out := make([]Source, len(real))
		copy(out, real)
		return out
	}
	out := make([]Source, 0, 2*len(real))
	for _, s := range real {
		out = append(out, s, s.Mirror(c.ReflectorDistance))
	}
	return out
}

// NearestSourceDistance returns the distance from p to the closest real source,
// or 0 when there are none.
func NearestSourceDistance(p Point, sources []Source) float64 {
	best := math.Inf(1)
	for _, s := range sources {
		if s.Reflection {
			continue
		}
		if d := p.Dist(s.Pos); d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}
