package acoustic

import "math"

const (
	// MinDistance floors the source distance used for 1/d spreading.
	MinDistance = 0.1
	// DecibelFloor keeps log10 away from zero.
	DecibelFloor = 1e-7
	// PhaseRate converts simulation time into the animated phase term.
	PhaseRate = 0.5
)

// emitter is a Source flattened for the per-pixel loop.
type emitter struct {
	x, y   float64
	frontY float64
	gain   float64
	mirror bool
	// offset is the constant phase: -Phase plus pi when inverted.
	offset float64
}

// Sampler evaluates the pressure field for one frame. It is immutable after
// construction and safe for concurrent use by render workers.
type Sampler struct {
	k         float64
	timePhase float64
	emitters  []emitter
}

// NewSampler prepares a sampler over an effective source set at simulation
// time t.
func NewSampler(c Config, effective []Source, t float64) *Sampler {
	s := &Sampler{
		k:         c.WaveNumber(),
		timePhase: t * PhaseRate,
		emitters:  make([]emitter, len(effective)),
	}
	for i, src := range effective {
		off := -src.Phase
		if src.Inverted {
			off += math.Pi
		}
		s.emitters[i] = emitter{
			x:      src.Pos.X,
			y:      src.Pos.Y,
			frontY: src.Front().Y,
			gain:   src.Gain(),
			mirror: src.Reflection,
			offset: off,
		}
	}
	return s
}

// EmitterStride is the number of float32 values Pack writes per source.
const EmitterStride = 5

// Pack appends the flattened source table (x, y, frontY, gain, phase offset)
// to dst for upload to a device.
func (s *Sampler) Pack(dst []float32) []float32 {
	for _, e := range s.emitters {
		dst = append(dst, float32(e.x), float32(e.y), float32(e.frontY), float32(e.gain), float32(e.offset))
	}
	return dst
}

// WaveNumber returns k for the frame.
func (s *Sampler) WaveNumber() float64 { return s.k }

// Sources reports how many effective sources the sampler sums.
func (s *Sampler) Sources() int { return len(s.emitters) }

// TimePhase returns the animated phase term for the frame.
func (s *Sampler) TimePhase() float64 { return s.timePhase }

// Pressure returns the signed instantaneous pressure at p.
func (s *Sampler) Pressure(p Point) float64 {
	return s.pressureAt(p.X, p.Y)
}

func (s *Sampler) pressureAt(px, py float64) float64 {
	var sum float64
	for i := range s.emitters {
		e := &s.emitters[i]
		amp, phase := s.contribution(e, px, py)
		sum += amp * math.Sin(phase-s.timePhase)
	}
	return sum
}

// Decibels returns the field level at p.
func (s *Sampler) Decibels(p Point) float64 {
	return Decibels(s.pressureAt(p.X, p.Y))
}

// DecibelsAt is Decibels without the Point wrapper, for raster loops.
func (s *Sampler) DecibelsAt(x, y float64) float64 {
	return Decibels(s.pressureAt(x, y))
}

// contribution returns the directional, attenuated amplitude of e at (px, py)
// and its steady-state phase.
func (s *Sampler) contribution(e *emitter, px, py float64) (float64, float64) {
	dx := px - e.x
	dy := py - e.y
	dist := math.Sqrt(dx*dx + dy*dy)
	cos := 1.0
	if dist > 0 {
		cos = e.frontY * dy / dist
	}
	amp := e.gain / math.Max(MinDistance, dist) * (1 + cos) / 2
	return amp, s.k*dist + e.offset
}

// Decibels converts a signed pressure into dB relative to unit amplitude.
func Decibels(v float64) float64 {
	return 20 * math.Log10(math.Abs(v)+DecibelFloor)
}

// Cardioid returns the (1+cos(theta))/2 directivity of s towards p. A point
// on top of the source gets full gain.
func Cardioid(s Source, p Point) float64 {
	d := p.Sub(s.Pos)
	dist := math.Hypot(d.X, d.Y)
	if dist == 0 {
		return 1
	}
	f := s.Front()
	return (1 + (f.X*d.X+f.Y*d.Y)/dist) / 2
}
