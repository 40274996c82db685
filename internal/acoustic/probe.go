package acoustic

import "math"

// Probe classification thresholds.
const (
	CancellationRatio   = 0.15
	ReinforcementCutoff = 0.985

	// TraceStep is the phase advanced per horizontal pixel of the scope trace.
	TraceStep = 0.2
)

// Classification is the probe state shown by the oscilloscope overlay.
type Classification int

const (
	Normal Classification = iota
	Cancellation
	Reinforcement
)

// Label returns the banner text for the classification; Normal has none.
func (c Classification) Label() string {
	switch c {
	case Cancellation:
		return "CANCELLATION"
	case Reinforcement:
		return "PHASE 0 - MAX SUM"
	default:
		return ""
	}
}

func (c Classification) String() string {
	switch c {
	case Cancellation:
		return "cancellation"
	case Reinforcement:
		return "reinforcement"
	default:
		return "normal"
	}
}

// Analysis is the steady-state phasor sum at the probe.
type Analysis struct {
	Real, Imag   float64
	Magnitude    float64
	MagnitudeSum float64
	// MaxSingle is the largest contribution of any non-reflected source.
	MaxSingle float64
	Coherence float64
	State     Classification
}

// Phase returns the angle of the phasor sum.
func (a Analysis) Phase() float64 { return math.Atan2(a.Imag, a.Real) }

// Analyze sums the effective sources at p as complex phasors.
func Analyze(c Config, effective []Source, p Point) Analysis {
	return NewSampler(c, effective, 0).Analyze(p)
}

// Analyze evaluates the sampler's sources at p without the time term.
func (s *Sampler) Analyze(p Point) Analysis {
	var a Analysis
	for i := range s.emitters {
		e := &s.emitters[i]
		amp, phase := s.contribution(e, p.X, p.Y)
		a.Real += amp * math.Cos(phase)
		a.Imag += amp * math.Sin(phase)
		a.MagnitudeSum += amp
		if !e.mirror && amp > a.MaxSingle {
			a.MaxSingle = amp
		}
	}
	a.Magnitude = math.Hypot(a.Real, a.Imag)
	if a.MagnitudeSum > 0 {
		a.Coherence = a.Magnitude / a.MagnitudeSum
	}
	switch {
	case a.MaxSingle > 0 && a.Magnitude < CancellationRatio*a.MaxSingle:
		a.State = Cancellation
	case a.Coherence > ReinforcementCutoff:
		a.State = Reinforcement
	default:
		a.State = Normal
	}
	return a
}

// Trace fills dst with the synthetic scope waveform for the given time phase
// and returns it. It is a drawing aid, not a sampled signal.
func (a Analysis) Trace(timePhase float64, dst []float64) []float64 {
	total := a.Phase()
	for i := range dst {
		dst[i] = a.Magnitude * math.Sin(timePhase+float64(i)*TraceStep-total)
	}
	return dst
}
