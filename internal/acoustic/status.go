package acoustic

import "math"

// StatusKind summarises how the spacing relates to the wavelength.
type StatusKind int

const (
	StatusStandard StatusKind = iota
	StatusPointSource
	StatusOptimal
	StatusAliasing
)

func (k StatusKind) String() string {
	switch k {
	case StatusPointSource:
		return "POINT SOURCE"
	case StatusOptimal:
		return "OPTIMAL λ/4"
	case StatusAliasing:
		return "ALIASING"
	default:
		return "STANDARD"
	}
}

// Status is the HUD readout for a configuration.
type Status struct {
	Wavelength float64
	Kind       StatusKind
	// EndFireDelayMs is the per-step delay that steers an end-fire array,
	// zero unless the array is end-fire with more than one source.
	EndFireDelayMs float64
}

// ArrayStatus classifies c. Aliasing starts at 2/3 of a wavelength; the
// optimum is within 15% of a quarter wavelength.
func ArrayStatus(c Config) Status {
	lambda := c.Wavelength()
	st := Status{Wavelength: lambda}
	quarter := lambda / 4
	switch {
	case c.Count > 1 && c.Spacing > 2.0/3.0*lambda:
		st.Kind = StatusAliasing
	case c.Count > 1 && math.Abs(c.Spacing-quarter) < quarter*0.15:
		st.Kind = StatusOptimal
	case c.Count == 1:
		st.Kind = StatusPointSource
	default:
		st.Kind = StatusStandard
	}
	if c.Mode == EndFire && c.Count > 1 {
		st.EndFireDelayMs = c.Spacing / SpeedOfSound * 1000
	}
	return st
}
