package acoustic

import "math"

// Physical and operating limits shared by the generator, sampler and analyzer.
const (
	SpeedOfSound = 340.0 // metres per second

	MaxSources   = 8
	MinFrequency = 20.0
	MaxFrequency = 200.0
	MinSpacing   = 0.2
	MaxSpacing   = 4.0
	MaxDelayMs   = 50.0

	// ReflectionGain is the amplitude applied to mirrored sources (about -4 dB).
	ReflectionGain = 0.6
)

// ArrayMode selects the array geometry.
type ArrayMode int

const (
	// Broadside lays sources side by side along X.
	Broadside ArrayMode = iota
	// EndFire lays sources one behind the other along Y.
	EndFire
)

func (m ArrayMode) String() string {
	switch m {
	case EndFire:
		return "endfire"
	default:
		return "broadside"
	}
}

// ParseArrayMode maps a flag value onto an ArrayMode.
func ParseArrayMode(s string) (ArrayMode, bool) {
	switch s {
	case "broadside", "bs":
		return Broadside, true
	case "endfire", "end-fire", "ef":
		return EndFire, true
	}
	return Broadside, false
}

// Config is an immutable snapshot of the array settings. It is passed by value
// and replaced wholesale on every change. Per-source settings live in
// fixed-capacity arrays; entries at or beyond Count are ignored but kept so
// that raising the count restores them.
type Config struct {
	Frequency         float64
	Count             int
	Spacing           float64
	LateralMargin     float64
	Mode              ArrayMode
	Dual              bool
	ReflectorDistance float64
	ReflectorWidth    float64
	Optimized         bool

	Inverted  [MaxSources]bool
	FrontDown [MaxSources]bool
	DelayMs   [MaxSources]float64
}

// DefaultConfig returns the configuration the application starts with.
func DefaultConfig() Config {
	return Config{
		Frequency: 60,
		Count:     4,
		Spacing:   1.4,
		Mode:      Broadside,
	}
}

// Normalize clamps every field to its operating range. The generator assumes
// a normalised snapshot.
func (c Config) Normalize() Config {
	c.Frequency = clamp(c.Frequency, MinFrequency, MaxFrequency)
	if c.Count < 1 {
		c.Count = 1
	} else if c.Count > MaxSources {
		c.Count = MaxSources
	}
	c.Spacing = clamp(c.Spacing, MinSpacing, MaxSpacing)
	c.LateralMargin = math.Max(0, c.LateralMargin)
	c.ReflectorDistance = math.Max(0, c.ReflectorDistance)
	c.ReflectorWidth = math.Max(0, c.ReflectorWidth)
	for i := range c.DelayMs {
		c.DelayMs[i] = clamp(c.DelayMs[i], 0, MaxDelayMs)
	}
	return c
}

// ReflectorEnabled reports whether the stage reflector contributes virtual
// sources. A zero distance or a zero width disables it.
func (c Config) ReflectorEnabled() bool {
	return c.ReflectorDistance > 0 && c.ReflectorWidth > 0
}

// Wavelength returns c/f in metres.
func (c Config) Wavelength() float64 {
	if c.Frequency <= 0 {
		return 0
	}
	return SpeedOfSound / c.Frequency
}

// WaveNumber returns k = 2*pi*f/c.
func (c Config) WaveNumber() float64 {
	return 2 * math.Pi * c.Frequency / SpeedOfSound
}

// TogglePolarity flips the polarity of source i. Out of range indices are ignored.
func (c Config) TogglePolarity(i int) Config {
	if i >= 0 && i < MaxSources {
		c.Inverted[i] = !c.Inverted[i]
	}
	return c
}

// ToggleFrontDown flips the facing direction of source i.
func (c Config) ToggleFrontDown(i int) Config {
	if i >= 0 && i < MaxSources {
		c.FrontDown[i] = !c.FrontDown[i]
	}
	return c
}

// SetDelay stores the electronic delay of source i, clamped to [0, MaxDelayMs].
func (c Config) SetDelay(i int, ms float64) Config {
	if i >= 0 && i < MaxSources {
		c.DelayMs[i] = clamp(ms, 0, MaxDelayMs)
	}
	return c
}

// SetLambdaFraction sets the spacing to a fraction of the wavelength.
func (c Config) SetLambdaFraction(frac float64) Config {
	c.Spacing = clamp(c.Wavelength()*frac, MinSpacing, MaxSpacing)
	c.Optimized = false
	return c
}

// WithSpacing returns c with a clamped spacing and the optimized flag cleared.
func (c Config) WithSpacing(s float64) Config {
	c.Spacing = clamp(s, MinSpacing, MaxSpacing)
	c.Optimized = false
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
