package acoustic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSingleSourceFullyCoherent(t *testing.T) {
	c := Config{Frequency: 60, Count: 1, Spacing: 1}
	eff := EffectiveSources(c, GenerateSources(c))

	a := Analyze(c, eff, Point{X: 1, Y: -3})

	assert.InDelta(t, 1.0, a.Coherence, 1e-12)
	assert.InDelta(t, a.MagnitudeSum, a.Magnitude, 1e-12)
	assert.Equal(t, a.MagnitudeSum, a.MaxSingle)
	assert.Equal(t, Reinforcement, a.State)
}

func TestAnalyzeOppositePolarityCancels(t *testing.T) {
	c := Config{Frequency: 60, Count: 2, Spacing: 1}
	c = c.TogglePolarity(1)
	eff := EffectiveSources(c, GenerateSources(c))

	a := Analyze(c, eff, Point{Y: -4})

	assert.InDelta(t, 0, a.Magnitude, 1e-12)
	assert.InDelta(t, 0, a.Coherence, 1e-12)
	assert.Equal(t, Cancellation, a.State)
	assert.Equal(t, "CANCELLATION", a.State.Label())
}

func TestAnalyzeCoherenceTrendsToZero(t *testing.T) {
	c := Config{Frequency: 60, Count: 2, Spacing: 1}
	p := Point{Y: -4}

	prev := math.Inf(1)
	for _, ms := range []float64{0, 2, 4, 6, 8.333} {
		cc := c.SetDelay(1, ms)
		a := Analyze(cc, GenerateSources(cc), p)
		assert.Less(t, a.Coherence, prev+1e-12, "delay %v", ms)
		prev = a.Coherence
	}
	assert.Less(t, prev, 0.01)
}

func TestAnalyzeZeroDenominator(t *testing.T) {
	c := Config{Frequency: 60, Count: 1, Spacing: 1}

	// Directly behind a cardioid the only contribution is zero.
	a := Analyze(c, GenerateSources(c), Point{Y: 3})

	assert.Zero(t, a.MagnitudeSum)
	assert.Zero(t, a.Coherence)
	assert.Equal(t, Normal, a.State)
	assert.Empty(t, a.State.Label())

	empty := Analyze(c, nil, Point{})
	assert.Zero(t, empty.Coherence)
}

func TestAnalyzeIgnoresReflectionsForMaxSingle(t *testing.T) {
	c := Config{Frequency: 60, Count: 1, Spacing: 1, ReflectorDistance: 0.5, ReflectorWidth: 4}
	eff := EffectiveSources(c, GenerateSources(c))
	require.Len(t, eff, 2)

	// Close to the mirror, mostly behind the real source.
	p := Point{X: 1, Y: 1.2}
	a := Analyze(c, eff, p)
	direct := NewSampler(c, eff[:1], 0).Analyze(p)

	assert.InDelta(t, direct.Magnitude, a.MaxSingle, 1e-12)
	assert.Greater(t, a.MagnitudeSum, a.MaxSingle)
}

func TestTraceFollowsPhasor(t *testing.T) {
	a := Analysis{Real: 0, Imag: 2, Magnitude: 2}
	trace := a.Trace(1.0, make([]float64, 120))

	require.Len(t, trace, 120)
	for i, v := range trace {
		want := 2 * math.Sin(1.0+float64(i)*TraceStep-math.Pi/2)
		assert.InDelta(t, want, v, 1e-12)
	}
}
