package acoustic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleSourceFieldIsRadial(t *testing.T) {
	for _, f := range []float64{20, 63, 120, 200} {
		c := Config{Frequency: f, Count: 1, Spacing: 1}
		src := GenerateSources(c)
		s := NewSampler(c, src, 3.7)

		const r = 2.3
		var ref float64
		for i := 0; i < 16; i++ {
			a := float64(i) * math.Pi / 8
			p := Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
			dir := Cardioid(src[0], p)
			if dir < 1e-3 {
				continue
			}
			norm := s.Pressure(p) / dir
			if i == 0 {
				ref = norm
				continue
			}
			assert.InDelta(t, ref, norm, 1e-9, "f=%v angle=%v", f, a)
		}
	}
}

func TestCardioidLaw(t *testing.T) {
	up := Source{}
	down := Source{FrontDown: true}

	assert.InDelta(t, 1, Cardioid(up, Point{Y: -2}), 1e-12)
	assert.InDelta(t, 0.5, Cardioid(up, Point{X: 2}), 1e-12)
	assert.InDelta(t, 0, Cardioid(up, Point{Y: 2}), 1e-12)
	assert.InDelta(t, 1, Cardioid(down, Point{Y: 2}), 1e-12)
	assert.Equal(t, 1.0, Cardioid(up, Point{}))

	a := math.Pi / 3
	p := Point{X: math.Sin(a), Y: -math.Cos(a)}
	assert.InDelta(t, (1+math.Cos(a))/2, Cardioid(up, p), 1e-12)
}

func TestHalfWavelengthReinforcesOnBisector(t *testing.T) {
	c := Config{Frequency: 85, Count: 2}
	c.Spacing = c.Wavelength() / 2
	eff := EffectiveSources(c, GenerateSources(c))

	for _, y := range []float64{-1, -3, -7.5} {
		a := Analyze(c, eff, Point{Y: y})
		assert.InDelta(t, a.MagnitudeSum, a.Magnitude, 1e-9, "y=%v", y)
		assert.Equal(t, Reinforcement, a.State)
	}
}

func TestQuarterWavelengthOnOffAxisRatio(t *testing.T) {
	c := Config{Frequency: 85, Count: 2}
	c.Spacing = c.Wavelength() / 4
	src := GenerateSources(c)

	const r = 5
	for _, s := range src {
		on := Point{X: s.Pos.X, Y: s.Pos.Y - r}
		side := Point{X: s.Pos.X + r, Y: s.Pos.Y}
		one := NewSampler(c, []Source{s}, 0)
		ratio := one.Analyze(on).Magnitude / one.Analyze(side).Magnitude
		assert.InDelta(t, Cardioid(s, on)/Cardioid(s, side), ratio, 1e-9)
		assert.InDelta(t, 2, ratio, 1e-9)
	}
}

func TestDistanceFloorAvoidsSingularity(t *testing.T) {
	c := Config{Frequency: 60, Count: 1, Spacing: 1}
	s := NewSampler(c, GenerateSources(c), 1)

	v := s.Pressure(Point{})
	assert.False(t, math.IsNaN(v))
	assert.False(t, math.IsInf(v, 0))
	assert.LessOrEqual(t, math.Abs(v), 1/MinDistance)
}

func TestDecibelsFloor(t *testing.T) {
	assert.InDelta(t, -140, Decibels(0), 1e-9)
	assert.InDelta(t, 0, Decibels(1), 1e-6)
	assert.InDelta(t, 0, Decibels(-1), 1e-6)
}

func TestReflectorToggleLeavesNoResidue(t *testing.T) {
	c := Config{Frequency: 70, Count: 3, Spacing: 1.2, ReflectorDistance: 2.5, ReflectorWidth: 8}
	p := Point{X: 4, Y: 1}

	with := NewSampler(c, EffectiveSources(c, GenerateSources(c)), 2)
	require.Equal(t, 6, with.Sources())

	c.ReflectorWidth = 0
	without := NewSampler(c, EffectiveSources(c, GenerateSources(c)), 2)
	bare := NewSampler(Config{Frequency: 70, Count: 3, Spacing: 1.2}, GenerateSources(c), 2)

	assert.Equal(t, 3, without.Sources())
	assert.Equal(t, bare.Pressure(p), without.Pressure(p))
	assert.NotEqual(t, with.Pressure(p), without.Pressure(p))
}

func TestMirrorContributionScaled(t *testing.T) {
	c := Config{Frequency: 60, Count: 1, Spacing: 1, ReflectorDistance: 2, ReflectorWidth: 4}
	eff := EffectiveSources(c, GenerateSources(c))
	mirror := eff[1]
	unscaled := mirror
	unscaled.Reflection = false

	p := Point{X: 1, Y: 1}
	scaled := NewSampler(c, []Source{mirror}, 0).Analyze(p).Magnitude
	plain := NewSampler(c, []Source{unscaled}, 0).Analyze(p).Magnitude
	assert.InDelta(t, ReflectionGain*plain, scaled, 1e-12)
}

func TestInversionFlipsPressure(t *testing.T) {
	c := Config{Frequency: 60, Count: 1, Spacing: 1}
	p := Point{X: 0.3, Y: -2}
	normal := NewSampler(c, GenerateSources(c), 1.3).Pressure(p)
	inv := NewSampler(c, GenerateSources(c.TogglePolarity(0)), 1.3).Pressure(p)

	assert.InDelta(t, -normal, inv, 1e-12)
}
