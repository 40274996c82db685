package acoustic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSourcesBroadsideCentered(t *testing.T) {
	c := Config{Frequency: 60, Count: 4, Spacing: 1.0, Mode: Broadside}

	got := GenerateSources(c)

	require.Len(t, got, 4)
	wantX := []float64{-1.5, -0.5, 0.5, 1.5}
	for i, s := range got {
		assert.InDelta(t, wantX[i], s.Pos.X, 1e-12, "source %d x", i)
		assert.Zero(t, s.Pos.Y, "source %d y", i)
		assert.Equal(t, i, s.Index)
		assert.False(t, s.Reflection)
	}
}

func TestGenerateSourcesEndFireStepsAlongY(t *testing.T) {
	c := Config{Frequency: 60, Count: 3, Spacing: 0.85, Mode: EndFire}

	got := GenerateSources(c)

	require.Len(t, got, 3)
	for i, s := range got {
		assert.Zero(t, s.Pos.X)
		assert.InDelta(t, float64(i)*0.85, got[0].Pos.Dist(s.Pos), 1e-12)
	}
}

func TestGenerateSourcesDualArrays(t *testing.T) {
	c := Config{Frequency: 60, Count: 2, Spacing: 1, LateralMargin: 3, Dual: true}

	got := GenerateSources(c)

	require.Len(t, got, 4)
	assert.InDelta(t, -3.5, got[0].Pos.X, 1e-12)
	assert.InDelta(t, -2.5, got[1].Pos.X, 1e-12)
	assert.InDelta(t, 2.5, got[2].Pos.X, 1e-12)
	assert.InDelta(t, 3.5, got[3].Pos.X, 1e-12)
	assert.Equal(t, []int{0, 1, 0, 1}, []int{got[0].Index, got[1].Index, got[2].Index, got[3].Index})
}

func TestGenerateSourcesPhaseFromDelay(t *testing.T) {
	c := Config{Frequency: 100, Count: 2, Spacing: 1}
	c = c.SetDelay(1, 2.5)

	got := GenerateSources(c)

	assert.Zero(t, got[0].Phase)
	assert.InDelta(t, -2*math.Pi*100*0.0025, got[1].Phase, 1e-12)

	c.Frequency = 50
	assert.InDelta(t, -2*math.Pi*50*0.0025, GenerateSources(c)[1].Phase, 1e-12)
}

func TestGenerateSourcesIdempotent(t *testing.T) {
	c := DefaultConfig()
	c.Dual = true
	c.LateralMargin = 2
	c = c.TogglePolarity(1).ToggleFrontDown(2).SetDelay(3, 4)

	assert.Equal(t, GenerateSources(c), GenerateSources(c))
}

func TestGenerateSourcesIgnoresSlotsPastCount(t *testing.T) {
	c := Config{Frequency: 60, Count: 2, Spacing: 1}
	c = c.SetDelay(5, 10).TogglePolarity(6)

	got := GenerateSources(c)

	require.Len(t, got, 2)
	c.Count = 7
	grown := GenerateSources(c)
	assert.Equal(t, 10.0, grown[5].DelayMs)
	assert.True(t, grown[6].Inverted)
}

func TestEffectiveSourcesReflector(t *testing.T) {
	c := Config{Frequency: 60, Count: 3, Spacing: 1, ReflectorDistance: 2, ReflectorWidth: 6}
	real := GenerateSources(c)

	eff := EffectiveSources(c, real)

	require.Len(t, eff, 2*len(real))
	for i, s := range real {
		r, v := eff[2*i], eff[2*i+1]
		assert.Equal(t, s, r)
		assert.True(t, v.Reflection)
		assert.Equal(t, s.Pos.X, v.Pos.X)
		assert.InDelta(t, 4-s.Pos.Y, v.Pos.Y, 1e-12)
		assert.Equal(t, !s.FrontDown, v.FrontDown)
		assert.Equal(t, ReflectionGain, v.Gain())
	}

	c.ReflectorWidth = 0
	assert.Equal(t, real, EffectiveSources(c, real))
	c.ReflectorWidth, c.ReflectorDistance = 6, 0
	assert.Equal(t, real, EffectiveSources(c, real))
}

func TestNearestSourceDistanceSkipsReflections(t *testing.T) {
	c := Config{Frequency: 60, Count: 1, Spacing: 1, ReflectorDistance: 1, ReflectorWidth: 4}
	eff := EffectiveSources(c, GenerateSources(c))

	assert.InDelta(t, 1.8, NearestSourceDistance(Point{Y: 1.8}, eff), 1e-12)
	assert.Zero(t, NearestSourceDistance(Point{}, nil))
}
