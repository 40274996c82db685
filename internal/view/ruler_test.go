package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXTicksMajorAndMinor(t *testing.T) {
	v := New(100, 40)
	v.Zoom = 50

	ticks := v.XTicks(nil)

	var majors []int
	minors := 0
	for _, tk := range ticks {
		if tk.Major {
			majors = append(majors, tk.Metre)
		} else {
			minors++
		}
	}
	// Metres -1, 0 and 1 sit at x = 0, 50 and 100; only 0 and -1 have room
	// for their minor ticks.
	assert.Equal(t, []int{-1, 0, 1}, majors)
	assert.Equal(t, 2*MinorTicks, minors)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0.0, ticks[0].Pos)
	assert.InDelta(t, 5.0, ticks[1].Pos, 1e-9)
}

func TestYTicksFollowPan(t *testing.T) {
	v := New(40, 100)
	v.Zoom = 50
	v.PanY = 25

	ticks := v.YTicks(nil)

	require.NotEmpty(t, ticks)
	assert.True(t, ticks[0].Major)
	assert.Equal(t, -1, ticks[0].Metre)
	assert.Equal(t, 25.0, ticks[0].Pos)
	for _, tk := range ticks {
		assert.GreaterOrEqual(t, tk.Pos, 0.0)
		assert.LessOrEqual(t, tk.Pos, 100.0)
	}
}

func TestTicksReuseBuffer(t *testing.T) {
	v := New(300, 300)
	buf := make([]Tick, 0, 256)

	got := v.XTicks(buf)

	assert.Equal(t, cap(buf), cap(got))
	assert.Equal(t, len(v.XTicks(got)), len(got))
}
