package tone

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
)

func samples(t *testing.T, s *Stream, frames int) []int16 {
	t.Helper()
	buf := make([]byte, frames*bytesPerFrame+3)
	n, err := s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, frames*bytesPerFrame, n)
	out := make([]int16, frames)
	for i := range out {
		l := int16(binary.LittleEndian.Uint16(buf[i*4:]))
		r := int16(binary.LittleEndian.Uint16(buf[i*4+2:]))
		require.Equal(t, l, r)
		out[i] = l
	}
	return out
}

func peak(v []int16) float64 {
	m := 0.0
	for _, x := range v {
		m = math.Max(m, math.Abs(float64(x)))
	}
	return m
}

func TestSilentUntilProbeSet(t *testing.T) {
	s := NewStream(48000, 1, 1, nil)
	assert.Zero(t, peak(samples(t, s, 256)))
}

func TestSineFollowsCoherence(t *testing.T) {
	s := NewStream(48000, 1, 1, nil)
	s.SetProbe(100, acoustic.Analysis{Coherence: 0.5}, true)

	got := samples(t, s, 480)

	assert.InDelta(t, 0.5*pcm16Max, peak(got), 0.01*pcm16Max)
	assert.Equal(t, 0.5, s.Level())
	// 100 Hz at 48 kHz: one full period every 480 frames.
	assert.Equal(t, int16(0), got[0])
	assert.Greater(t, got[120], int16(0))
	assert.Less(t, got[360], int16(0))
}

func TestMutedWhenPausedOrCancelled(t *testing.T) {
	s := NewStream(48000, 1, 1, nil)
	s.SetProbe(60, acoustic.Analysis{Coherence: 0.9}, false)
	assert.Zero(t, peak(samples(t, s, 64)))

	s.SetProbe(60, acoustic.Analysis{Coherence: 0.9, State: acoustic.Cancellation}, true)
	assert.Zero(t, peak(samples(t, s, 64)))
}

func TestSmoothingRampsLevel(t *testing.T) {
	s := NewStream(48000, 1, 0.01, nil)
	s.SetProbe(60, acoustic.Analysis{Coherence: 1}, true)

	samples(t, s, 10)
	early := s.Level()
	samples(t, s, 2000)

	assert.Less(t, early, 0.2)
	assert.InDelta(t, 1, s.Level(), 1e-6)
}

func TestLoopReplacesSine(t *testing.T) {
	s := NewStream(48000, 1, 1, []float32{0.5, -0.5, 2})
	s.SetProbe(60, acoustic.Analysis{Coherence: 1}, true)

	got := samples(t, s, 4)

	assert.Equal(t, []int16{16383, -16383, pcm16Max, 16383}, got)
}
