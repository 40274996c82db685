// Package tone synthesises what a listener at the probe would hear: the
// array frequency, or a looped recording, scaled by the probe coherence.
package tone

import (
	"math"
	"sync"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
)

const (
	bytesPerFrame = 4 // 16-bit stereo
	pcm16Max      = 32767
)

// Stream is an endless 16-bit little-endian stereo PCM reader. SetProbe may
// be called from the game loop while the audio driver reads.
type Stream struct {
	mu sync.Mutex

	sampleRate float64
	volume     float64
	smoothing  float64

	freq   float64
	target float64
	level  float64
	phase  float64

	loop []float32
	pos  int
}

// NewStream returns a silent stream. loop, when non-empty, replaces the sine
// tone. volume scales full coherence; smoothing is the per-sample approach
// rate towards a new level in (0, 1].
func NewStream(sampleRate int, volume, smoothing float64, loop []float32) *Stream {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = 1
	}
	return &Stream{
		sampleRate: float64(sampleRate),
		volume:     math.Max(0, math.Min(1, volume)),
		smoothing:  smoothing,
		loop:       loop,
	}
}

// SetProbe retunes the stream to the array frequency and the coherence at
// the probe. Cancellation is near silent and a paused simulation is mute.
func (s *Stream) SetProbe(freq float64, a acoustic.Analysis, playing bool) {
	target := a.Coherence
	if !playing || a.State == acoustic.Cancellation {
		target = 0
	}
	s.mu.Lock()
	s.freq = freq
	s.target = math.Max(0, math.Min(1, target))
	s.mu.Unlock()
}

// Level returns the current smoothed gain.
func (s *Stream) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Stream) Read(p []byte) (int, error) {
	n := len(p) - len(p)%bytesPerFrame
	if n == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	step := 2 * math.Pi * s.freq / s.sampleRate
	for i := 0; i < n; i += bytesPerFrame {
		s.level += s.smoothing * (s.target - s.level)
		v := int16(s.next(step) * s.level * s.volume * pcm16Max)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return n, nil
}

func (s *Stream) next(step float64) float64 {
	if len(s.loop) > 0 {
		v := float64(s.loop[s.pos])
		s.pos = (s.pos + 1) % len(s.loop)
		return math.Max(-1, math.Min(1, v))
	}
	v := math.Sin(s.phase)
	s.phase = math.Mod(s.phase+step, 2*math.Pi)
	return v
}

func (s *Stream) Close() error { return nil }
