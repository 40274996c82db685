// Package sim advances the interference simulation one frame at a time.
//
// Step is a plain function of its inputs: the caller owns State and passes it
// in by value, and Step returns the next State together with everything the
// overlays need for the frame it just rendered.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/heatmap"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

const (
	// TimeStep is the simulation time added per frame while playing.
	TimeStep = 0.2
	// TraceSamples is the width, in pixels, of the oscilloscope trace.
	TraceSamples = 120
)

// DefaultProbe is where the microphone starts: on axis, in front of the array.
var DefaultProbe = acoustic.Point{X: 0, Y: -8}

// State is the application-owned simulation state carried between frames.
type State struct {
	Config  acoustic.Config
	Probe   acoustic.Point
	Time    float64
	Playing bool
}

// NewState starts a playing simulation at t=0 with the probe at DefaultProbe.
func NewState(cfg acoustic.Config) State {
	return State{Config: cfg.Normalize(), Probe: DefaultProbe, Playing: true}
}

// Input is the per-frame surface: where to render and with what.
type Input struct {
	View    view.View
	Backend heatmap.Backend
	Raster  *heatmap.Raster
}

// Frame is the derived output of one Step.
type Frame struct {
	Sources   []acoustic.Source
	Effective []acoustic.Source
	Sampler   *acoustic.Sampler
	Analysis  acoustic.Analysis
	Trace     []float64
	Status    acoustic.Status
	Nearest   float64

	Pixels  int
	Backend string
	Elapsed time.Duration
}

// Step renders the field for s into in.Raster, analyses the probe and
// returns the state for the next frame. dt is measured in frames; time only
// advances while s.Playing. On an empty surface nothing is rendered, s is
// returned unchanged and the error wraps heatmap.ErrEmptySurface.
func Step(ctx context.Context, s State, dt float64, in Input) (State, Frame, error) {
	if in.View.Empty() {
		return s, Frame{}, fmt.Errorf("step at t=%.1f: %w", s.Time, heatmap.ErrEmptySurface)
	}

	cfg := s.Config.Normalize()
	real := acoustic.GenerateSources(cfg)
	effective := acoustic.EffectiveSources(cfg, real)
	sampler := acoustic.NewSampler(cfg, effective, s.Time)

	start := time.Now()
	if err := in.Backend.Render(ctx, in.Raster, sampler, in.View); err != nil {
		return s, Frame{}, fmt.Errorf("render %s: %w", in.Backend.Name(), err)
	}

	analysis := sampler.Analyze(s.Probe)
	f := Frame{
		Sources:   real,
		Effective: effective,
		Sampler:   sampler,
		Analysis:  analysis,
		Trace:     analysis.Trace(sampler.TimePhase(), make([]float64, TraceSamples)),
		Status:    acoustic.ArrayStatus(cfg),
		Nearest:   acoustic.NearestSourceDistance(s.Probe, real),
		Pixels:    in.View.Width * in.View.Height,
		Backend:   in.Backend.Name(),
		Elapsed:   time.Since(start),
	}

	next := s
	next.Config = cfg
	if s.Playing && dt > 0 {
		next.Time += TimeStep * dt
	}
	return next, f, nil
}
