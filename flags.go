package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
)

// options carries every command-line setting shared by the viewer and the
// headless subcommands.
type options struct {
	width, height int
	scale         float64

	freq       float64
	count      int
	spacing    float64
	mode       string
	dual       bool
	margin     float64
	stageDist  float64
	stageWidth float64

	workers      int
	preferOpenCL bool

	enableAudio bool
	toneWAV     string

	debug       bool
	metricsAddr string
	cpuProfile  string
}

func defaultOptions() options {
	d := acoustic.DefaultConfig()
	return options{
		width:   defaultWidth,
		height:  defaultHeight,
		scale:   windowScale,
		freq:    d.Frequency,
		count:   d.Count,
		spacing: d.Spacing,
		mode:    d.Mode.String(),
	}
}

// bind registers the flags as persistent so every subcommand sees them.
func (o *options) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.IntVar(&o.width, "width", o.width, "surface width in pixels")
	f.IntVar(&o.height, "height", o.height, "surface height in pixels")
	f.Float64Var(&o.scale, "scale", o.scale, "window scale factor")

	f.Float64Var(&o.freq, "freq", o.freq, "frequency in Hz (20-200)")
	f.IntVar(&o.count, "count", o.count, "number of sources (1-8)")
	f.Float64Var(&o.spacing, "spacing", o.spacing, "source spacing in metres (0.2-4.0)")
	f.StringVar(&o.mode, "mode", o.mode, "array layout: broadside or endfire")
	f.BoolVar(&o.dual, "dual", o.dual, "mirror the array as two lanes")
	f.Float64Var(&o.margin, "margin", o.margin, "lateral lane offset for dual arrays in metres (0-5)")
	f.Float64Var(&o.stageDist, "stage-dist", o.stageDist, "distance from the array to the stage reflector in metres (0-5)")
	f.Float64Var(&o.stageWidth, "stage-width", o.stageWidth, "stage reflector width in metres (0-10, 0 disables)")

	f.IntVar(&o.workers, "workers", o.workers, "CPU render workers (0 uses every CPU)")
	f.BoolVar(&o.preferOpenCL, "prefer-opencl", o.preferOpenCL, "render the field with OpenCL when built with -tags opencl")

	f.BoolVar(&o.enableAudio, "enable-audio", o.enableAudio, "play the signal heard at the probe")
	f.StringVar(&o.toneWAV, "tone-wav", o.toneWAV, "loop this WAV at the probe instead of a sine tone")

	f.BoolVar(&o.debug, "debug", o.debug, "show the FPS overlay and log at debug level")
	f.StringVar(&o.metricsAddr, "metrics-addr", o.metricsAddr, "serve Prometheus metrics on this address, e.g. :9090")
	f.StringVar(&o.cpuProfile, "cpuprofile", o.cpuProfile, "write a CPU profile to this file")
}

// config builds the initial array snapshot. Out-of-range values are clamped;
// only an unknown mode is rejected.
func (o options) config() (acoustic.Config, error) {
	mode, ok := acoustic.ParseArrayMode(o.mode)
	if !ok {
		return acoustic.Config{}, fmt.Errorf("unknown array mode %q (want broadside or endfire)", o.mode)
	}
	c := acoustic.DefaultConfig()
	c.Frequency = o.freq
	c.Count = o.count
	c.Spacing = o.spacing
	c.Mode = mode
	c.Dual = o.dual
	c.LateralMargin = clampFloat(o.margin, 0, 5)
	c.ReflectorDistance = clampFloat(o.stageDist, 0, 5)
	c.ReflectorWidth = clampFloat(o.stageWidth, 0, 10)
	return c.Normalize(), nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
