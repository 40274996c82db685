// Package observability exposes per-frame render metrics to Prometheus.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FrameCollector bundles the metrics recorded once per rendered frame.
type FrameCollector struct {
	gatherer prometheus.Gatherer

	Frames        *prometheus.CounterVec
	FrameDuration *prometheus.HistogramVec
	Pixels        prometheus.Counter
	Sources       prometheus.Gauge
	Coherence     prometheus.Gauge
	Magnitude     prometheus.Gauge
}

// NewFrameCollector registers the frame metrics against reg, defaulting to the
// global registry when nil. Registering twice returns the existing collectors.
func NewFrameCollector(reg prometheus.Registerer) (*FrameCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subarray_frames_total",
		Help: "Rendered heatmap frames, labeled by backend.",
	}, []string{"backend"}), "subarray_frames_total")
	if err != nil {
		return nil, err
	}
	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "subarray_frame_render_seconds",
		Help:    "Time spent filling the heatmap raster per frame.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.016, 0.033, 0.05, 0.1, 0.25, 0.5},
	}, []string{"backend"}), "subarray_frame_render_seconds")
	if err != nil {
		return nil, err
	}
	pixels, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subarray_pixels_sampled_total",
		Help: "Pixels evaluated by the field sampler.",
	}), "subarray_pixels_sampled_total")
	if err != nil {
		return nil, err
	}
	sources, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "subarray_effective_sources",
		Help: "Sources summed per pixel, including reflections.",
	}), "subarray_effective_sources")
	if err != nil {
		return nil, err
	}
	coherence, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "subarray_probe_coherence",
		Help: "Vector-sum coherence at the probe (0..1).",
	}), "subarray_probe_coherence")
	if err != nil {
		return nil, err
	}
	magnitude, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "subarray_probe_magnitude",
		Help: "Vector-sum magnitude at the probe.",
	}), "subarray_probe_magnitude")
	if err != nil {
		return nil, err
	}

	return &FrameCollector{
		gatherer:      gatherer,
		Frames:        frames,
		FrameDuration: durations,
		Pixels:        pixels,
		Sources:       sources,
		Coherence:     coherence,
		Magnitude:     magnitude,
	}, nil
}

// FrameStats is what one frame reports.
type FrameStats struct {
	Backend   string
	Elapsed   time.Duration
	Pixels    int
	Sources   int
	Coherence float64
	Magnitude float64
}

// ObserveFrame records one rendered frame. A nil collector is a no-op.
func (c *FrameCollector) ObserveFrame(s FrameStats) {
	if c == nil {
		return
	}
	backend := s.Backend
	if backend == "" {
		backend = "unknown"
	}
	c.Frames.WithLabelValues(backend).Inc()
	c.FrameDuration.WithLabelValues(backend).Observe(s.Elapsed.Seconds())
	c.Pixels.Add(float64(s.Pixels))
	c.Sources.Set(float64(s.Sources))
	c.Coherence.Set(s.Coherence)
	c.Magnitude.Set(s.Magnitude)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *FrameCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
