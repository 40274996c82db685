package main

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/heatmap"
	"github.com/MauroCasarin/SONIDO/internal/logging"
	"github.com/MauroCasarin/SONIDO/internal/observability"
	"github.com/MauroCasarin/SONIDO/internal/sim"
	"github.com/MauroCasarin/SONIDO/internal/tone"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

// Game drives the simulation from ebiten's update loop and owns every buffer
// the frame is drawn from.
type Game struct {
	ctx     context.Context
	opts    options
	log     logging.Logger
	metrics *observability.FrameCollector

	state sim.State
	frame sim.Frame
	ctrl  *view.Controller

	backend *fieldBackend
	raster  *heatmap.Raster
	upload  []byte
	heat    *ebiten.Image
	ticks   []view.Tick

	width, height int

	selected     int
	showHelp     bool
	showDebug    bool
	lastStage    float64
	framesLogged int
	lastStatsLog time.Time

	touchIDs  []ebiten.TouchID
	touchID   ebiten.TouchID
	touching  bool
	pinchDist float64

	audioCtx    *audio.Context
	audioStream *tone.Stream
	audioPlayer *audio.Player
}

// newGame constructs a Game ready for ebiten.RunGame.
func newGame(ctx context.Context, opts options, cfg acoustic.Config, log logging.Logger, metrics *observability.FrameCollector) *Game {
	g := &Game{
		ctx:       ctx,
		opts:      opts,
		log:       log,
		metrics:   metrics,
		state:     sim.NewState(cfg),
		ctrl:      view.NewController(view.New(opts.width, opts.height)),
		backend:   newFieldBackend(ctx, opts, log),
		raster:    heatmap.NewRaster(opts.width, opts.height),
		width:     opts.width,
		height:    opts.height,
		showDebug: opts.debug,
		lastStage: defaultStageWidth,
	}
	if cfg.ReflectorWidth > 0 {
		g.lastStage = cfg.ReflectorWidth
	}
	if opts.enableAudio {
		g.startAudio()
	}
	return g
}

// Update applies input, steps the simulation and renders the field raster.
func (g *Game) Update() error {
	v := g.ctrl.View()
	if v.Width != g.width || v.Height != g.height {
		g.ctrl.SetView(v.Resize(g.width, g.height))
	}

	g.handleKeyboard()
	g.handlePointer()

	next, frame, err := sim.Step(g.ctx, g.state, 1, sim.Input{
		View:    g.ctrl.View(),
		Backend: g.backend,
		Raster:  g.raster,
	})
	switch {
	case errors.Is(err, heatmap.ErrEmptySurface):
		// Minimised; keep the last frame.
		return nil
	case err != nil:
		return err
	}
	g.state, g.frame = next, frame

	g.metrics.ObserveFrame(observability.FrameStats{
		Backend:   frame.Backend,
		Elapsed:   frame.Elapsed,
		Pixels:    frame.Pixels,
		Sources:   len(frame.Effective),
		Coherence: frame.Analysis.Coherence,
		Magnitude: frame.Analysis.Magnitude,
	})
	if g.audioStream != nil {
		g.audioStream.SetProbe(g.state.Config.Frequency, frame.Analysis, g.state.Playing)
	}
	g.logFrameStats()
	return nil
}

func (g *Game) logFrameStats() {
	g.framesLogged++
	now := time.Now()
	if g.lastStatsLog.IsZero() {
		g.lastStatsLog = now
		return
	}
	if now.Sub(g.lastStatsLog) < statsLogInterval {
		return
	}
	g.log.Debug(g.ctx, "frame stats",
		logging.Int("frames", g.framesLogged),
		logging.Float("tps", ebiten.ActualTPS()),
		logging.Float("fps", ebiten.ActualFPS()),
		logging.Duration("render", g.frame.Elapsed),
		logging.String("backend", g.frame.Backend),
		logging.Float("coherence", g.frame.Analysis.Coherence),
		logging.String("state", g.frame.Analysis.State.String()))
	g.framesLogged = 0
	g.lastStatsLog = now
}

// Layout tracks the window size so the raster always matches the surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases the renderer and audio output.
func (g *Game) Close() {
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
	}
	g.backend.Close()
}
