package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/heatmap"
	"github.com/MauroCasarin/SONIDO/internal/logging"
	"github.com/MauroCasarin/SONIDO/internal/observability"
	"github.com/MauroCasarin/SONIDO/internal/report"
	"github.com/MauroCasarin/SONIDO/internal/sim"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

func newRootCommand() *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:   "subarray",
		Short: "Subwoofer array interference heatmap",
		Long: `subarray renders the low-frequency pressure field of a configurable
subwoofer array: broadside or end-fire layout, per-source polarity, facing
and delay, dual lanes and an optional stage reflector.

Drag the green probe to measure, drag a source to change spacing, drag
anywhere else to pan and use the wheel to zoom. Press H for key bindings.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runViewer(cmd.Context(), opts, newLogger(opts))
		},
	}
	opts.bind(cmd)
	cmd.AddCommand(newSnapshotCommand(&opts), newSourcesCommand(&opts))
	return cmd
}

func newLogger(opts options) logging.Logger {
	return logging.NewFromEnv(opts.debug).With(logging.String("app", "subarray"))
}

func runViewer(ctx context.Context, opts options, log logging.Logger) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	stop, err := startCPUProfile(opts.cpuProfile)
	if err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var metrics *observability.FrameCollector
	if opts.metricsAddr != "" {
		if metrics, err = observability.NewFrameCollector(nil); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		if _, err := observability.Serve(ctx, opts.metricsAddr, metrics, log); err != nil {
			return fmt.Errorf("serve metrics on %s: %w", opts.metricsAddr, err)
		}
	}

	g := newGame(ctx, opts, cfg, log, metrics)
	defer g.Close()

	ebiten.SetWindowSize(int(float64(opts.width)*opts.scale), int(float64(opts.height)*opts.scale))
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(defaultTPS)
	log.Info(ctx, "viewer starting",
		logging.Float("freq", cfg.Frequency),
		logging.Int("count", cfg.Count),
		logging.Float("spacing", cfg.Spacing),
		logging.String("mode", cfg.Mode.String()),
		logging.String("backend", g.backend.Name()))
	return ebiten.RunGame(g)
}

type snapshotOptions struct {
	out    string
	probeX float64
	probeY float64
	time   float64
	focus  bool
}

func newSnapshotCommand(opts *options) *cobra.Command {
	s := snapshotOptions{out: snapshotDefaultTo, probeX: sim.DefaultProbe.X, probeY: sim.DefaultProbe.Y}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to PNG and print the probe readout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd.Context(), *opts, s, cmd.OutOrStdout(), newLogger(*opts))
		},
	}
	cmd.Flags().StringVarP(&s.out, "out", "o", s.out, "PNG output path")
	cmd.Flags().Float64Var(&s.probeX, "probe-x", s.probeX, "probe X in metres")
	cmd.Flags().Float64Var(&s.probeY, "probe-y", s.probeY, "probe Y in metres (negative is in front of the array)")
	cmd.Flags().Float64Var(&s.time, "time", s.time, "simulation time of the frame")
	cmd.Flags().BoolVar(&s.focus, "focus", s.focus, "align source delays on the probe before rendering")
	return cmd
}

func runSnapshot(ctx context.Context, opts options, s snapshotOptions, out io.Writer, log logging.Logger) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	backend := newFieldBackend(ctx, opts, log)
	defer backend.Close()

	state := sim.NewState(cfg)
	state.Probe = acoustic.Point{X: s.probeX, Y: s.probeY}
	state.Time = s.time
	if s.focus {
		state.Config = acoustic.Focus(state.Config, state.Probe)
	}

	raster := heatmap.NewRaster(0, 0)
	_, frame, err := sim.Step(ctx, state, 0, sim.Input{
		View:    view.New(opts.width, opts.height),
		Backend: backend,
		Raster:  raster,
	})
	if err != nil {
		return err
	}
	if err := writePNG(s.out, raster); err != nil {
		return err
	}
	log.Info(ctx, "snapshot written",
		logging.String("path", s.out),
		logging.String("backend", frame.Backend),
		logging.Duration("render", frame.Elapsed))

	if err := report.Sources(out, state.Config, frame.Sources); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return report.WriteProbe(out, probeReport(state, frame))
}

func probeReport(s sim.State, f sim.Frame) report.Probe {
	return report.Probe{
		Position:  s.Probe,
		Nearest:   f.Nearest,
		Decibels:  f.Sampler.Decibels(s.Probe),
		Analysis:  f.Analysis,
		Status:    f.Status,
		Frequency: s.Config.Frequency,
	}
}

// writePNG flattens the raster over the viewer background and encodes it.
func writePNG(path string, r *heatmap.Raster) error {
	src := r.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

var backgroundColor = color.RGBA{0x09, 0x09, 0x0b, 0xff}

func newSourcesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Print the generated source layout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			effective := acoustic.EffectiveSources(cfg, acoustic.GenerateSources(cfg))
			if err := report.Sources(cmd.OutOrStdout(), cfg, effective); err != nil {
				return err
			}
			st := acoustic.ArrayStatus(cfg)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nwavelength %.2f m, %s\n", st.Wavelength, st.Kind)
			return err
		},
	}
}
