// Package heatmap turns a sampled pressure field into an RGBA raster.
package heatmap

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

// Backend fills a raster with the colour-mapped field for one frame.
type Backend interface {
	Render(ctx context.Context, dst *Raster, s *acoustic.Sampler, v view.View) error
	Name() string
}

// Renderer is the CPU backend. It shades disjoint row bands in parallel;
// workers only read the sampler and view captured at the start of the pass.
type Renderer struct {
	workers int

	bands      []rowBand
	bandHeight int
}

// NewRenderer returns a CPU renderer using workers goroutines, or one per CPU
// when workers is not positive.
func NewRenderer(workers int) *Renderer {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Renderer{workers: workers}
}

// Name identifies the backend in logs.
func (r *Renderer) Name() string { return "cpu" }

// Workers reports the configured parallelism.
func (r *Renderer) Workers() int { return r.workers }

// Render resizes dst to the view's surface and shades every pixel.
func (r *Renderer) Render(ctx context.Context, dst *Raster, s *acoustic.Sampler, v view.View) error {
	if v.Empty() {
		return ErrEmptySurface
	}
	dst.Resize(v.Width, v.Height)
	if r.bandHeight != v.Height || len(r.bands) == 0 {
		r.bands = assignRows(r.workers, v.Height)
		r.bandHeight = v.Height
	}

	cx, cy := v.Origin()
	g, ctx := errgroup.WithContext(ctx)
	for i := range r.bands {
		band := r.bands[i]
		g.Go(func() error {
			for _, y := range band.rows {
				if err := ctx.Err(); err != nil {
					return err
				}
				row := dst.row(y)
				wy := (float64(y) - cy) / v.Zoom
				for x := 0; x < v.Width; x++ {
					wx := (float64(x) - cx) / v.Zoom
					FillColor(s.DecibelsAt(wx, wy), row[x*4:x*4+4])
				}
			}
			return nil
		})
	}
	return g.Wait()
}
