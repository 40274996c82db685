package main

import (
	"context"
	"errors"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/heatmap"
	"github.com/MauroCasarin/SONIDO/internal/logging"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

// fieldBackend renders on OpenCL when requested and available, and on the CPU
// otherwise. A GPU failure mid-run switches permanently to the CPU renderer.
type fieldBackend struct {
	log    logging.Logger
	gpu    *heatmap.OpenCLRenderer
	cpu    *heatmap.Renderer
	failed bool
}

func newFieldBackend(ctx context.Context, opts options, log logging.Logger) *fieldBackend {
	b := &fieldBackend{log: log, cpu: heatmap.NewRenderer(opts.workers)}
	if !opts.preferOpenCL {
		log.Info(ctx, "rendering on CPU", logging.Int("workers", b.cpu.Workers()))
		return b
	}
	gpu, err := heatmap.NewOpenCLRenderer()
	if err != nil {
		log.Warn(ctx, "OpenCL unavailable, rendering on CPU", logging.Err(err), logging.Int("workers", b.cpu.Workers()))
		return b
	}
	log.Info(ctx, "OpenCL renderer enabled", logging.String("device", gpu.Name()))
	b.gpu = gpu
	return b
}

func (b *fieldBackend) Render(ctx context.Context, dst *heatmap.Raster, s *acoustic.Sampler, v view.View) error {
	if b.gpu != nil && !b.failed {
		err := b.gpu.Render(ctx, dst, s, v)
		if err == nil || errors.Is(err, heatmap.ErrEmptySurface) || ctx.Err() != nil {
			return err
		}
		b.failed = true
		b.log.Warn(ctx, "OpenCL render failed, switching to CPU", logging.Err(err))
	}
	return b.cpu.Render(ctx, dst, s, v)
}

func (b *fieldBackend) Name() string {
	if b.gpu != nil && !b.failed {
		return b.gpu.Name()
	}
	return b.cpu.Name()
}

func (b *fieldBackend) Close() {
	if b.gpu != nil {
		b.gpu.Close()
	}
}
