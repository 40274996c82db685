//go:build !opencl

package heatmap

import (
	"context"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

// OpenCLRenderer is unavailable without the opencl build tag.
type OpenCLRenderer struct{}

// NewOpenCLRenderer always fails in builds without OpenCL support.
func NewOpenCLRenderer() (*OpenCLRenderer, error) {
	return nil, ErrOpenCLUnavailable
}

func (r *OpenCLRenderer) Render(context.Context, *Raster, *acoustic.Sampler, view.View) error {
	return ErrOpenCLUnavailable
}

func (r *OpenCLRenderer) Name() string { return "opencl" }

func (r *OpenCLRenderer) Close() {}
