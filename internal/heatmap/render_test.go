package heatmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

func testSampler() *acoustic.Sampler {
	c := acoustic.Config{Frequency: 80, Count: 3, Spacing: 1.1, ReflectorDistance: 2, ReflectorWidth: 6}
	c = c.TogglePolarity(1).SetDelay(2, 1.5)
	return acoustic.NewSampler(c, acoustic.EffectiveSources(c, acoustic.GenerateSources(c)), 4.2)
}

func TestRenderMatchesSampler(t *testing.T) {
	s := testSampler()
	v := view.New(64, 48)
	v.PanX, v.PanY = 7, -3
	dst := NewRaster(0, 0)

	require.NoError(t, NewRenderer(3).Render(context.Background(), dst, s, v))

	w, h := dst.Size()
	require.Equal(t, 64, w)
	require.Equal(t, 48, h)
	for _, pt := range [][2]int{{0, 0}, {31, 24}, {63, 47}, {10, 40}, {50, 5}} {
		p := v.ToWorld(float64(pt[0]), float64(pt[1]))
		assert.Equal(t, Color(s.Decibels(p)), dst.At(pt[0], pt[1]), "pixel %v", pt)
	}
}

func TestRenderIndependentOfWorkerCount(t *testing.T) {
	s := testSampler()
	v := view.New(40, 33)
	one := NewRaster(40, 33)
	many := NewRaster(40, 33)

	require.NoError(t, NewRenderer(1).Render(context.Background(), one, s, v))
	require.NoError(t, NewRenderer(7).Render(context.Background(), many, s, v))

	assert.Equal(t, one.Pix(), many.Pix())
}

func TestRenderRejectsEmptySurface(t *testing.T) {
	dst := NewRaster(10, 10)
	err := NewRenderer(2).Render(context.Background(), dst, testSampler(), view.New(0, 10))

	assert.ErrorIs(t, err, ErrEmptySurface)
}

func TestRenderFollowsResize(t *testing.T) {
	r := NewRenderer(4)
	dst := NewRaster(8, 8)
	s := testSampler()

	require.NoError(t, r.Render(context.Background(), dst, s, view.New(20, 10)))
	assert.Len(t, dst.Pix(), 20*10*4)

	require.NoError(t, r.Render(context.Background(), dst, s, view.New(5, 30)))
	w, h := dst.Size()
	assert.Equal(t, [2]int{5, 30}, [2]int{w, h})
	assert.Len(t, dst.Pix(), 5*30*4)
}

func TestRenderStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRenderer(2).Render(ctx, NewRaster(0, 0), testSampler(), view.New(16, 16))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssignRowsCoversEveryRowOnce(t *testing.T) {
	bands := assignRows(4, 10)
	require.Len(t, bands, 4)

	seen := map[int]int{}
	for _, b := range bands {
		for _, y := range b.rows {
			seen[y]++
		}
	}
	assert.Len(t, seen, 10)
	for y, n := range seen {
		assert.Equal(t, 1, n, "row %d", y)
	}

	assert.Len(t, assignRows(16, 3), 3)
	assert.Len(t, assignRows(0, 3), 1)
}

func TestRasterPremultiply(t *testing.T) {
	r := NewRaster(2, 1)
	copy(r.Pix(), []byte{200, 100, 50, 255, 200, 100, 50, 0})

	out := r.Premultiply(nil)

	assert.Equal(t, []byte{200, 100, 50, 255, 0, 0, 0, 0}, out)
	img := r.Image()
	assert.Equal(t, 2, img.Bounds().Dx())
}

func TestOpenCLStubOrDevice(t *testing.T) {
	r, err := NewOpenCLRenderer()
	if err != nil {
		t.Skipf("OpenCL backend unavailable: %v", err)
	}
	defer r.Close()
	dst := NewRaster(0, 0)
	require.NoError(t, r.Render(context.Background(), dst, testSampler(), view.New(16, 16)))
	assert.Len(t, dst.Pix(), 16*16*4)
}
