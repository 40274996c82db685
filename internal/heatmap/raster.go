package heatmap

import (
	"errors"
	"image"
)

var (
	// ErrEmptySurface is returned when a pass is requested on a zero-sized surface.
	ErrEmptySurface = errors.New("heatmap: render surface has no pixels")
	// ErrOpenCLUnavailable is returned by builds without the opencl tag.
	ErrOpenCLUnavailable = errors.New("heatmap: OpenCL support is not enabled; rebuild with -tags opencl")
)

// Raster owns the contiguous RGBA buffer the field pass writes into.
type Raster struct {
	width, height int
	pix           []byte
}

// NewRaster allocates a raster sized for width x height pixels.
func NewRaster(width, height int) *Raster {
	r := &Raster{}
	r.Resize(width, height)
	return r
}

// Resize re-derives the buffer for new surface dimensions. The backing array
// is reused when it is large enough. Negative sizes are treated as zero.
func (r *Raster) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r.width, r.height = width, height
	n := width * height * 4
	if cap(r.pix) < n {
		r.pix = make([]byte, n)
	}
	r.pix = r.pix[:n]
}

// Size returns the raster dimensions.
func (r *Raster) Size() (int, int) { return r.width, r.height }

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool { return r.width == 0 || r.height == 0 }

// Pix exposes the RGBA bytes, row-major with a stride of 4*width.
func (r *Raster) Pix() []byte { return r.pix }

// row returns the bytes of row y.
func (r *Raster) row(y int) []byte {
	stride := r.width * 4
	return r.pix[y*stride : (y+1)*stride]
}

// At returns the four channel bytes of pixel (x, y).
func (r *Raster) At(x, y int) [4]byte {
	i := (y*r.width + x) * 4
	return [4]byte{r.pix[i], r.pix[i+1], r.pix[i+2], r.pix[i+3]}
}

// Image wraps the buffer without copying. Channels are stored straight, not
// premultiplied, so the wrapper is an NRGBA image.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.pix,
		Stride: r.width * 4,
		Rect:   image.Rect(0, 0, r.width, r.height),
	}
}

// Premultiply writes the raster into dst with colour channels scaled by alpha,
// the layout ebiten.Image.WritePixels expects, growing dst when needed.
func (r *Raster) Premultiply(dst []byte) []byte {
	if cap(dst) < len(r.pix) {
		dst = make([]byte, len(r.pix))
	}
	dst = dst[:len(r.pix)]
	for i := 0; i < len(r.pix); i += 4 {
		a := uint16(r.pix[i+3])
		dst[i] = byte(uint16(r.pix[i]) * a / 255)
		dst[i+1] = byte(uint16(r.pix[i+1]) * a / 255)
		dst[i+2] = byte(uint16(r.pix[i+2]) * a / 255)
		dst[i+3] = byte(a)
	}
	return dst
}
