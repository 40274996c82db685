//go:build opencl

package heatmap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"github.com/MauroCasarin/SONIDO/internal/acoustic"
	"github.com/MauroCasarin/SONIDO/internal/view"
)

// maxEmitters covers dual arrays with a reflector.
const maxEmitters = acoustic.MaxSources * 4

const fieldKernelSource = `__kernel void field_pass(
    const int width,
    const int height,
    const float cx,
    const float cy,
    const float inv_zoom,
    const float k,
    const float time_phase,
    const int count,
    __global const float* emitters,
    __global uchar* pixels)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    float wx = ((float)(idx % width) - cx) * inv_zoom;
    float wy = ((float)(idx / width) - cy) * inv_zoom;
    float sum = 0.0f;
    for (int i = 0; i < count; i++) {
        int e = i * 5;
        float dx = wx - emitters[e];
        float dy = wy - emitters[e + 1];
        float dist = sqrt(dx * dx + dy * dy);
        float c = 1.0f;
        if (dist > 0.0f) {
            c = emitters[e + 2] * dy / dist;
        }
        float amp = emitters[e + 3] / fmax(0.1f, dist) * (1.0f + c) * 0.5f;
        sum += amp * sin(k * dist + emitters[e + 4] - time_phase);
    }
    float db = 20.0f * log10(fabs(sum) + 1e-7f);
    float r = 0.0f, g = 0.0f, b = 0.0f, a = 230.0f;
    if (db > 0.0f) {
        r = 255.0f; g = 255.0f; b = fmin(255.0f, floor(db * 40.0f));
    } else if (db > -3.0f) {
        r = 255.0f; g = floor(160.0f + ((db + 3.0f) / 3.0f) * 95.0f);
    } else if (db > -6.0f) {
        r = 255.0f; g = floor(((db + 6.0f) / 3.0f) * 160.0f);
    } else if (db > -12.0f) {
        r = floor(100.0f + ((db + 12.0f) / 6.0f) * 155.0f);
    } else if (db > -24.0f) {
        float t = (db + 24.0f) / 12.0f;
        r = floor(t * 100.0f); b = floor((1.0f - t) * 200.0f);
    } else if (db > -60.0f) {
        float t = (db + 60.0f) / 36.0f;
        b = floor(t * 200.0f); a = floor(t * 230.0f);
    } else {
        a = 0.0f;
    }
    int p = idx * 4;
    pixels[p] = (uchar)r;
    pixels[p + 1] = (uchar)g;
    pixels[p + 2] = (uchar)b;
    pixels[p + 3] = (uchar)a;
}`

// OpenCLRenderer runs the field pass on an OpenCL device. It works in single
// precision, so its output can differ from the CPU renderer by one colour step
// near band edges.
type OpenCLRenderer struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	emitterBuf *cl.MemObject
	pixelBuf   *cl.MemObject
	pixelBytes int
	packed     []float32
	deviceName string
}

// NewOpenCLRenderer selects the first GPU (falling back to a CPU device) and
// compiles the field kernel.
func NewOpenCLRenderer() (*OpenCLRenderer, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	r := &OpenCLRenderer{deviceName: device.Name()}
	if r.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if r.queue, err = r.context.CreateCommandQueue(device, 0); err != nil {
		r.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if r.program, err = r.context.CreateProgramWithSource([]string{fieldKernelSource}); err != nil {
		r.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := r.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		r.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if r.kernel, err = r.program.CreateKernel("field_pass"); err != nil {
		r.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	emitterBytes := maxEmitters * acoustic.EmitterStride * int(unsafe.Sizeof(float32(0)))
	if r.emitterBuf, err = r.context.CreateEmptyBuffer(cl.MemReadOnly, emitterBytes); err != nil {
		r.Close()
		return nil, fmt.Errorf("allocating emitter buffer: %w", err)
	}
	r.packed = make([]float32, 0, maxEmitters*acoustic.EmitterStride)
	return r, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// ensurePixelBuffer reallocates the device raster after a surface resize.
func (r *OpenCLRenderer) ensurePixelBuffer(n int) error {
	if r.pixelBuf != nil && r.pixelBytes == n {
		return nil
	}
	if r.pixelBuf != nil {
		r.pixelBuf.Release()
		r.pixelBuf = nil
	}
	buf, err := r.context.CreateEmptyBuffer(cl.MemWriteOnly, n)
	if err != nil {
		return fmt.Errorf("allocating pixel buffer: %w", err)
	}
	r.pixelBuf = buf
	r.pixelBytes = n
	return nil
}

// Render uploads the source table, runs one work item per pixel and reads the
// raster back.
func (r *OpenCLRenderer) Render(ctx context.Context, dst *Raster, s *acoustic.Sampler, v view.View) error {
	if v.Empty() {
		return ErrEmptySurface
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dst.Resize(v.Width, v.Height)
	if err := r.ensurePixelBuffer(len(dst.pix)); err != nil {
		return err
	}
	r.packed = s.Pack(r.packed[:0])
	count := s.Sources()
	if count > maxEmitters {
		return fmt.Errorf("opencl: %d sources exceed device table of %d", count, maxEmitters)
	}
	if count > 0 {
		if _, err := r.queue.EnqueueWriteBufferFloat32(r.emitterBuf, false, 0, r.packed, nil); err != nil {
			return fmt.Errorf("writing emitter buffer: %w", err)
		}
	}
	cx, cy := v.Origin()
	if err := r.kernel.SetArgs(
		int32(v.Width),
		int32(v.Height),
		float32(cx),
		float32(cy),
		float32(1/v.Zoom),
		float32(s.WaveNumber()),
		float32(s.TimePhase()),
		int32(count),
		r.emitterBuf,
		r.pixelBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	global := []int{v.Width * v.Height}
	if _, err := r.queue.EnqueueNDRangeKernel(r.kernel, nil, global, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := r.queue.EnqueueReadBuffer(r.pixelBuf, true, 0, len(dst.pix), unsafe.Pointer(&dst.pix[0]), nil); err != nil {
		return fmt.Errorf("reading pixel buffer: %w", err)
	}
	return nil
}

// Name identifies the backend and device in logs.
func (r *OpenCLRenderer) Name() string { return "opencl:" + r.deviceName }

// Close releases every device object.
func (r *OpenCLRenderer) Close() {
	if r.pixelBuf != nil {
		r.pixelBuf.Release()
		r.pixelBuf = nil
	}
	if r.emitterBuf != nil {
		r.emitterBuf.Release()
		r.emitterBuf = nil
	}
	if r.kernel != nil {
		r.kernel.Release()
		r.kernel = nil
	}
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.context != nil {
		r.context.Release()
		r.context = nil
	}
}
