//go:build opencl

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"alloyheat/internal/alloy"
	"alloyheat/internal/relax"
)

// alloySource is the read side the device path needs: whole-grid temperature
// and composition snapshots plus the metal constants.
type alloySource interface {
	relax.Source
	Snapshot() alloy.Snapshot
	Constants() [alloy.Metals]float64
}

// openCLAlloySolver runs one relaxation phase per kernel launch. The
// per-cell coefficient sum(c_m * p_m) is uploaded once since compositions
// never change; temperatures go up and come back every phase.
type openCLAlloySolver struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	coeffBuf   *cl.MemObject
	tempBuf    *cl.MemObject
	nextBuf    *cl.MemObject
	width      int
	height     int
	deviceName string
	coeffReady bool
	next       []float64
}

const alloyKernelSource = `#pragma OPENCL EXTENSION cl_khr_fp64 : enable

__kernel void relax_step(
    const int width,
    const int height,
    __global const double* coeff,
    __global const double* temp,
    __global double* next_buffer)
{
    int idx = get_global_id(0);
    int size = width * height;
    if (idx >= size) {
        return;
    }
    if (idx == 0 || idx == size - 1) {
        next_buffer[idx] = temp[idx];
        return;
    }
    int x = idx % width;
    int y = idx / width;
    double sum = 0.0;
    int n = 0;
    if (y > 0) {
        sum += coeff[idx - width] * temp[idx - width];
        n++;
    }
    if (y < height - 1) {
        sum += coeff[idx + width] * temp[idx + width];
        n++;
    }
    if (x > 0) {
        sum += coeff[idx - 1] * temp[idx - 1];
        n++;
    }
    if (x < width - 1) {
        sum += coeff[idx + 1] * temp[idx + 1];
        n++;
    }
    next_buffer[idx] = n > 0 ? sum / (double)n : temp[idx];
}`

func newOpenCLAlloySolver(height, width int) (*openCLAlloySolver, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", alloy.ErrBadShape, height, width)
	}
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
	if !strings.Contains(device.Extensions(), "cl_khr_fp64") {
		return nil, fmt.Errorf("OpenCL device %q has no double precision support", device.Name())
	}

	s := &openCLAlloySolver{
		width:      width,
		height:     height,
		deviceName: device.Name(),
		next:       make([]float64, width*height),
	}
	if err := s.init(device); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
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

func (s *openCLAlloySolver) init(device *cl.Device) error {
	var err error
	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{alloyKernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.kernel, err = s.program.CreateKernel("relax_step"); err != nil {
		return fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	byteSize := s.width * s.height * int(unsafe.Sizeof(float64(0)))
	if s.coeffBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, byteSize); err != nil {
		return fmt.Errorf("allocating coefficient buffer: %w", err)
	}
	if s.tempBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, byteSize); err != nil {
		return fmt.Errorf("allocating temperature buffer: %w", err)
	}
	if s.nextBuf, err = s.context.CreateEmptyBuffer(cl.MemWriteOnly, byteSize); err != nil {
		return fmt.Errorf("allocating next buffer: %w", err)
	}
	if err := s.kernel.SetArgs(
		int32(s.width),
		int32(s.height),
		s.coeffBuf,
		s.tempBuf,
		s.nextBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	return nil
}

// Relax implements relax.Scheduler.
func (s *openCLAlloySolver) Relax(ctx context.Context, src relax.Source, dst relax.Destination) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	grid, ok := src.(alloySource)
	if !ok {
		return fmt.Errorf("OpenCL solver needs a grid snapshot source, got %T", src)
	}
	sh, sw := src.Dims()
	dh, dw := dst.Dims()
	if sh != s.height || sw != s.width || dh != s.height || dw != s.width {
		return fmt.Errorf("%w: solver %dx%d, source %dx%d, destination %dx%d",
			alloy.ErrDimensionMismatch, s.height, s.width, sh, sw, dh, dw)
	}

	snap := grid.Snapshot()
	if !s.coeffReady {
		coeff := coefficients(snap, grid.Constants())
		if err := s.write(s.coeffBuf, coeff); err != nil {
			return fmt.Errorf("writing coefficient buffer: %w", err)
		}
		s.coeffReady = true
	}
	if err := s.write(s.tempBuf, snap.Temperatures); err != nil {
		return fmt.Errorf("writing temperature buffer: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, []int{s.width * s.height}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	byteLen := len(s.next) * int(unsafe.Sizeof(float64(0)))
	if _, err := s.queue.EnqueueReadBuffer(s.nextBuf, true, 0, byteLen, unsafe.Pointer(&s.next[0]), nil); err != nil {
		return fmt.Errorf("reading next buffer: %w", err)
	}

	for row := 0; row < s.height; row++ {
		base := row * s.width
		for col := 0; col < s.width; col++ {
			if err := dst.SetTemperature(s.next[base+col], row, col); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *openCLAlloySolver) write(buf *cl.MemObject, data []float64) error {
	byteLen := len(data) * int(unsafe.Sizeof(float64(0)))
	_, err := s.queue.EnqueueWriteBuffer(buf, true, 0, byteLen, unsafe.Pointer(&data[0]), nil)
	return err
}

// coefficients folds each cell's composition and the metal constants into
// the single weight the kernel multiplies that cell's temperature by.
func coefficients(snap alloy.Snapshot, constants [alloy.Metals]float64) []float64 {
	out := make([]float64, len(snap.Compositions))
	for i, comp := range snap.Compositions {
		var k float64
		for m, p := range comp {
			k += constants[m] * p
		}
		out[i] = k
	}
	return out
}

func (s *openCLAlloySolver) Close() {
	if s.nextBuf != nil {
		s.nextBuf.Release()
		s.nextBuf = nil
	}
	if s.tempBuf != nil {
		s.tempBuf.Release()
		s.tempBuf = nil
	}
	if s.coeffBuf != nil {
		s.coeffBuf.Release()
		s.coeffBuf = nil
	}
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

func (s *openCLAlloySolver) DeviceName() string {
	return s.deviceName
}
