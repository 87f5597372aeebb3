// Package gpu drives a batch key search on an OpenCL device. The kernel
// takes a 32-byte seed, tries seed+i for every work item i and writes the
// first matching key into a 32-byte result buffer, which stays all zero
// when nothing matched.
package gpu

import (
	"errors"
	"fmt"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// Kernel contract.
const (
	KernelName = "generate_pubkey"
	ResultSize = generator.KeySize
	SeedSize   = generator.KeySize

	DefaultThreads  = 1 << 20 // Keys per kernel launch
	EmulatedThreads = 1 << 12 // Keys per emulated launch
)

var (
	// ErrStaleResult means the result buffer was not the all-zero sentinel
	// before a launch.
	ErrStaleResult = errors.New("gpu: result buffer not cleared before launch")
	// ErrNoPlatforms is returned when the OpenCL runtime reports no platform.
	ErrNoPlatforms = errors.New("No OpenCL platforms exist (check your drivers and OpenCL setup)")
	// ErrNotCompiled is returned by Open in builds without the opencl tag.
	ErrNotCompiled = errors.New("GPU support not compiled. Build with: go build -tags opencl")
	// ErrNoKernelDir is returned when no kernel source directory is configured.
	ErrNoKernelDir = errors.New("gpu: kernel source directory not set (--gpu-kernel-dir)")
)

// IndexError reports a platform or device index outside the available range.
type IndexError struct {
	Kind  string // "Platform" or "Device"
	Index int
	Count int
}

func (e *IndexError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("%s index %d too large (none available)", e.Kind, e.Index)
	}
	return fmt.Sprintf("%s index %d too large (max %d)", e.Kind, e.Index, e.Count-1)
}

// Error is a failed OpenCL call.
type Error struct {
	Op   string
	Code int
}

func (e *Error) Error() string {
	return fmt.Sprintf("opencl: %s failed with code %d", e.Op, e.Code)
}

// Device is the buffer-level view of one kernel instance: a seed buffer
// the host writes, a result buffer the kernel writes, and a launch.
type Device interface {
	WriteSeed(seed *generator.KeyMaterial) error
	ReadResult(out *generator.KeyMaterial) error
	ClearResult() error
	// Run launches global work items; local <= 0 lets the runtime choose.
	Run(global, local int) error
	Close() error
}

// Options select and size an OpenCL device.
type Options struct {
	Platform      int
	Device        int
	Threads       int
	LocalWorkSize int
	KernelDir     string
}

// Info describes one OpenCL device.
type Info struct {
	Platform     int
	Device       int
	PlatformName string
	Name         string
	Vendor       string
	ComputeUnits int
	GlobalMem    uint64
}

var (
	_ Device = (*Emulated)(nil)
	_ Device = (*OpenCL)(nil)
)
