//go:build opencl
// +build opencl

package gpu

/*
#cgo CFLAGS: -I${SRCDIR}/../../../deps/opencl-headers -DCL_TARGET_OPENCL_VERSION=120
#cgo windows LDFLAGS: -L${SRCDIR}/../../../deps/lib -lOpenCL
#cgo linux LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL

#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif

#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// OpenCL is a Device backed by a compiled generate_pubkey kernel.
type OpenCL struct {
	info Info

	device  C.cl_device_id
	clCtx   C.cl_context
	queue   C.cl_command_queue
	program C.cl_program
	kernel  C.cl_kernel

	bufResult   C.cl_mem // 32 bytes, kernel writes
	bufSeed     C.cl_mem // 32 bytes, host writes
	bufRequired C.cl_mem // Mask matcher required bytes
	bufMask     C.cl_mem // Mask matcher mask bytes
}

func clErr(op string, ret C.cl_int) error {
	if ret == C.CL_SUCCESS {
		return nil
	}
	return &Error{Op: op, Code: int(ret)}
}

// Open selects the device, compiles the kernel from opts.KernelDir and
// binds the matcher arguments.
func Open(opts Options, args generator.KernelArgs) (*OpenCL, error) {
	platforms, err := platformIDs()
	if err != nil {
		return nil, err
	}
	if opts.Platform < 0 || opts.Platform >= len(platforms) {
		return nil, &IndexError{Kind: "Platform", Index: opts.Platform, Count: len(platforms)}
	}
	devices, err := deviceIDs(platforms[opts.Platform])
	if err != nil {
		return nil, err
	}
	if opts.Device < 0 || opts.Device >= len(devices) {
		return nil, &IndexError{Kind: "Device", Index: opts.Device, Count: len(devices)}
	}

	g := &OpenCL{device: devices[opts.Device]}
	g.info = describe(platforms[opts.Platform], g.device, opts.Platform, opts.Device)

	if err := g.init(opts.KernelDir); err != nil {
		g.Close()
		return nil, err
	}
	if err := g.createBuffers(args); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// Info describes the selected device.
func (g *OpenCL) Info() Info { return g.info }

func (g *OpenCL) init(kernelDir string) error {
	var ret C.cl_int

	g.clCtx = C.clCreateContext(nil, 1, &g.device, nil, nil, &ret)
	if err := clErr("clCreateContext", ret); err != nil {
		return err
	}
	g.queue = C.clCreateCommandQueue(g.clCtx, g.device, 0, &ret)
	if err := clErr("clCreateCommandQueue", ret); err != nil {
		return err
	}

	// __generic needs OpenCL 2.0; NVIDIA accepts it regardless. Apple and
	// the AMD/Intel 1.2 drivers get the __private rewrite.
	generic := strings.Contains(strings.ToUpper(g.info.Vendor), "NVIDIA") && runtime.GOOS != "darwin"
	kernelSrc, err := LoadKernel(kernelDir, generic)
	if err != nil {
		return err
	}

	src := C.CString(kernelSrc)
	defer C.free(unsafe.Pointer(src))
	length := C.size_t(len(kernelSrc))
	g.program = C.clCreateProgramWithSource(g.clCtx, 1, &src, &length, &ret)
	if err := clErr("clCreateProgramWithSource", ret); err != nil {
		return err
	}

	ret = C.clBuildProgram(g.program, 1, &g.device, nil, nil, nil)
	if ret != C.CL_SUCCESS {
		var logSize C.size_t
		C.clGetProgramBuildInfo(g.program, g.device, C.CL_PROGRAM_BUILD_LOG, 0, nil, &logSize)
		buildLog := make([]byte, logSize+1)
		C.clGetProgramBuildInfo(g.program, g.device, C.CL_PROGRAM_BUILD_LOG, logSize, unsafe.Pointer(&buildLog[0]), nil)
		return fmt.Errorf("%w: %s", &Error{Op: "clBuildProgram", Code: int(ret)}, strings.TrimRight(string(buildLog), "\x00"))
	}

	name := C.CString(KernelName)
	defer C.free(unsafe.Pointer(name))
	g.kernel = C.clCreateKernel(g.program, name, &ret)
	return clErr("clCreateKernel", ret)
}

func (g *OpenCL) createBuffers(args generator.KernelArgs) error {
	var ret C.cl_int

	g.bufResult = C.clCreateBuffer(g.clCtx, C.CL_MEM_WRITE_ONLY, ResultSize, nil, &ret)
	if err := clErr("clCreateBuffer(result)", ret); err != nil {
		return err
	}
	g.bufSeed = C.clCreateBuffer(g.clCtx, C.CL_MEM_READ_ONLY|C.CL_MEM_HOST_WRITE_ONLY, SeedSize, nil, &ret)
	if err := clErr("clCreateBuffer(seed)", ret); err != nil {
		return err
	}

	var required, mask [32]byte
	copy(required[:], args.Required)
	copy(mask[:], args.Mask)
	g.bufRequired = C.clCreateBuffer(g.clCtx, C.CL_MEM_READ_ONLY|C.CL_MEM_COPY_HOST_PTR, 32, unsafe.Pointer(&required[0]), &ret)
	if err := clErr("clCreateBuffer(required)", ret); err != nil {
		return err
	}
	g.bufMask = C.clCreateBuffer(g.clCtx, C.CL_MEM_READ_ONLY|C.CL_MEM_COPY_HOST_PTR, 32, unsafe.Pointer(&mask[0]), &ret)
	if err := clErr("clCreateBuffer(mask)", ret); err != nil {
		return err
	}

	// The kernel only ever writes a match; start from the sentinel.
	if err := g.ClearResult(); err != nil {
		return err
	}

	// generate_pubkey(result, key_root, threshold, type, required, mask, prefix_len)
	threshold := C.cl_ulong(args.Threshold)
	typeCode := C.cl_uchar(args.Type)
	prefixLen := C.cl_uint(len(args.Mask))
	setArgs := []struct {
		size C.size_t
		ptr  unsafe.Pointer
	}{
		{C.size_t(unsafe.Sizeof(g.bufResult)), unsafe.Pointer(&g.bufResult)},
		{C.size_t(unsafe.Sizeof(g.bufSeed)), unsafe.Pointer(&g.bufSeed)},
		{C.size_t(unsafe.Sizeof(threshold)), unsafe.Pointer(&threshold)},
		{C.size_t(unsafe.Sizeof(typeCode)), unsafe.Pointer(&typeCode)},
		{C.size_t(unsafe.Sizeof(g.bufRequired)), unsafe.Pointer(&g.bufRequired)},
		{C.size_t(unsafe.Sizeof(g.bufMask)), unsafe.Pointer(&g.bufMask)},
		{C.size_t(unsafe.Sizeof(prefixLen)), unsafe.Pointer(&prefixLen)},
	}
	for i, a := range setArgs {
		if err := clErr(fmt.Sprintf("clSetKernelArg(%d)", i), C.clSetKernelArg(g.kernel, C.cl_uint(i), a.size, a.ptr)); err != nil {
			return err
		}
	}
	return nil
}

// WriteSeed uploads the batch seed.
func (g *OpenCL) WriteSeed(seed *generator.KeyMaterial) error {
	ret := C.clEnqueueWriteBuffer(g.queue, g.bufSeed, C.CL_TRUE, 0, SeedSize,
		unsafe.Pointer(&seed[0]), 0, nil, nil)
	return clErr("write seed", ret)
}

// ReadResult reads the result buffer.
func (g *OpenCL) ReadResult(out *generator.KeyMaterial) error {
	ret := C.clEnqueueReadBuffer(g.queue, g.bufResult, C.CL_TRUE, 0, ResultSize,
		unsafe.Pointer(&out[0]), 0, nil, nil)
	return clErr("read result", ret)
}

// ClearResult resets the result buffer to all zero.
func (g *OpenCL) ClearResult() error {
	var zeros [ResultSize]byte
	ret := C.clEnqueueWriteBuffer(g.queue, g.bufResult, C.CL_TRUE, 0, ResultSize,
		unsafe.Pointer(&zeros[0]), 0, nil, nil)
	return clErr("clear result", ret)
}

// Run launches the kernel and waits for it to finish.
func (g *OpenCL) Run(global, local int) error {
	globalSize := C.size_t(global)
	var localPtr *C.size_t
	if local > 0 {
		localSize := C.size_t(local)
		localPtr = &localSize
	}
	ret := C.clEnqueueNDRangeKernel(g.queue, g.kernel, 1, nil, &globalSize, localPtr, 0, nil, nil)
	if err := clErr("clEnqueueNDRangeKernel", ret); err != nil {
		return err
	}
	return clErr("clFinish", C.clFinish(g.queue))
}

// Close releases every OpenCL object. It is safe on a partially opened device.
func (g *OpenCL) Close() error {
	for _, m := range []*C.cl_mem{&g.bufResult, &g.bufSeed, &g.bufRequired, &g.bufMask} {
		if *m != nil {
			C.clReleaseMemObject(*m)
			*m = nil
		}
	}
	if g.kernel != nil {
		C.clReleaseKernel(g.kernel)
		g.kernel = nil
	}
	if g.program != nil {
		C.clReleaseProgram(g.program)
		g.program = nil
	}
	if g.queue != nil {
		C.clReleaseCommandQueue(g.queue)
		g.queue = nil
	}
	if g.clCtx != nil {
		C.clReleaseContext(g.clCtx)
		g.clCtx = nil
	}
	return nil
}

// Platforms lists every device on every OpenCL platform.
func Platforms() ([]Info, error) {
	platforms, err := platformIDs()
	if err != nil {
		return nil, err
	}
	var infos []Info
	for pi, p := range platforms {
		devices, err := deviceIDs(p)
		if err != nil {
			continue
		}
		for di, d := range devices {
			infos = append(infos, describe(p, d, pi, di))
		}
	}
	return infos, nil
}

func platformIDs() ([]C.cl_platform_id, error) {
	var n C.cl_uint
	if ret := C.clGetPlatformIDs(0, nil, &n); ret != C.CL_SUCCESS || n == 0 {
		return nil, ErrNoPlatforms
	}
	ids := make([]C.cl_platform_id, n)
	if err := clErr("clGetPlatformIDs", C.clGetPlatformIDs(n, &ids[0], nil)); err != nil {
		return nil, err
	}
	return ids, nil
}

func deviceIDs(p C.cl_platform_id) ([]C.cl_device_id, error) {
	var n C.cl_uint
	ret := C.clGetDeviceIDs(p, C.CL_DEVICE_TYPE_ALL, 0, nil, &n)
	if ret == C.CL_DEVICE_NOT_FOUND || n == 0 {
		return nil, nil
	}
	if err := clErr("clGetDeviceIDs", ret); err != nil {
		return nil, err
	}
	ids := make([]C.cl_device_id, n)
	if err := clErr("clGetDeviceIDs", C.clGetDeviceIDs(p, C.CL_DEVICE_TYPE_ALL, n, &ids[0], nil)); err != nil {
		return nil, err
	}
	return ids, nil
}

func describe(p C.cl_platform_id, d C.cl_device_id, pi, di int) Info {
	info := Info{
		Platform:     pi,
		Device:       di,
		PlatformName: platformString(p, C.CL_PLATFORM_NAME),
		Name:         deviceString(d, C.CL_DEVICE_NAME),
		Vendor:       deviceString(d, C.CL_DEVICE_VENDOR),
	}
	var units C.cl_uint
	C.clGetDeviceInfo(d, C.CL_DEVICE_MAX_COMPUTE_UNITS, C.size_t(unsafe.Sizeof(units)), unsafe.Pointer(&units), nil)
	info.ComputeUnits = int(units)
	var mem C.cl_ulong
	C.clGetDeviceInfo(d, C.CL_DEVICE_GLOBAL_MEM_SIZE, C.size_t(unsafe.Sizeof(mem)), unsafe.Pointer(&mem), nil)
	info.GlobalMem = uint64(mem)
	return info
}

func deviceString(d C.cl_device_id, param C.cl_device_info) string {
	var size C.size_t
	if C.clGetDeviceInfo(d, param, 0, nil, &size) != C.CL_SUCCESS || size == 0 {
		return ""
	}
	buf := make([]byte, size)
	C.clGetDeviceInfo(d, param, size, unsafe.Pointer(&buf[0]), nil)
	return strings.TrimRight(string(buf), "\x00")
}

func platformString(p C.cl_platform_id, param C.cl_platform_info) string {
	var size C.size_t
	if C.clGetPlatformInfo(p, param, 0, nil, &size) != C.CL_SUCCESS || size == 0 {
		return ""
	}
	buf := make([]byte, size)
	C.clGetPlatformInfo(p, param, size, unsafe.Pointer(&buf[0]), nil)
	return strings.TrimRight(string(buf), "\x00")
}
