//go:build !opencl
// +build !opencl

package gpu

import "github.com/Amr-9/VanityHunter/pkg/generator"

// OpenCL is a stub for non-OpenCL builds.
// Build with -tags opencl to enable GPU support.
type OpenCL struct{}

// Open returns ErrNotCompiled.
func Open(Options, generator.KernelArgs) (*OpenCL, error) {
	return nil, ErrNotCompiled
}

// Info returns an empty description.
func (*OpenCL) Info() Info { return Info{} }

func (*OpenCL) WriteSeed(*generator.KeyMaterial) error  { return ErrNotCompiled }
func (*OpenCL) ReadResult(*generator.KeyMaterial) error { return ErrNotCompiled }
func (*OpenCL) ClearResult() error                      { return ErrNotCompiled }
func (*OpenCL) Run(int, int) error                      { return ErrNotCompiled }
func (*OpenCL) Close() error                            { return nil }

// Platforms returns ErrNotCompiled.
func Platforms() ([]Info, error) {
	return nil, ErrNotCompiled
}
