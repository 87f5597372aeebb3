package gpu

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KernelFiles are the kernel sources, in compilation order, expected in
// the kernel directory.
var KernelFiles = []string{
	"types.cl",
	"curve25519-constants.cl",
	"curve25519-constants2.cl",
	"curve25519.cl",
	"sha/inc_hash_functions.cl",
	"sha/sha256.cl",
	"sha/sha512.cl",
	"sha_bindings.cl",
	"bip39.cl",
	"lisk.cl",
	"entry.cl",
}

// LoadKernel concatenates the kernel sources found in dir. The kernels
// qualify shared pointers with NAMESPACE_QUALIFIER; generic selects
// __generic (NVIDIA and other OpenCL 2.0 drivers) over __private.
func LoadKernel(dir string, generic bool) (string, error) {
	if dir == "" {
		return "", ErrNoKernelDir
	}

	var b strings.Builder
	if generic {
		b.WriteString("#define NAMESPACE_QUALIFIER __generic\n")
	} else {
		b.WriteString("#define NAMESPACE_QUALIFIER __private\n")
	}
	for _, name := range KernelFiles {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return "", fmt.Errorf("load kernel: %w", err)
		}
		b.Write(data)
		b.WriteByte('\n')
	}

	src := b.String()
	if !generic {
		src = ApplyOpenCLFixes(src)
	}
	return src, nil
}

// ApplyOpenCLFixes strips the __generic address space for AMD and Intel
// drivers, which reject it, and rewrites field element signatures to plain
// int pointers so struct members can be passed without an address space
// mismatch.
func ApplyOpenCLFixes(src string) string {
	src = strings.ReplaceAll(src, "#define __generic\r\n", "")
	src = strings.ReplaceAll(src, "#define __generic\n", "")
	src = strings.ReplaceAll(src, "__generic ", "")
	src = strings.ReplaceAll(src, " __generic", "")

	for _, r := range feSignatures {
		src = strings.ReplaceAll(src, r[0], r[1])
	}
	return src
}

var feSignatures = [][2]string{
	{"void fe_0(fe h)", "void fe_0(int* h)"},
	{"void fe_1(fe h)", "void fe_1(int* h)"},
	{"void fe_copy(fe h, const fe f)", "void fe_copy(int* h, const int* f)"},
	{"void fe_add(fe h, const fe f, const fe g)", "void fe_add(int* h, const int* f, const int* g)"},
	{"void fe_sub(fe h, const fe f, const fe g)", "void fe_sub(int* h, const int* f, const int* g)"},
	{"void fe_mul(fe h, const fe f, const fe g)", "void fe_mul(int* h, const int* f, const int* g)"},
	{"void fe_sq(fe h, const fe f)", "void fe_sq(int* h, const int* f)"},
	{"void fe_sq2(fe h, const fe f)", "void fe_sq2(int* h, const int* f)"},
	{"void fe_invert(fe out, const fe z)", "void fe_invert(int* out, const int* z)"},
	{"void fe_neg(fe h, const fe f)", "void fe_neg(int* h, const int* f)"},
	{"void fe_cmov(fe f, const fe g, unsigned int b)", "void fe_cmov(int* f, const int* g, unsigned int b)"},
	{"void fe_tobytes(unsigned char *s, const fe h)", "void fe_tobytes(unsigned char *s, const int* h)"},
	// Before "int fe_isnegative" so the unsigned form is rewritten whole.
	{"unsigned int fe_isnegative(const fe f)", "unsigned int fe_isnegative(const int* f)"},
	{"int fe_isnegative(const fe f)", "int fe_isnegative(const int* f)"},
	{"void fe_pow22523(fe out, const fe z)", "void fe_pow22523(int* out, const int* z)"},
}
