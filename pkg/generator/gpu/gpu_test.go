package gpu

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/generator/algorand"
	"github.com/Amr-9/VanityHunter/pkg/generator/lisk"
)

const rfcSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

// stubDevice returns a fixed key from the first launch that has one to
// give and nothing afterwards.
type stubDevice struct {
	key      generator.KeyMaterial
	pending  bool
	result   generator.KeyMaterial
	seeds    []generator.KeyMaterial
	launches int
	closed   bool
	runErr   error
}

func (d *stubDevice) WriteSeed(seed *generator.KeyMaterial) error {
	d.seeds = append(d.seeds, *seed)
	return nil
}

func (d *stubDevice) ReadResult(out *generator.KeyMaterial) error {
	*out = d.result
	return nil
}

func (d *stubDevice) ClearResult() error {
	d.result = generator.KeyMaterial{}
	return nil
}

func (d *stubDevice) Run(global, local int) error {
	if d.runErr != nil {
		return d.runErr
	}
	d.launches++
	if d.pending {
		d.result = d.key
		d.pending = false
	}
	return nil
}

func (d *stubDevice) Close() error {
	d.closed = true
	return nil
}

type countingReporter struct {
	mu       sync.Mutex
	accept   int
	results  []generator.Result
	attempts uint64
}

func (r *countingReporter) AddAttempts(n uint64) {
	r.mu.Lock()
	r.attempts += n
	r.mu.Unlock()
}

func (r *countingReporter) Report(res generator.Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.results) >= r.accept {
		return false
	}
	r.results = append(r.results, res)
	return true
}

func mustKey(t *testing.T) generator.KeyMaterial {
	t.Helper()
	k, err := generator.ParseKeyMaterial(rfcSeed)
	require.NoError(t, err)
	return k
}

func TestCompute_SentinelProtocol(t *testing.T) {
	key := mustKey(t)
	dev := &stubDevice{key: key, pending: true}
	w := &Worker{Device: dev, Threads: 8}

	var seed generator.KeyMaterial
	seed[31] = 1
	got, found, err := w.Compute(&seed)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, key, got)
	assert.True(t, dev.result.IsZero(), "result buffer must be cleared after a match")
	assert.Equal(t, []generator.KeyMaterial{seed}, dev.seeds)

	// The next call passes the sentinel check and finds nothing.
	_, found, err = w.Compute(&seed)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 2, dev.launches)
}

func TestCompute_StaleResult(t *testing.T) {
	dev := &stubDevice{result: mustKey(t)}
	w := &Worker{Device: dev, Threads: 8}
	var seed generator.KeyMaterial
	_, _, err := w.Compute(&seed)
	assert.ErrorIs(t, err, ErrStaleResult)
	assert.Zero(t, dev.launches)
}

func TestRun_ReportsVerifiedKey(t *testing.T) {
	key := mustKey(t)
	scheme := algorand.New()
	target, err := scheme.Compile("25NJQAMC")
	require.NoError(t, err)

	dev := &stubDevice{key: key, pending: true}
	rep := &countingReporter{accept: 1}
	w := &Worker{Device: dev, Scheme: scheme, Target: target, Reporter: rep, Threads: 64}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		// The stub only has one key; stop once it has been reported.
		for {
			rep.mu.Lock()
			n := len(rep.results)
			rep.mu.Unlock()
			if n > 0 {
				cancel()
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()
	require.NoError(t, w.Run(ctx))

	require.Len(t, rep.results, 1)
	res := rep.results[0]
	assert.Equal(t, Source, res.Source)
	assert.Equal(t, "25NJQAMCWEFLPVKL73J4SZAHHIHOC4XT3KTCGJNPAINGR5YHKENMEF5QTE", res.Account.Address)
	assert.True(t, dev.closed)
	assert.GreaterOrEqual(t, rep.attempts, uint64(64))
}

func TestRun_RejectsNonMatchingSolution(t *testing.T) {
	scheme := algorand.New()
	target, err := scheme.Compile("ALGO")
	require.NoError(t, err)

	dev := &stubDevice{key: mustKey(t), pending: true}
	rep := &countingReporter{accept: 10}
	w := &Worker{Device: dev, Scheme: scheme, Target: target, Reporter: rep, Threads: 16}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, w.Run(ctx))
	assert.Empty(t, rep.results)
	assert.True(t, dev.closed)
}

func TestRun_DeviceErrorIsFatal(t *testing.T) {
	boom := &Error{Op: "clEnqueueNDRangeKernel", Code: -5}
	dev := &stubDevice{runErr: boom}
	rep := &countingReporter{accept: 1}
	w := &Worker{Device: dev, Scheme: algorand.New(), Reporter: rep, Threads: 16}

	err := w.Run(context.Background())
	var clErr *Error
	require.True(t, errors.As(err, &clErr))
	assert.Equal(t, -5, clErr.Code)
	assert.True(t, dev.closed)
}

func TestEmulated_FirstMatchWins(t *testing.T) {
	key := mustKey(t)
	scheme := algorand.New()
	target, err := scheme.Compile("25NJQAMCWE")
	require.NoError(t, err)

	seed := key
	seed[31] -= 5

	dev := NewEmulated(scheme, target)
	w := &Worker{Device: dev, Threads: 16}
	got, found, err := w.Compute(&seed)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, key, got)

	// A batch that ends before the key finds nothing.
	w.Threads = 5
	_, found, err = w.Compute(&seed)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, dev.Close())
	assert.Error(t, dev.WriteSeed(&seed))
}

func TestEmulated_Threshold(t *testing.T) {
	scheme := lisk.New()
	target, err := scheme.Compile("20")
	require.NoError(t, err)

	rep := &countingReporter{accept: 3}
	w := &Worker{
		Device:   NewEmulated(scheme, target),
		Scheme:   scheme,
		Target:   target,
		Reporter: rep,
		Threads:  4,
	}
	require.NoError(t, w.Run(context.Background()))
	assert.Len(t, rep.results, 3)
	for _, res := range rep.results {
		assert.True(t, strings.HasSuffix(res.Account.Address, lisk.Suffix))
	}
}

func TestLoadKernel(t *testing.T) {
	dir := t.TempDir()
	for i, name := range KernelFiles {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		body := "// " + name + "\n"
		if i == 0 {
			body += "#define __generic\nvoid fe_0(fe h) {}\nunsigned int fe_isnegative(const fe f) {}\n__generic uchar *p;\n"
		}
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}

	src, err := LoadKernel(dir, true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src, "#define NAMESPACE_QUALIFIER __generic\n"))
	assert.Less(t, strings.Index(src, "// types.cl"), strings.Index(src, "// entry.cl"))
	assert.Contains(t, src, "void fe_0(fe h)")

	src, err = LoadKernel(dir, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src, "#define NAMESPACE_QUALIFIER __private\n"))
	assert.NotContains(t, src, "__generic")
	assert.Contains(t, src, "void fe_0(int* h)")
	assert.Contains(t, src, "unsigned int fe_isnegative(const int* f)")

	_, err = LoadKernel("", true)
	assert.ErrorIs(t, err, ErrNoKernelDir)

	require.NoError(t, os.Remove(filepath.Join(dir, "entry.cl")))
	_, err = LoadKernel(dir, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIndexError(t *testing.T) {
	err := &IndexError{Kind: "Platform", Index: 3, Count: 2}
	assert.Equal(t, "Platform index 3 too large (max 1)", err.Error())
}
