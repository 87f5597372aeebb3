package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Amr-9/VanityHunter/internal/ui"
	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/generator/cpu"
	"github.com/Amr-9/VanityHunter/pkg/generator/gpu"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

var (
	// ErrNoDevices is returned when neither CPU workers nor a GPU are configured.
	ErrNoDevices = errors.New("No computation devices specified")
	// ErrLimitReached is returned by Run when the match limit stopped the search.
	ErrLimitReached = errors.New("match limit reached")
	// ErrNoGPUKernel is returned when the GPU kernel cannot search the network.
	ErrNoGPUKernel = errors.New("GPU kernel does not support this network")
)

// GPUOptions enable the GPU worker.
type GPUOptions struct {
	gpu.Options
	Emulate bool // Use the host emulation instead of OpenCL
}

// Options configure a search.
type Options struct {
	Network    generator.Network
	Pattern    string
	Limit      uint64
	CPUWorkers int
	GPU        *GPUOptions // nil disables the GPU worker

	// Progress, when set, receives the status line every ProgressInterval.
	Progress         io.Writer
	ProgressInterval time.Duration

	Emit Emitter
	Log  logrus.FieldLogger
}

// Coordinator owns one search.
type Coordinator struct {
	opts   Options
	scheme generator.Scheme
	target generator.Target
	state  *State
	log    logrus.FieldLogger
}

// New compiles the pattern and checks the device configuration. Nothing
// is started until Run.
func New(opts Options) (*Coordinator, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("network", opts.Network.String())

	if opts.CPUWorkers <= 0 && opts.GPU == nil {
		return nil, ErrNoDevices
	}

	scheme, err := NewScheme(opts.Network)
	if err != nil {
		return nil, err
	}
	target, err := scheme.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	if t, ok := target.(interface{ Truncated() bool }); ok && t.Truncated() {
		log.Warnf("Pattern truncated to %q", target.Pattern())
	}
	if match.IsWildcardOnly(opts.Pattern) {
		log.Warnf("Pattern %q matches every address", opts.Pattern)
	}

	if opts.GPU != nil && !opts.GPU.Emulate {
		if _, ok := target.(generator.KernelMatcher); !ok || !HasKernel(opts.Network) {
			return nil, fmt.Errorf("%w: %s", ErrNoGPUKernel, opts.Network)
		}
	}

	return &Coordinator{opts: opts, scheme: scheme, target: target, log: log}, nil
}

// Target returns the compiled target.
func (c *Coordinator) Target() generator.Target { return c.target }

// EstimatedAttempts is the expected number of keys per match.
func (c *Coordinator) EstimatedAttempts() *big.Int { return c.target.EstimatedAttempts() }

// Stats returns the live counters, or zero values before Run.
func (c *Coordinator) Stats() generator.Stats {
	if c.state == nil {
		return generator.Stats{}
	}
	return c.state.Stats()
}

// Run searches until the limit is reached (ErrLimitReached), ctx is
// cancelled (ctx.Err()) or a worker fails (that error).
func (c *Coordinator) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.state = NewState(c.opts.Limit, cancel, c.opts.Emit)
	c.log.Infof("Estimated attempts needed: %s", c.target.EstimatedAttempts())

	var gw *gpu.Worker
	if c.opts.GPU != nil {
		var err error
		if gw, err = c.gpuWorker(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(runCtx)
	for i := 0; i < c.opts.CPUWorkers; i++ {
		w := &cpu.Worker{
			ID:       i,
			Scheme:   c.scheme,
			Target:   c.target,
			Reporter: c.state,
			Log:      c.log,
		}
		g.Go(func() error { return w.Run(gctx) })
	}
	if gw != nil {
		g.Go(func() error { return gw.Run(gctx) })
	}
	c.log.WithFields(logrus.Fields{
		"cpu_workers": c.opts.CPUWorkers,
		"gpu":         gw != nil,
		"limit":       c.state.Limit(),
	}).Debug("Search started")

	progressDone := make(chan struct{})
	progressCtx, stopProgress := context.WithCancel(gctx)
	if c.opts.Progress != nil {
		p := &ui.Progress{
			Out:       c.opts.Progress,
			Interval:  c.opts.ProgressInterval,
			Estimated: c.target.EstimatedAttempts(),
			Stats:     c.state.Stats,
		}
		go func() {
			defer close(progressDone)
			p.Run(progressCtx)
		}()
	} else {
		close(progressDone)
	}

	err := g.Wait()
	stopProgress()
	<-progressDone

	switch {
	case err != nil:
		return err
	case c.state.LimitReached():
		return ErrLimitReached
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return nil
}

func (c *Coordinator) gpuWorker() (*gpu.Worker, error) {
	o := c.opts.GPU
	threads := o.Threads

	var dev gpu.Device
	if o.Emulate {
		if threads <= 0 {
			threads = gpu.EmulatedThreads
		}
		dev = gpu.NewEmulated(c.scheme, c.target)
		c.log.Info("Initializing emulated GPU device")
	} else {
		if threads <= 0 {
			threads = gpu.DefaultThreads
		}
		cl, err := gpu.Open(o.Options, c.target.(generator.KernelMatcher).KernelArgs())
		if err != nil {
			return nil, err
		}
		info := cl.Info()
		c.log.WithField("device", fmt.Sprintf("%d:%d", info.Platform, info.Device)).
			Infof("Initializing GPU %s %s", info.Vendor, info.Name)
		dev = cl
	}

	return &gpu.Worker{
		Device:        dev,
		Scheme:        c.scheme,
		Target:        c.target,
		Reporter:      c.state,
		Threads:       threads,
		LocalWorkSize: o.LocalWorkSize,
		Log:           c.log,
	}, nil
}
