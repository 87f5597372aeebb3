package gpu

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// Source is the value the GPU worker reports in generator.Result.
const Source = "gpu"

// Worker runs batches on a Device and verifies what it returns on the host.
type Worker struct {
	Device        Device
	Scheme        generator.Scheme
	Target        generator.Target
	Reporter      generator.Reporter
	Threads       int
	LocalWorkSize int
	Log           logrus.FieldLogger

	// Rand seeds every batch; nil means crypto/rand.
	Rand io.Reader
}

// Compute runs one batch starting at seed. It returns the key the kernel
// reported, if any, and leaves the result buffer cleared for the next call.
func (w *Worker) Compute(seed *generator.KeyMaterial) (generator.KeyMaterial, bool, error) {
	var out generator.KeyMaterial

	if err := w.Device.ReadResult(&out); err != nil {
		return out, false, err
	}
	if !out.IsZero() {
		return out, false, ErrStaleResult
	}

	if err := w.Device.WriteSeed(seed); err != nil {
		return out, false, err
	}
	if err := w.Device.Run(w.Threads, w.LocalWorkSize); err != nil {
		return out, false, err
	}
	if err := w.Device.ReadResult(&out); err != nil {
		return out, false, err
	}
	if out.IsZero() {
		return out, false, nil
	}
	if err := w.Device.ClearResult(); err != nil {
		return out, false, err
	}
	return out, true, nil
}

// Run launches batches from fresh random seeds until ctx is cancelled or
// the reporter stops accepting matches. Device errors are fatal. The
// device is closed on return.
func (w *Worker) Run(ctx context.Context) (err error) {
	log := w.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("worker", Source)

	defer func() {
		if cerr := w.Device.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("gpu: release device: %w", cerr)
		}
	}()

	var seed generator.KeyMaterial
	for ctx.Err() == nil {
		if err := seed.Randomize(w.Rand); err != nil {
			return fmt.Errorf("gpu: %w", err)
		}
		key, found, err := w.Compute(&seed)
		if err != nil {
			return fmt.Errorf("gpu: %w", err)
		}
		w.Reporter.AddAttempts(uint64(w.Threads))
		if !found {
			continue
		}

		acct, verified, err := generator.Verify(w.Scheme, w.Target, key)
		if err != nil {
			log.WithError(err).Warn("Failed to render GPU key")
		}
		if !verified {
			log.Warnf("GPU returned non-matching solution: %s", key)
			continue
		}
		if !w.Reporter.Report(generator.Result{
			Network: w.Scheme.Network(),
			Account: acct,
			Source:  Source,
		}) {
			return nil
		}
	}
	return nil
}
