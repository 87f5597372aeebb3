// Package cpu runs the key search on CPU goroutines. Each worker owns one
// key, walks forward from a random start with Increment and checks every
// candidate against the shared target.
package cpu

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// attemptFlush is how many local attempts a worker accumulates before
// publishing them and checking for cancellation.
const attemptFlush = 256

// Source is the value a CPU worker reports in generator.Result.
const Source = "cpu"

// DefaultWorkers returns the default CPU worker count: all cores but one,
// leaving room for the GPU host thread and the progress line. It is zero
// on a single-core machine.
func DefaultWorkers() int {
	return max(runtime.NumCPU()-1, 0)
}

// Worker is a single CPU search goroutine.
type Worker struct {
	ID       int
	Scheme   generator.Scheme
	Target   generator.Target
	Reporter generator.Reporter
	Log      logrus.FieldLogger

	// Rand seeds the starting key; nil means crypto/rand.
	Rand io.Reader
}

// Run searches until ctx is cancelled or the reporter stops accepting
// matches. It returns an error only when the random source fails.
func (w *Worker) Run(ctx context.Context) error {
	log := w.logger()

	var key generator.KeyMaterial
	if err := key.Randomize(w.Rand); err != nil {
		return fmt.Errorf("cpu worker %d: %w", w.ID, err)
	}

	buf := make([]byte, 0, 64)
	var pending uint64
	defer func() { w.Reporter.AddAttempts(pending) }()

	for {
		if pending >= attemptFlush {
			w.Reporter.AddAttempts(pending)
			pending = 0
			if ctx.Err() != nil {
				return nil
			}
		}

		id, ok := w.Scheme.Identifier(&key, buf)
		pending++
		if !ok || !w.Target.Matches(id) {
			key.Increment()
			continue
		}

		acct, verified, err := generator.Verify(w.Scheme, w.Target, key)
		if err != nil {
			log.WithError(err).Warn("Failed to render matching key")
		}
		if !verified {
			log.WithField("key", key.String()).Debug("Discarding false positive")
			key.Increment()
			continue
		}

		// Publish attempts first so the reported count includes this key.
		w.Reporter.AddAttempts(pending)
		pending = 0
		if !w.Reporter.Report(generator.Result{
			Network: w.Scheme.Network(),
			Account: acct,
			Source:  Source,
		}) {
			return nil
		}
		if err := key.Randomize(w.Rand); err != nil {
			return fmt.Errorf("cpu worker %d: %w", w.ID, err)
		}
	}
}

func (w *Worker) logger() logrus.FieldLogger {
	log := w.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return log.WithField("worker", fmt.Sprintf("cpu-%d", w.ID))
}
