package gpu

import (
	"errors"
	"sync"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

var errClosed = errors.New("gpu: device closed")

// Emulated is a Device that evaluates the kernel contract on the host:
// work item i tries seed+i and the lowest matching i wins.
type Emulated struct {
	scheme  generator.Scheme
	matcher generator.Matcher

	mu     sync.Mutex
	seed   generator.KeyMaterial
	result generator.KeyMaterial
	closed bool
}

// NewEmulated returns an emulated device for scheme and matcher.
func NewEmulated(scheme generator.Scheme, matcher generator.Matcher) *Emulated {
	return &Emulated{scheme: scheme, matcher: matcher}
}

// WriteSeed uploads the batch seed.
func (e *Emulated) WriteSeed(seed *generator.KeyMaterial) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errClosed
	}
	e.seed = *seed
	return nil
}

// ReadResult copies the result buffer.
func (e *Emulated) ReadResult(out *generator.KeyMaterial) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errClosed
	}
	*out = e.result
	return nil
}

// ClearResult resets the result buffer to the sentinel.
func (e *Emulated) ClearResult() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errClosed
	}
	e.result = generator.KeyMaterial{}
	return nil
}

// Run evaluates global work items. The local size is ignored.
func (e *Emulated) Run(global, _ int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errClosed
	}

	key := e.seed
	buf := make([]byte, 0, 64)
	for i := 0; i < global; i++ {
		if id, ok := e.scheme.Identifier(&key, buf); ok && e.matcher.Matches(id) {
			e.result = key
			return nil
		}
		key.Increment()
	}
	return nil
}

// Close marks the device unusable.
func (e *Emulated) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
