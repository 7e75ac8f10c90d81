// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"math"
	"sync/atomic"
	"time"
)

const (
	// fadeSteps is the number of ramp steps in the shutdown fade-out.
	fadeSteps = 50
	// fadeStepInterval is the time between ramp steps, giving a total
	// fade of 50 ms.
	fadeStepInterval = time.Millisecond
)

// atomicFloat32 publishes a float32 through its bit pattern.
type atomicFloat32 struct {
	bits atomic.Uint32
}

func (a *atomicFloat32) store(v float32) { a.bits.Store(math.Float32bits(v)) }
func (a *atomicFloat32) load() float32   { return math.Float32frombits(a.bits.Load()) }

// Shutdown ramps the fade multiplier from 1 to 0 over 50 steps of 1 ms
// and then stops the transport, so teardown never produces an audible
// click. The ramp runs on the caller's goroutine; the render path keeps
// consuming audio, multiplied by the shrinking fade, until the ramp
// finishes. Cancelling ctx cuts straight to silence.
//
// Shutdown is idempotent; concurrent callers wait for the first ramp.
func (e *Engine) Shutdown(ctx context.Context) error {
	var err error
	e.shutting.Do(func() { err = e.fadeOut(ctx) })
	return err
}

func (e *Engine) fadeOut(ctx context.Context) error {
	for step := fadeSteps - 1; step >= 0; step-- {
		e.fade.store(float32(step) / fadeSteps)

		select {
		case <-ctx.Done():
			e.fade.store(0)
			e.Stop()
			return ctx.Err()
		case <-time.After(fadeStepInterval):
		}
	}

	e.Stop()
	return nil
}
