// Package ramp provides a caller-driven integer ramp for smooth PWM moves.
package ramp

import (
	"time"

	"picocli-go/x/mathx"
)

// Step applies a new logical level in [0..top].
type Step func(level uint16)

// Tick waits for d and reports whether to continue (false cancels).
type Tick func(d time.Duration) bool

// Linear walks from cur to target over durationMs in the given number of
// steps, using an error accumulator so the end point lands exactly.
// steps==0 or durationMs==0 snaps straight to the target.
func Linear(cur, target, top uint16, durationMs uint32, steps uint16, tick Tick, set Step) {
	if steps == 0 || durationMs == 0 {
		set(mathx.Min(target, top))
		return
	}
	delta := int32(target) - int32(cur)
	st := int32(steps)
	acc := int32(0)
	level := int32(cur)
	stepMs := durationMs / uint32(steps)
	if stepMs == 0 {
		stepMs = 1
	}
	stepDur := time.Duration(stepMs) * time.Millisecond

	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return
		}
		acc += delta
		inc := acc / st
		if inc != 0 {
			acc -= inc * st
			level = mathx.Clamp(level+inc, 0, int32(top))
			set(uint16(level))
		}
	}
	set(mathx.Min(target, top))
}
