package playback

import "math/rand"

const (
	// baseVelocity is the un-humanized MIDI velocity of every trigger.
	baseVelocity = 100

	// maxJitterSeconds bounds the per-note timing offset at full humanize.
	maxJitterSeconds = 0.025

	// maxVelocitySwing bounds the per-note velocity excursion at full
	// humanize, in MIDI velocity units.
	maxVelocitySwing = 30
)

// jitterTime draws an independent timing offset in
// [-amount*maxJitterSeconds, +amount*maxJitterSeconds].
func jitterTime(rng *rand.Rand, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * amount * maxJitterSeconds
}

// jitterVelocity swings a velocity by up to amount*maxVelocitySwing in
// either direction, clamped to the MIDI range.
func jitterVelocity(rng *rand.Rand, base int, amount float64) int {
	if amount <= 0 {
		return base
	}
	v := base + int((rng.Float64()*2-1)*amount*maxVelocitySwing)
	if v < 1 {
		v = 1
	}
	if v > 127 {
		v = 127
	}
	return v
}
