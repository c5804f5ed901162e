// Package swipe converts a noisy per-frame wrist position stream into
// discrete directional swipe events.
package swipe

import (
	"sync"
	"time"
)

// Event is a discrete swipe direction emitted by the Debouncer.
type Event int

const (
	// Next advances the feed to the following panel (hand moved up,
	// Y decreasing).
	Next Event = iota
	// Prev returns the feed to the previous panel (hand moved down,
	// Y increasing).
	Prev
)

// String returns the event name for logging.
func (e Event) String() string {
	switch e {
	case Next:
		return "next"
	case Prev:
		return "prev"
	}
	return "unknown"
}

// Sample is one wrist position observation, produced once per processed
// video frame. Present is false when no hand was detected in the frame.
type Sample struct {
	TimestampMs int64
	Y           float64
	Present     bool
}

// Default tuning values. Both depend on camera field of view and are
// overridable via Config and the settings store.
const (
	DefaultThreshold = 0.08
	DefaultCooldown  = 1100 * time.Millisecond
)

// Config holds tuning parameters for the Debouncer.
type Config struct {
	// Threshold is the minimum normalized Y movement between two
	// consecutive detected samples to count as a swipe.
	Threshold float64

	// Cooldown is the lockout window after an emitted event during
	// which further samples are swallowed, so one physical gesture
	// spanning many frames yields exactly one event.
	Cooldown time.Duration
}

// DefaultConfig returns a Config with the default threshold and cooldown.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Cooldown:  DefaultCooldown,
	}
}

// Debouncer turns a timestamp-ordered stream of Samples into at most one
// Event per physical swipe gesture. It is a pure state machine: cooldown
// expiry is derived from sample timestamps rather than a timer, so Step
// never races with a background callback.
type Debouncer struct {
	config Config

	mu            sync.Mutex
	lastY         float64
	hasBaseline   bool
	cooling       bool
	cooldownUntil int64 // unix millis; valid while cooling
}

// NewDebouncer creates a Debouncer with the given configuration.
// Non-positive Threshold or Cooldown values fall back to the defaults.
func NewDebouncer(config Config) *Debouncer {
	if config.Threshold <= 0 {
		config.Threshold = DefaultThreshold
	}
	if config.Cooldown <= 0 {
		config.Cooldown = DefaultCooldown
	}
	return &Debouncer{config: config}
}

// Step consumes one Sample and reports whether it produced an Event.
// Samples must arrive in timestamp order.
//
// Rules:
//  1. An absent sample clears the baseline so the next detected position
//     is never diffed against a stale value. No event.
//  2. While cooling, samples are swallowed. Cooldown expires when a
//     sample's timestamp passes the lockout deadline; the expiring sample
//     only re-seeds the baseline and never emits.
//  3. Otherwise the delta against the baseline is compared to the
//     threshold: movement up (delta < -threshold) emits Next, movement
//     down emits Prev, and either entry atomically starts the cooldown.
func (d *Debouncer) Step(sample Sample) (Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !sample.Present {
		// Detection gap: reset the baseline.
		d.hasBaseline = false
		return 0, false
	}

	if d.cooling {
		if sample.TimestampMs < d.cooldownUntil {
			return 0, false
		}
		// Cooldown expired. The baseline was cleared on entry, so this
		// sample seeds a fresh one below and cannot emit.
		d.cooling = false
	}

	if !d.hasBaseline {
		d.lastY = sample.Y
		d.hasBaseline = true
		return 0, false
	}

	delta := sample.Y - d.lastY

	switch {
	case delta < -d.config.Threshold:
		d.enterCooldown(sample.TimestampMs)
		return Next, true
	case delta > d.config.Threshold:
		d.enterCooldown(sample.TimestampMs)
		return Prev, true
	}

	d.lastY = sample.Y
	return 0, false
}

// enterCooldown starts the lockout window and clears the baseline so the
// first post-cooldown sample re-seeds rather than comparing against a
// stale position. Caller must hold d.mu.
func (d *Debouncer) enterCooldown(nowMs int64) {
	d.cooling = true
	d.cooldownUntil = nowMs + d.config.Cooldown.Milliseconds()
	d.hasBaseline = false
}

// Cooling reports whether the debouncer is inside its lockout window as
// of the last processed sample.
func (d *Debouncer) Cooling() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cooling
}

// Reset clears all state, returning the debouncer to its initial
// condition with no baseline and no active cooldown.
func (d *Debouncer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hasBaseline = false
	d.cooling = false
	d.cooldownUntil = 0
}

// Config returns the active configuration.
func (d *Debouncer) Config() Config {
	return d.config
}
