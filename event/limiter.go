package event

// Rate limiting thresholds, in the source's millisecond timescale.
const (
	// repeatDelayMS is the minimum gap before the first auto-repeat of
	// a key is accepted.
	repeatDelayMS = 500

	// repeatIntervalMS is the minimum gap between subsequent accepted
	// auto-repeats.
	repeatIntervalMS = 25
)

// RateLimiter suppresses over-fast key auto-repeat notifications.
//
// A non-repeat event always passes and resets the repeat streak. A
// repeat event is suppressed when the time since the previous key event
// of either kind is under 500ms for the first repeat of a streak, or
// under 25ms within a streak. Every event advances the stored timestamp,
// and every repeat extends the streak, whether suppressed or not.
//
// The zero value is ready to use. RateLimiter is not safe for concurrent
// use; each key-down handler owns its own instance.
type RateLimiter struct {
	lastTimestamp uint32
	repeatCount   uint32
}

// Limited reports whether the callback for ev should be suppressed.
// It has no side effects beyond the limiter's own state.
func (r *RateLimiter) Limited(ev Event) bool {
	last := r.lastTimestamp
	r.lastTimestamp = ev.Key.Timestamp

	if !ev.Key.Repeat {
		r.repeatCount = 0
		return false
	}

	threshold := uint32(repeatDelayMS)
	if r.repeatCount > 0 {
		threshold = repeatIntervalMS
	}
	r.repeatCount++

	// Unsigned subtraction handles millisecond timestamp wraparound.
	return ev.Key.Timestamp-last < threshold
}
