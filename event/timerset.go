package event

import "time"

// TimerID identifies a timer within a loop. IDs start at 1 and increase
// monotonically; 0 is never a valid ID. After the counter wraps around,
// IDs are no longer guaranteed unique (a known, accepted limitation).
type TimerID uint32

// timer is a software timer. Owned by the loop goroutine once added.
type timer struct {
	id       TimerID
	when     time.Time
	interval time.Duration
	oneShot  bool
	fn       func()
}

// timerSet holds the active timers. The collection is ordered only by
// inspection of deadlines; the backing slice keeps insertion order, which
// is also the firing order among simultaneously due timers.
//
// timerSet is confined to the loop goroutine: cross-goroutine mutation
// goes through synthetic events, never through these methods.
type timerSet struct {
	timers []*timer
}

func (s *timerSet) add(t *timer) {
	s.timers = append(s.timers, t)
}

// remove discards the timer with the given id, reporting whether it was
// present. With wrapped IDs, the first match wins.
func (s *timerSet) remove(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

func (s *timerSet) len() int {
	return len(s.timers)
}

// nextDeadline returns the earliest deadline among the active timers,
// reporting ok=false when the set is empty.
func (s *timerSet) nextDeadline() (time.Time, bool) {
	if len(s.timers) == 0 {
		return time.Time{}, false
	}
	next := s.timers[0].when
	for _, t := range s.timers[1:] {
		if t.when.Before(next) {
			next = t.when
		}
	}
	return next, true
}

// fireDue invokes the callback of every timer whose deadline is at or
// before now, removes fired one-shot timers, and re-arms repeating
// timers at now + interval. It returns the number of callbacks invoked.
func (s *timerSet) fireDue(now time.Time) int {
	fired := 0
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.when.After(now) {
			t.fn()
			fired++
			if t.oneShot {
				continue
			}
			t.when = now.Add(t.interval)
		}
		kept = append(kept, t)
	}
	// Drop references past the compacted tail so one-shot timers are
	// collectable.
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
	return fired
}
