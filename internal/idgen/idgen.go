// Package idgen hands out time-derived identifiers that never repeat within
// one Sequence, even when called several times in the same millisecond.
package idgen

import (
	"strconv"
	"sync"
	"time"
)

type Sequence struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewSequence returns a sequence driven by now; nil means time.Now.
func NewSequence(now func() time.Time) *Sequence {
	if now == nil {
		now = time.Now
	}
	return &Sequence{now: now}
}

// Next returns max(current unix millis, previous value + 1).
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.now().UnixMilli()
	if v <= s.last {
		v = s.last + 1
	}
	s.last = v
	return v
}

// NextString is Next formatted in base 10.
func (s *Sequence) NextString() string {
	return strconv.FormatInt(s.Next(), 10)
}

// NextWithPrefix returns prefix followed by Next, e.g. "sk1700000000000".
func (s *Sequence) NextWithPrefix(prefix string) string {
	return prefix + s.NextString()
}

// Observe raises the floor so that later values are greater than v. Used to
// seed the sequence from identifiers that were already persisted.
func (s *Sequence) Observe(v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v > s.last {
		s.last = v
	}
}

// ObserveString parses the trailing digits of id (after prefix) and observes
// them. Ids that do not follow the scheme are ignored.
func (s *Sequence) ObserveString(prefix, id string) {
	if len(id) <= len(prefix) || id[:len(prefix)] != prefix {
		return
	}
	v, err := strconv.ParseInt(id[len(prefix):], 10, 64)
	if err != nil {
		return
	}
	s.Observe(v)
}
