package models

import (
	"strconv"
	"sync"
	"time"
)

// IDSource hands out record ids in the original format: the decimal
// Unix millisecond timestamp. Ids from one source are strictly increasing
// even when several are taken within the same millisecond.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// NewIDSourceAt is NewIDSource with an injected clock.
func NewIDSourceAt(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

// Observe raises the floor so later ids sort after id. Non-numeric ids are
// ignored.
func (s *IDSource) Observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	s.mu.Lock()
	if n > s.last {
		s.last = n
	}
	s.mu.Unlock()
}

func (s *IDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.now().UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return strconv.FormatInt(n, 10)
}
