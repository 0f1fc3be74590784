package diary

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// pickOp is the token held by the one operation allowed to wait on a file
// picker.
type pickOp struct {
	id      uuid.UUID
	name    string
	started time.Time
}

type pickSlot struct {
	mu sync.Mutex
	op *pickOp
}

func (s *pickSlot) acquire(name string, now time.Time) (*pickOp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.op != nil {
		return nil, ErrBusy
	}
	s.op = &pickOp{id: uuid.New(), name: name, started: now}
	return s.op, nil
}

// release frees the slot if op still holds it.
func (s *pickSlot) release(op *pickOp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.op != nil && s.op.id == op.id {
		s.op = nil
	}
}

func (s *pickSlot) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.op != nil
}
