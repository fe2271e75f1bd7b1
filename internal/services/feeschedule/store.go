package feeschedule

import (
	"sync/atomic"

	"tixpay/internal/settlement"
)

// Store holds the schedule in force. Readers never lock; a new version replaces
// the pointer, so computations already holding the old schedule finish against it.
type Store struct {
	current atomic.Pointer[settlement.FeeSchedule]
}

func NewStore(initial *settlement.FeeSchedule) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

func (s *Store) Load() *settlement.FeeSchedule {
	return s.current.Load()
}

// Swap activates next and returns the schedule it replaced.
func (s *Store) Swap(next *settlement.FeeSchedule) *settlement.FeeSchedule {
	return s.current.Swap(next)
}
