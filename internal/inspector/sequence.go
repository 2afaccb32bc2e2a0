package inspector

import "sync/atomic"

type SequenceGenerator interface {
	Next() uint64
	Current() uint64
}

// AtomicSequence numbers outgoing patches from 1.
type AtomicSequence struct {
	counter atomic.Uint64
}

func NewSequence() *AtomicSequence {
	return &AtomicSequence{}
}

func (s *AtomicSequence) Next() uint64 {
	return s.counter.Add(1)
}

func (s *AtomicSequence) Current() uint64 {
	return s.counter.Load()
}
