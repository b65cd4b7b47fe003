package engine

import "sync"

// slot holds the most recently published frame. There is a single writer
// (the worker) and any number of readers; the lock is held only for the
// pointer copy, never while rendering or drawing, so neither side can
// stall the other.
type slot struct {
	mu    sync.Mutex
	frame *Frame
}

func (s *slot) publish(f *Frame) {
	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()
}

func (s *slot) latest() (*Frame, bool) {
	s.mu.Lock()
	f := s.frame
	s.mu.Unlock()
	return f, f != nil
}
