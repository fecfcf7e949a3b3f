// Package dicetest provides deterministic dice sources for tests.
package dicetest

import "sync"

// Sequence is a dice.Source that replays face values (1-based) in order and
// wraps around when exhausted. Faces larger than n are reduced modulo n.
type Sequence struct {
	mu    sync.Mutex
	faces []int
	pos   int
	calls int
}

// NewSequence returns a Source that yields the given faces.
func NewSequence(faces ...int) *Sequence {
	if len(faces) == 0 {
		faces = []int{1}
	}
	return &Sequence{faces: faces}
}

func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("dicetest: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	face := s.faces[s.pos%len(s.faces)]
	s.pos++
	s.calls++
	r := (face - 1) % n
	if r < 0 {
		r += n
	}
	return r
}

// Calls returns how many values have been drawn.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
