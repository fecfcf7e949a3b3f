// Package history keeps a bounded, in-memory log of past rolls.
package history

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rook-computer/diceroller/internal/dice"
)

// DefaultSize is the number of rolls kept on screen.
const DefaultSize = 15

// Entry is one recorded roll.
type Entry struct {
	Text   string
	Result dice.Result
	At     time.Time
}

// Log is a FIFO-evicting roll history, most recent last.
type Log struct {
	mu      sync.RWMutex
	size    int
	entries []Entry
	clock   clockwork.Clock
}

// New returns a Log holding at most size entries. size < 1 is treated as 1.
// A nil clock uses the real clock.
func New(size int, clock clockwork.Clock) *Log {
	if size < 1 {
		size = 1
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Log{size: size, clock: clock, entries: make([]Entry, 0, size)}
}

// Size returns the retention cap.
func (l *Log) Size() int { return l.size }

// Append records result, evicting the oldest entries beyond the cap.
func (l *Log) Append(result dice.Result) Entry {
	entry := Entry{Text: result.String(), Result: result, At: l.clock.Now()}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.size; over > 0 {
		// Shift down rather than reslice so the backing array does not grow forever.
		n := copy(l.entries, l.entries[over:])
		clear(l.entries[n:])
		l.entries = l.entries[:n]
	}
	return entry
}

// Entries returns a copy of the log, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lines returns the entry texts, oldest first.
func (l *Log) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Text
	}
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear empties the log.
func (l *Log) Clear() {
	l.mu.Lock()
	clear(l.entries)
	l.entries = l.entries[:0]
	l.mu.Unlock()
}
