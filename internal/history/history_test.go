package history_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/history"
)

func result(total int) dice.Result {
	return dice.Result{Spec: dice.Spec{Count: 1, Sides: 100}, Values: []int{total}}
}

func TestLog_AppendFormatsEntry(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	log := history.New(history.DefaultSize, clock)

	entry := log.Append(dice.Result{Spec: dice.Spec{Count: 2, Sides: 6}, Values: []int{3, 5}})
	assert.Equal(t, "2d6 -> [3, 5] = 8", entry.Text)
	assert.Equal(t, clock.Now(), entry.At)
	assert.Equal(t, []string{"2d6 -> [3, 5] = 8"}, log.Lines())
}

func TestLog_SixteenRollsKeepFifteen(t *testing.T) {
	log := history.New(history.DefaultSize, nil)
	for i := 1; i <= 16; i++ {
		log.Append(result(i))
	}
	require.Equal(t, 15, log.Len())
	lines := log.Lines()
	assert.Equal(t, "1d100 -> [2] = 2", lines[0], "the 1st roll is evicted")
	assert.Equal(t, "1d100 -> [16] = 16", lines[14])
}

func TestLog_Clear(t *testing.T) {
	log := history.New(3, nil)
	log.Clear()
	assert.Equal(t, 0, log.Len())
	for i := 0; i < 10; i++ {
		log.Append(result(i + 1))
	}
	log.Clear()
	assert.Empty(t, log.Entries())
	log.Append(result(9))
	assert.Equal(t, 1, log.Len())
}

func TestLog_SizeCoercedToOne(t *testing.T) {
	log := history.New(0, nil)
	assert.Equal(t, 1, log.Size())
	log.Append(result(1))
	log.Append(result(2))
	assert.Equal(t, []string{"1d100 -> [2] = 2"}, log.Lines())
}

func TestLog_EntriesIsACopy(t *testing.T) {
	log := history.New(5, nil)
	log.Append(result(1))
	entries := log.Entries()
	entries[0].Text = "mutated"
	assert.Equal(t, "1d100 -> [1] = 1", log.Lines()[0])
}

// TestLog_FIFO_Property checks the cap and eviction order for arbitrary sizes
// and roll counts.
func TestLog_FIFO_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 30).Draw(rt, "size")
		n := rapid.IntRange(0, 100).Draw(rt, "rolls")
		log := history.New(size, nil)
		for i := 1; i <= n; i++ {
			log.Append(result(i))
			assert.LessOrEqual(rt, log.Len(), size)
		}
		lines := log.Lines()
		want := min(n, size)
		require.Len(rt, lines, want)
		for i, line := range lines {
			v := n - want + 1 + i
			assert.Equal(rt, fmt.Sprintf("1d100 -> [%d] = %d", v, v), line)
		}
	})
}
