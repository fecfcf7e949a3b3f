package dice_test

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/dice/dicetest"
)

func TestConfigure_Bounds(t *testing.T) {
	cases := []struct {
		count, sides int
		ok           bool
	}{
		{1, 6, true},
		{20, 100, true},
		{3, 7, true},
		{1, 1, true},
		{0, 6, false},
		{21, 6, false},
		{-1, 6, false},
		{2, 0, false},
		{2, -4, false},
		{20, dice.MaxSides, true},
		{1, dice.MaxSides + 1, false},
		{20, math.MaxInt, false},
	}
	for _, c := range cases {
		spec, err := dice.Configure(c.count, c.sides)
		if c.ok {
			require.NoError(t, err, "%dd%d", c.count, c.sides)
			assert.Equal(t, dice.Spec{Count: c.count, Sides: c.sides}, spec)
			continue
		}
		require.Error(t, err, "%dd%d", c.count, c.sides)
		assert.True(t, errors.Is(err, dice.ErrInvalidConfiguration))
	}
}

func TestResult_String(t *testing.T) {
	r := dice.Result{Spec: dice.Spec{Count: 2, Sides: 6}, Values: []int{3, 5}}
	assert.Equal(t, 8, r.Total())
	assert.Equal(t, "2d6 -> [3, 5] = 8", r.String())
}

func TestRollOnce_SeededScenario(t *testing.T) {
	src := dicetest.NewSequence(3, 5)
	result, err := dice.Roll(src, dice.MustParse("2d6"))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, result.Values)
	assert.Equal(t, 8, result.Total())
	assert.Equal(t, "2d6 -> [3, 5] = 8", result.String())
}

func TestRoll_RejectsInvalidSpec(t *testing.T) {
	_, err := dice.Roll(dice.NewCryptoSource(), dice.Spec{Count: 0, Sides: 6})
	assert.ErrorIs(t, err, dice.ErrInvalidConfiguration)
}

func TestRoll_TotalExactAtMaxSides(t *testing.T) {
	spec, err := dice.Configure(dice.MaxCount, dice.MaxSides)
	require.NoError(t, err)
	result, err := dice.Roll(dice.NewSeededSource(1), spec)
	require.NoError(t, err)

	exact := new(big.Int)
	for _, v := range result.Values {
		exact.Add(exact, big.NewInt(int64(v)))
	}
	require.True(t, exact.IsInt64())
	assert.Equal(t, exact.Int64(), int64(result.Total()))
}

func TestRollOnce_InRange_Property(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(dice.MinCount, dice.MaxCount).Draw(rt, "count")
		sides := rapid.IntRange(2, 1000).Draw(rt, "sides")
		values := dice.RollOnce(src, dice.Spec{Count: count, Sides: sides})
		require.Len(rt, values, count)
		for _, v := range values {
			assert.GreaterOrEqual(rt, v, 1)
			assert.LessOrEqual(rt, v, sides)
		}
	})
}

func TestResult_Total_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		spec := dice.Spec{
			Count: rapid.IntRange(dice.MinCount, dice.MaxCount).Draw(rt, "count"),
			Sides: rapid.SampledFrom(dice.StandardSides).Draw(rt, "sides"),
		}
		result, err := dice.Roll(dice.NewSeededSource(seed), spec)
		require.NoError(rt, err)
		sum := 0
		for _, v := range result.Values {
			sum += v
		}
		assert.Equal(rt, sum, result.Total())
		assert.True(rt, strings.HasSuffix(result.String(), "= "+strconv.Itoa(sum)))
	})
}

func TestSeededSource_Reproducible(t *testing.T) {
	spec := dice.MustParse("20d100")
	a := dice.RollOnce(dice.NewSeededSource(42), spec)
	b := dice.RollOnce(dice.NewSeededSource(42), spec)
	assert.Equal(t, a, b)
}

func TestCryptoSource_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestNewSeed(t *testing.T) {
	_, err := dice.NewSeed()
	require.NoError(t, err)
}

func TestNextPrevSides(t *testing.T) {
	assert.Equal(t, 8, dice.NextSides(6))
	assert.Equal(t, 4, dice.NextSides(100))
	assert.Equal(t, 8, dice.NextSides(7))
	assert.Equal(t, 4, dice.PrevSides(6))
	assert.Equal(t, 100, dice.PrevSides(4))
	for _, s := range dice.StandardSides {
		assert.Equal(t, s, dice.PrevSides(dice.NextSides(s)))
	}
}

func TestLoggedRoller_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	roller := dice.NewLoggedRoller(dicetest.NewSequence(4, 2), zap.New(core))

	result, err := roller.Roll(dice.MustParse("2d6"))
	require.NoError(t, err)
	assert.Equal(t, 6, result.Total())

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "2d6", fields["spec"])
	assert.EqualValues(t, 6, fields["total"])
}

func TestLoggedRoller_InvalidSpecNotLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	roller := dice.NewLoggedRoller(dice.NewSeededSource(1), zap.New(core))

	_, err := roller.Roll(dice.Spec{Count: 1, Sides: dice.MaxSides + 1})
	assert.ErrorIs(t, err, dice.ErrInvalidConfiguration)
	assert.Zero(t, logs.Len())
}
