package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/diceroller/internal/dice"
)

func TestStore_FollowsRoll(t *testing.T) {
	store := NewStore(dice.Spec{Count: 2, Sides: 6})
	snap := store.Snapshot()
	assert.Equal(t, IDLE, snap.Phase)
	assert.Nil(t, snap.Faces)

	store.OnFrame(dice.Spec{Count: 2, Sides: 6}, []int{1, 4})
	snap = store.Snapshot()
	assert.Equal(t, ANIMATING, snap.Phase)
	assert.Equal(t, []int{1, 4}, snap.Faces)
	assert.False(t, snap.Final)

	store.OnFinalResult(dice.Result{Spec: dice.Spec{Count: 2, Sides: 6}, Values: []int{3, 5}})
	store.OnHistoryChanged([]string{"2d6 -> [3, 5] = 8"})
	snap = store.Snapshot()
	assert.Equal(t, IDLE, snap.Phase)
	assert.True(t, snap.Final)
	assert.Equal(t, 8, snap.Total)
	assert.Equal(t, []string{"2d6 -> [3, 5] = 8"}, snap.History)
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	store := NewStore(dice.Spec{Count: 1, Sides: 20})
	values := []int{7}
	store.OnFrame(dice.Spec{Count: 1, Sides: 20}, values)
	values[0] = 99

	snap := store.Snapshot()
	require.Equal(t, []int{7}, snap.Faces)
	snap.Faces[0] = 42
	assert.Equal(t, []int{7}, store.Snapshot().Faces)
}

func TestStore_ConfigClearsMessage(t *testing.T) {
	store := NewStore(dice.Spec{Count: 1, Sides: 6})
	store.SetMessage("invalid dice configuration")
	assert.Equal(t, "invalid dice configuration", store.Snapshot().Message)

	store.OnConfigChanged(dice.Spec{Count: 3, Sides: 8})
	snap := store.Snapshot()
	assert.Empty(t, snap.Message)
	assert.Equal(t, dice.Spec{Count: 3, Sides: 8}, snap.Spec)
	assert.Equal(t, "idle", snap.Phase.String())
}

func TestStore_VersionBumpsOnChange(t *testing.T) {
	store := NewStore(dice.Spec{Count: 1, Sides: 6})
	v0 := store.Version()
	store.OnFrame(dice.Spec{Count: 1, Sides: 6}, []int{2})
	v1 := store.Version()
	assert.Greater(t, v1, v0)
	_ = store.Snapshot()
	assert.Equal(t, v1, store.Version(), "reads do not bump the version")
}
