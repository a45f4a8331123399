package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/worldsim-core/internal/core"
	"github.com/1siamBot/worldsim-core/internal/event"
	"github.com/1siamBot/worldsim-core/internal/snapshot"
)

type position struct{ X, Y int }
type health struct{ HP int }
type label struct{ Name string }

func cloneInt(v any) (any, error) {
	p := v.(position)
	return p, nil
}
func cloneHealth(v any) (any, error) {
	h := v.(health)
	return h, nil
}
func cloneLabel(v any) (any, error) {
	l := v.(label)
	return l, nil
}

func buildWorld(t *testing.T) (*core.World, *core.Clock, *event.Log, *snapshot.Manager) {
	t.Helper()
	w := core.NewWorld()
	w.RegisterComponentType("Position")
	w.RegisterComponentType("Health")
	w.RegisterComponentType("Label")

	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		require.NoError(t, core.AddComponent(w, "Position", id, position{X: i, Y: i * 2}))
		require.NoError(t, core.AddComponent(w, "Health", id, health{HP: 100 - i}))
		require.NoError(t, core.AddComponent(w, "Label", id, label{Name: "e"}))
	}

	clock := core.NewClock(360)
	clock.SetTick(42)

	log := event.NewLog()
	for i := 0; i < 10; i++ {
		id := log.AllocateID()
		log.Append(event.Event{ID: id, Category: event.CategoryEconomic, Timestamp: uint64(i)})
	}

	m := snapshot.NewManager(nil)
	m.RegisterCloner("Position", cloneInt)
	m.RegisterCloner("Health", cloneHealth)
	m.RegisterCloner("Label", cloneLabel)

	return w, clock, log, m
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	w, clock, log, m := buildWorld(t)

	snap, err := m.Snapshot(w, clock, log, "checkpoint")
	require.NoError(t, err)

	restoredWorld, restoredClock, restoredLog, err := m.Restore(
		snap,
		core.NewWorld,
		core.NewClock,
		360,
		event.NewLog,
	)
	require.NoError(t, err)

	assert.ElementsMatch(t, w.AllAlive(), restoredWorld.AllAlive())
	assert.Equal(t, clock.Tick(), restoredClock.Tick())
	assert.Equal(t, log.Count(), restoredLog.Count())

	for _, id := range w.AllAlive() {
		original, _ := core.GetComponent[position](w, "Position", id)
		restored, ok := core.GetComponent[position](restoredWorld, "Position", id)
		require.True(t, ok)
		assert.Equal(t, original, restored)
	}
}

func TestMutatingRestoredWorldDoesNotAffectSnapshot(t *testing.T) {
	w, clock, log, m := buildWorld(t)
	snap, err := m.Snapshot(w, clock, log, "checkpoint")
	require.NoError(t, err)

	restoredWorld, _, _, err := m.Restore(snap, core.NewWorld, core.NewClock, 360, event.NewLog)
	require.NoError(t, err)

	ids := restoredWorld.AllAlive()
	require.NotEmpty(t, ids)
	target := ids[0]

	require.NoError(t, core.AddComponent(restoredWorld, "Position", target, position{X: 999, Y: 999}))

	original, _ := core.GetComponent[position](w, "Position", target)
	assert.NotEqual(t, position{X: 999, Y: 999}, original)

	snapComponent := snap.Components
	for _, cs := range snapComponent {
		if cs.Type == "Position" {
			assert.NotEqual(t, position{X: 999, Y: 999}, cs.Data[target])
		}
	}
}

func TestSnapshotOmitsUnregisteredComponentTypes(t *testing.T) {
	w := core.NewWorld()
	w.RegisterComponentType("Unregistered")
	id := w.CreateEntity()
	require.NoError(t, core.AddComponent(w, "Unregistered", id, 1))

	clock := core.NewClock(360)
	log := event.NewLog()
	m := snapshot.NewManager(nil) // no cloner registered for "Unregistered"

	snap, err := m.Snapshot(w, clock, log, "")
	require.NoError(t, err)
	assert.Empty(t, snap.Components)
}

func TestRestoreFailsWithoutClonerForCapturedType(t *testing.T) {
	w := core.NewWorld()
	w.RegisterComponentType("Position")
	id := w.CreateEntity()
	require.NoError(t, core.AddComponent(w, "Position", id, position{X: 1, Y: 1}))

	clock := core.NewClock(360)
	log := event.NewLog()

	capturer := snapshot.NewManager(nil)
	capturer.RegisterCloner("Position", cloneInt)
	snap, err := capturer.Snapshot(w, clock, log, "")
	require.NoError(t, err)

	restorer := snapshot.NewManager(nil) // missing cloner
	_, _, _, err = restorer.Restore(snap, core.NewWorld, core.NewClock, 360, event.NewLog)
	assert.ErrorIs(t, err, snapshot.ErrSnapshotMismatch)
}

func TestGhostEntitiesAreRecreatedThenDestroyed(t *testing.T) {
	w := core.NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	w.DestroyEntity(a)
	_ = b

	clock := core.NewClock(360)
	log := event.NewLog()
	m := snapshot.NewManager(nil)

	snap, err := m.Snapshot(w, clock, log, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.MaxEntityID)

	restoredWorld, _, _, err := m.Restore(snap, core.NewWorld, core.NewClock, 360, event.NewLog)
	require.NoError(t, err)

	assert.False(t, restoredWorld.IsAlive(a))
	assert.True(t, restoredWorld.IsAlive(b))
	next := restoredWorld.CreateEntity()
	assert.Equal(t, core.EntityID(2), next)
}
