// Package snapshot implements deep-clone snapshotting of a World, Clock,
// and event Log, and exact reconstruction from a captured snapshot — the
// substrate for counterfactual ("what-if") branching.
package snapshot

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/1siamBot/worldsim-core/internal/core"
	"github.com/1siamBot/worldsim-core/internal/event"
	"github.com/1siamBot/worldsim-core/internal/metrics"
)

// ErrSnapshotMismatch is returned by Restore when a component type's
// payload shape disagrees with what the registered CloneFn for that type
// expects. It is fatal to the Restore call but leaves the source world
// untouched.
var ErrSnapshotMismatch = errors.New("snapshot: component payload mismatch")

// CloneFn deep-clones one component value of a registered type. Callers
// register one per component type (see Manager.RegisterCloner), since
// there is no runtime reflection-based deep copy that can see through
// arbitrary user structs safely.
type CloneFn func(v any) (any, error)

// ComponentSnapshot is one component-type's captured (entity -> component)
// map, deep-cloned away from the live World's store.
type ComponentSnapshot struct {
	Type ComponentTypeName
	Data map[core.EntityID]any
}

// ComponentTypeName is a type alias of core.ComponentType.
type ComponentTypeName = core.ComponentType

// Snapshot is a frozen, self-contained bundle of world state. It shares no
// mutable references with the World it was captured from.
type Snapshot struct {
	ID            string
	Label         string
	Tick          uint64
	AliveEntities map[core.EntityID]struct{}
	MaxEntityID   int64 // -1 if no alive entities
	Components    []ComponentSnapshot
	Events        []event.Event
	CreatedAt     time.Time
}

// Manager produces and restores Snapshots. Component clone functions must
// be registered once per component type before Snapshot/Restore can handle
// that type.
type Manager struct {
	cloners map[core.ComponentType]CloneFn
	metrics *metrics.Registry
}

// NewManager creates an empty Manager. m may be nil.
func NewManager(m *metrics.Registry) *Manager {
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &Manager{cloners: make(map[core.ComponentType]CloneFn), metrics: m}
}

// RegisterCloner associates a CloneFn with a component type. Re-registering
// overwrites the previous function for that type.
func (m *Manager) RegisterCloner(ct core.ComponentType, fn CloneFn) {
	m.cloners[ct] = fn
}

// Snapshot captures the entire state of world/clock/log into an immutable
// bundle: the alive set, the highest alive entity ID, every registered
// component type's deep-cloned (entity, component) pairs, a deep-cloned
// ordered event list, and the clock tick.
func (m *Manager) Snapshot(world *core.World, clock *core.Clock, log *event.Log, label string) (*Snapshot, error) {
	alive := world.AllAlive()
	aliveSet := make(map[core.EntityID]struct{}, len(alive))
	maxID := int64(-1)
	for _, id := range alive {
		aliveSet[id] = struct{}{}
		if int64(id) > maxID {
			maxID = int64(id)
		}
	}

	var components []ComponentSnapshot
	for _, ct := range world.ComponentTypes() {
		cloner, ok := m.cloners[ct]
		if !ok {
			// No cloner registered: the type carries no data we know how to
			// deep-copy safely, so it is omitted from the snapshot rather
			// than shallow-aliased into it.
			continue
		}
		data := make(map[core.EntityID]any)
		for _, id := range alive {
			v, ok := core.GetComponent[any](world, ct, id)
			if !ok {
				continue
			}
			cloned, err := cloner(v)
			if err != nil {
				return nil, err
			}
			data[id] = cloned
		}
		components = append(components, ComponentSnapshot{Type: ct, Data: data})
	}

	var events []event.Event
	for _, e := range log.GetAll() {
		events = append(events, e.Clone())
	}

	snap := &Snapshot{
		ID:            uuid.NewString(),
		Label:         label,
		Tick:          clock.Tick(),
		AliveEntities: aliveSet,
		MaxEntityID:   maxID,
		Components:    components,
		Events:        events,
		CreatedAt:     time.Now(),
	}
	m.metrics.SnapshotsTaken.Inc()
	return snap, nil
}

// WorldFactory, ClockFactory, and LogFactory construct the fresh
// world/clock/log a Restore reconstructs into.
type (
	WorldFactory func() *core.World
	ClockFactory func(ticksPerYear uint64) *core.Clock
	LogFactory   func() *event.Log
)

// Restore reconstructs an independent world/clock/log from snap. Entities
// 0..MaxEntityID are created in order (so IDs match exactly, because the
// entity counter is monotonic), every ID not in AliveEntities is
// immediately destroyed (preserving "ghost" semantics), every captured
// component is deep-cloned again (so mutating the restored world can never
// reach back into the snapshot) and inserted, and every event is
// deep-cloned and appended in chronological order.
func (m *Manager) Restore(snap *Snapshot, newWorld WorldFactory, newClock ClockFactory, ticksPerYear uint64, newLog LogFactory) (*core.World, *core.Clock, *event.Log, error) {
	w := newWorld()
	c := newClock(ticksPerYear)
	l := newLog()

	c.SetTick(snap.Tick)

	for _, cs := range snap.Components {
		w.RegisterComponentType(cs.Type)
	}

	for i := int64(0); i <= snap.MaxEntityID; i++ {
		id := core.EntityID(i)
		w.ForceCreateEntity(id)
		if _, alive := snap.AliveEntities[id]; !alive {
			w.DestroyEntity(id)
		}
	}

	for _, cs := range snap.Components {
		cloner, ok := m.cloners[cs.Type]
		if !ok {
			return nil, nil, nil, ErrSnapshotMismatch
		}
		for id, v := range cs.Data {
			cloned, err := cloner(v)
			if err != nil {
				return nil, nil, nil, ErrSnapshotMismatch
			}
			if err := core.AddComponent(w, cs.Type, id, cloned); err != nil {
				return nil, nil, nil, ErrSnapshotMismatch
			}
		}
	}

	for _, e := range snap.Events {
		l.Append(e.Clone())
	}

	return w, c, l, nil
}
