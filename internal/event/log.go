package event

import "github.com/1siamBot/worldsim-core/internal/core"

// Log is an append-only, chronological record of every Event the
// simulation has emitted, with indices kept consistent on every append.
type Log struct {
	nextID     ID
	all        []Event
	byID       map[ID]int // event ID -> index into all
	byCategory map[Category][]ID
	byEntity   map[core.EntityID][]ID
}

// NewLog creates an empty Log whose ID counter starts at 0.
func NewLog() *Log {
	return &Log{
		byID:       make(map[ID]int),
		byCategory: make(map[Category][]ID),
		byEntity:   make(map[core.EntityID][]ID),
	}
}

// NextID returns the ID the next AllocateID call will return, without
// consuming it.
func (l *Log) NextID() ID {
	return l.nextID
}

// Append adds e to the chronological list under its own already-assigned
// ID (see AllocateID) and updates the category/entity indices. Appending an
// event whose ID was never allocated from this log (e.g. during snapshot
// restore) is allowed; Append advances the log's counter past it so
// subsequent AllocateID calls never collide.
func (l *Log) Append(e Event) Event {
	if e.ID >= l.nextID {
		l.nextID = e.ID + 1
	}

	idx := len(l.all)
	l.all = append(l.all, e)
	l.byID[e.ID] = idx
	l.byCategory[e.Category] = append(l.byCategory[e.Category], e.ID)
	for _, p := range e.Participants {
		l.byEntity[p] = append(l.byEntity[p], e.ID)
	}
	return e
}

// AllocateID reserves and returns the next event ID without appending
// anything. Used by the cascade engine to stamp a new event's ID before
// linking it into its cause's Consequences list and emitting it on the bus.
func (l *Log) AllocateID() ID {
	id := l.nextID
	l.nextID++
	return id
}

// GetAll returns every event in insertion order. The returned slice is
// owned by the caller; mutating it does not affect the log.
func (l *Log) GetAll() []Event {
	out := make([]Event, len(l.all))
	copy(out, l.all)
	return out
}

// GetByID returns the event with the given ID, if present.
func (l *Log) GetByID(id ID) (Event, bool) {
	idx, ok := l.byID[id]
	if !ok {
		return Event{}, false
	}
	return l.all[idx], true
}

// GetByCategory returns every event of category c, in insertion order.
func (l *Log) GetByCategory(c Category) []Event {
	ids := l.byCategory[c]
	out := make([]Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.all[l.byID[id]])
	}
	return out
}

// GetByEntity returns every event that lists id as a participant, in
// insertion order.
func (l *Log) GetByEntity(id core.EntityID) []Event {
	ids := l.byEntity[id]
	out := make([]Event, 0, len(ids))
	for _, eid := range ids {
		out = append(out, l.all[l.byID[eid]])
	}
	return out
}

// GetByTimeRange returns every event with start <= Timestamp <= end,
// inclusive at both ends, in insertion order.
func (l *Log) GetByTimeRange(start, end uint64) []Event {
	var out []Event
	for _, e := range l.all {
		if e.Timestamp >= start && e.Timestamp <= end {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of events appended.
func (l *Log) Count() int {
	return len(l.all)
}

// LinkConsequence appends childID to the Consequences list of the event
// identified by causeID, in the log's own stored copy. Event values a caller
// already holds are not updated. This is where the cascade engine grows the
// logged cause-effect DAG by one edge.
func (l *Log) LinkConsequence(causeID ID, childID ID) {
	idx, ok := l.byID[causeID]
	if !ok {
		return
	}
	l.all[idx].Consequences = append(l.all[idx].Consequences, childID)
}

// AllCauses returns the breadth-first closure of e's Causes edges: every
// event reachable by repeatedly following Causes, with no duplicates. Pure
// read helper for collaborators (e.g. a narrative arc detector) that walk
// the DAG; it performs no mutation.
func (l *Log) AllCauses(e Event) []Event {
	return l.walk(e.Causes, func(ev Event) []ID { return ev.Causes })
}

// AllConsequences returns the breadth-first closure of e's Consequences
// edges.
func (l *Log) AllConsequences(e Event) []Event {
	return l.walk(e.Consequences, func(ev Event) []ID { return ev.Consequences })
}

func (l *Log) walk(frontier []ID, next func(Event) []ID) []Event {
	seen := make(map[ID]bool)
	var out []Event
	queue := append([]ID(nil), frontier...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		ev, ok := l.GetByID(id)
		if !ok {
			continue
		}
		out = append(out, ev)
		queue = append(queue, next(ev)...)
	}
	return out
}
