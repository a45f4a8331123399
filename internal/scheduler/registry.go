package scheduler

import (
	"fmt"
	"sort"
)

// ErrDuplicateSystem is returned by Register when name is already taken.
type ErrDuplicateSystem struct {
	Name string
}

func (e *ErrDuplicateSystem) Error() string {
	return fmt.Sprintf("scheduler: duplicate system %q", e.Name)
}

type registered struct {
	system System
	order  int // registration order, for stable priority tie-break
}

// Registry holds every System known to a simulation instance and answers
// priority/frequency queries for the engine's tick loop.
type Registry struct {
	byName map[string]*registered
	order  []string // registration order of names, for stable enumeration
	seq    int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*registered)}
}

// Register adds s under its own Name(). Fails with ErrDuplicateSystem if
// that name is already registered.
func (r *Registry) Register(s System) error {
	name := s.Name()
	if _, exists := r.byName[name]; exists {
		return &ErrDuplicateSystem{Name: name}
	}
	r.byName[name] = &registered{system: s, order: r.seq}
	r.seq++
	r.order = append(r.order, name)
	return nil
}

// Unregister removes the system with the given name, if present.
func (r *Registry) Unregister(name string) {
	if _, ok := r.byName[name]; !ok {
		return
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Lookup returns the system registered under name, if any.
func (r *Registry) Lookup(name string) (System, bool) {
	reg, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return reg.system, true
}

// Count returns the number of registered systems.
func (r *Registry) Count() int {
	return len(r.byName)
}

// Names returns every registered system name, in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ByFrequency returns every system whose Frequency() equals f, in
// registration order.
func (r *Registry) ByFrequency(f Frequency) []System {
	var out []System
	for _, name := range r.order {
		s := r.byName[name].system
		if s.Frequency() == f {
			out = append(out, s)
		}
	}
	return out
}

// ByPriority returns every system whose Priority() equals p, in
// registration order.
func (r *Registry) ByPriority(p Priority) []System {
	var out []System
	for _, name := range r.order {
		s := r.byName[name].system
		if s.Priority() == p {
			out = append(out, s)
		}
	}
	return out
}

// GetOrderedSystems returns every registered system sorted ascending by
// Priority, with registration order as the stable tie-break.
func (r *Registry) GetOrderedSystems() []System {
	regs := make([]*registered, 0, len(r.byName))
	for _, name := range r.order {
		regs = append(regs, r.byName[name])
	}
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].system.Priority() < regs[j].system.Priority()
	})
	out := make([]System, len(regs))
	for i, reg := range regs {
		out[i] = reg.system
	}
	return out
}

// GetSystemsForTick returns the priority-sorted subset of systems eligible
// to run on tick, per the frequency filter: a system with period P runs on
// tick t iff t mod P == 0. FrequencyOnEvent systems never satisfy this
// filter.
func (r *Registry) GetSystemsForTick(tick uint64) []System {
	var eligible []System
	for _, s := range r.GetOrderedSystems() {
		period, ok := s.Frequency().Period()
		if !ok {
			continue
		}
		if tick%period == 0 {
			eligible = append(eligible, s)
		}
	}
	return eligible
}
