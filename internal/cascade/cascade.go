// Package cascade implements the consequence scheduling and resolution
// engine: given an event and its attached consequence rules, it decides
// probabilistically which consequences fire, when, and with what
// significance, maintaining a priority queue of pending consequences keyed
// by fire-tick.
package cascade

import (
	"container/heap"

	"github.com/1siamBot/worldsim-core/internal/core"
	"github.com/1siamBot/worldsim-core/internal/event"
	"github.com/1siamBot/worldsim-core/internal/worldlog"
)

// DefaultMaxCascadeDepth is the default recursion ceiling for processEvent.
const DefaultMaxCascadeDepth = 10

// shouldContinueCascadeThreshold is the minimum effective probability a
// rule must clear to be scheduled at all; below it the rule is dropped
// with no pending entry and no log record.
const shouldContinueCascadeThreshold = 0.01

// RandomFn returns a uniform value in [0,1). The cascade engine never calls
// a global RNG; production callers inject the world's seeded source
// (internal/rng), tests inject a deterministic stub.
type RandomFn func() float64

// pendingConsequence is one scheduled-but-unresolved consequence.
type pendingConsequence struct {
	fireTick     uint64
	causeID      event.ID
	causeSig     int
	rule         event.ConsequenceRule
	chainDepth   int
	participants []core.EntityID
	seq          int // FIFO tie-break for equal fireTick
}

// pendingQueue is a min-heap on fireTick, FIFO among ties.
type pendingQueue []*pendingConsequence

func (q pendingQueue) Len() int { return len(q) }
func (q pendingQueue) Less(i, j int) bool {
	if q[i].fireTick != q[j].fireTick {
		return q[i].fireTick < q[j].fireTick
	}
	return q[i].seq < q[j].seq
}
func (q pendingQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *pendingQueue) Push(x any)   { *q = append(*q, x.(*pendingConsequence)) }
func (q *pendingQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Engine owns the pending-consequence queue and drives cascade resolution.
// All its state is exclusively its own; it is not safe for concurrent use,
// matching the core's single-threaded contract.
type Engine struct {
	Log             *event.Log
	Bus             *event.Bus
	MaxCascadeDepth int
	Random          RandomFn
	logger          *worldlog.Logger

	pending pendingQueue
	seq     int
}

// NewEngine creates a cascade Engine bound to log and bus. maxDepth <= 0
// uses DefaultMaxCascadeDepth. rnd must never be nil in production use;
// tests are expected to supply a deterministic stub.
func NewEngine(log *event.Log, bus *event.Bus, maxDepth int, rnd RandomFn, logger *worldlog.Logger) *Engine {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCascadeDepth
	}
	if logger == nil {
		logger = worldlog.Default()
	}
	e := &Engine{
		Log:             log,
		Bus:             bus,
		MaxCascadeDepth: maxDepth,
		Random:          rnd,
		logger:          logger,
	}
	heap.Init(&e.pending)
	return e
}

// Result summarizes one ProcessEvent or ResolveTick invocation.
type Result struct {
	EventsGenerated     int
	PendingCountRemaining int
	MaxDepthReached     int
}

// ProcessEvent evaluates every consequence rule attached to cause, enqueuing
// each surviving rule as a pendingConsequence. It does not itself roll
// probabilities or create events — that happens in ResolveTick, once the
// rule's fireTick has arrived. Recursion (via ResolveTick's callback into
// ProcessEvent for newly-created events) halts once chainDepth reaches
// MaxCascadeDepth.
func (e *Engine) ProcessEvent(cause event.Event, currentTick uint64, chainDepth int) Result {
	if chainDepth >= e.MaxCascadeDepth {
		return Result{MaxDepthReached: chainDepth}
	}

	maxDepth := chainDepth
	for _, rule := range cause.Rules {
		adjusted := adjustDampeningForSignificance(rule.Dampening, cause.Significance)
		p := calculateDampenedProbability(rule.BaseProbability, adjusted, chainDepth)

		if rule.Category != cause.Category {
			modifier, tabled := getTransitionModifier(cause.Category, rule.Category)
			if !tabled {
				modifier = implausibleTransitionPenalty
			}
			p *= modifier
		}

		if p < shouldContinueCascadeThreshold {
			continue
		}

		fireTick := currentTick + rule.DelayTicks + cause.TemporalOffset

		e.seq++
		heap.Push(&e.pending, &pendingConsequence{
			fireTick:     fireTick,
			causeID:      cause.ID,
			causeSig:     cause.Significance,
			rule:         rule,
			chainDepth:   chainDepth,
			participants: append([]core.EntityID(nil), cause.Participants...),
			seq:          e.seq,
		})
	}
	return Result{MaxDepthReached: maxDepth, PendingCountRemaining: e.pending.Len()}
}

// ResolveTick fires every pending consequence whose fireTick <= currentTick.
// For each, it rolls the injected random source against the rule's
// effective probability (recomputed at fire time from the cause
// significance captured when the consequence was scheduled, and the
// cause's category as stored in the log); a surviving roll creates a new event, links it into the cause's
// Consequences, emits it on the bus, appends it to the log, and recurses
// into ProcessEvent for the new event.
func (e *Engine) ResolveTick(currentTick uint64) Result {
	var result Result
	maxDepth := 0

	var due []*pendingConsequence
	for e.pending.Len() > 0 && e.pending[0].fireTick <= currentTick {
		due = append(due, heap.Pop(&e.pending).(*pendingConsequence))
	}

	for _, pc := range due {
		cause, ok := e.Log.GetByID(pc.causeID)
		if !ok {
			continue
		}

		adjusted := adjustDampeningForSignificance(pc.rule.Dampening, pc.causeSig)
		p := calculateDampenedProbability(pc.rule.BaseProbability, adjusted, pc.chainDepth)
		if pc.rule.Category != cause.Category {
			modifier, tabled := getTransitionModifier(cause.Category, pc.rule.Category)
			if !tabled {
				modifier = implausibleTransitionPenalty
			}
			p *= modifier
		}

		roll := e.Random()
		if roll >= p {
			continue
		}

		significance := consequenceSignificance(pc.causeSig, pc.chainDepth+1)
		child := event.Event{
			ID:           e.Log.AllocateID(),
			Category:     pc.rule.Category,
			Subtype:      pc.rule.Subtype,
			Timestamp:    currentTick,
			Participants: append([]core.EntityID(nil), pc.participants...),
			Causes:       []event.ID{pc.causeID},
			Significance: significance,
			Rules:        nil,
		}

		e.Log.LinkConsequence(pc.causeID, child.ID)
		e.Bus.Emit(child)
		stored := e.Log.Append(child)

		result.EventsGenerated++

		childDepth := pc.chainDepth + 1
		if childDepth > maxDepth {
			maxDepth = childDepth
		}
		sub := e.ProcessEvent(stored, currentTick, childDepth)
		result.EventsGenerated += sub.EventsGenerated
		if sub.MaxDepthReached > maxDepth {
			maxDepth = sub.MaxDepthReached
		}
	}

	result.PendingCountRemaining = e.pending.Len()
	result.MaxDepthReached = maxDepth
	return result
}

// consequenceSignificance implements round(max(5, cause.significance * (1 -
// 0.1*depth))), clamped >= 5 so significance monotonically decays with
// depth without ever vanishing.
func consequenceSignificance(causeSignificance, chainDepth int) int {
	factor := 1.0 - 0.1*float64(chainDepth)
	if factor < 0 {
		factor = 0
	}
	v := float64(causeSignificance) * factor
	sig := int(v + 0.5)
	if sig < 5 {
		sig = 5
	}
	return sig
}
