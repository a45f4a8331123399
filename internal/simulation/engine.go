// Package simulation implements the 13-step tick orchestration: the engine
// advances the clock, asks the registry for systems eligible this tick,
// runs them in priority order, drives the cascade engine's event-resolution
// step, and fans captured events out to per-tick listeners.
package simulation

import (
	"fmt"

	"github.com/1siamBot/worldsim-core/internal/cascade"
	"github.com/1siamBot/worldsim-core/internal/core"
	"github.com/1siamBot/worldsim-core/internal/event"
	"github.com/1siamBot/worldsim-core/internal/metrics"
	"github.com/1siamBot/worldsim-core/internal/scheduler"
	"github.com/1siamBot/worldsim-core/internal/worldlog"
)

// SystemExecutionFailed wraps a system's Initialize/Execute error with the
// system's name. It is never propagated by terminating a tick: ticks always
// complete, and this error is surfaced as part of that tick's Outcome.
type SystemExecutionFailed struct {
	SystemName string
	Err        error
	Phase      string // "initialize" or "execute"
}

func (e *SystemExecutionFailed) Error() string {
	return fmt.Sprintf("simulation: system %q failed during %s: %v", e.SystemName, e.Phase, e.Err)
}

func (e *SystemExecutionFailed) Unwrap() error { return e.Err }

// TickOutcome is the non-fatal result of one tick() call: the tick always
// advances the clock and runs every eligible system, but records any
// system failures it observed along the way instead of aborting.
type TickOutcome struct {
	Tick      uint64
	Events    []event.Event
	Failures  []*SystemExecutionFailed
	Cascade   cascade.Result
}

// TickListener is invoked once per tick with the tick number and the events
// emitted during it.
type TickListener func(tick uint64, events []event.Event)

// Engine drives the simulation's tick loop over a single World, Clock,
// event Bus/Log, System Registry, and cascade Engine.
type Engine struct {
	World    *core.World
	Clock    *core.Clock
	Bus      *event.Bus
	Log      *event.Log
	Registry *scheduler.Registry
	Cascade  *cascade.Engine
	Metrics  *metrics.Registry
	logger   *worldlog.Logger

	initialized bool
	tickCount   uint64
	listeners   []TickListener
	captureBuf  []event.Event
	captureSub  event.HandlerID
}

// New wires an Engine around the given components. m may be nil.
func New(w *core.World, clock *core.Clock, bus *event.Bus, log *event.Log, registry *scheduler.Registry, casc *cascade.Engine, m *metrics.Registry, logger *worldlog.Logger) *Engine {
	if logger == nil {
		logger = worldlog.Default()
	}
	if m == nil {
		m = metrics.NewRegistry()
	}
	e := &Engine{
		World:    w,
		Clock:    clock,
		Bus:      bus,
		Log:      log,
		Registry: registry,
		Cascade:  casc,
		Metrics:  m,
		logger:   logger,
	}
	e.captureSub = bus.SubscribeAny(e.capture)
	return e
}

func (e *Engine) capture(ev event.Event) {
	e.captureBuf = append(e.captureBuf, ev)
}

// OnTick registers a listener invoked after every tick with the tick number
// and the events emitted during it.
func (e *Engine) OnTick(l TickListener) {
	e.listeners = append(e.listeners, l)
}

// CurrentTick returns the engine's own tick counter.
func (e *Engine) CurrentTick() uint64 {
	return e.tickCount
}

func (e *Engine) ensureInitialized() []*SystemExecutionFailed {
	if e.initialized {
		return nil
	}
	var failures []*SystemExecutionFailed
	for _, sys := range e.Registry.GetOrderedSystems() {
		if err := sys.Initialize(e.World); err != nil {
			f := &SystemExecutionFailed{SystemName: sys.Name(), Err: err, Phase: "initialize"}
			failures = append(failures, f)
			e.logger.WithSystem(sys.Name()).Warn(f.Error())
		}
	}
	e.initialized = true
	return failures
}

// Tick runs a single tick: lazily initializes every system on first call,
// clears the capture buffer, advances the clock, runs every tick-eligible
// system in priority order (with the cascade engine's ResolveTick firing at
// the EVENT_RESOLUTION priority slot), appends captured events to the log,
// fans them out to per-tick listeners, and advances the engine's own tick
// counter.
func (e *Engine) Tick() TickOutcome {
	failures := e.ensureInitialized()

	e.captureBuf = e.captureBuf[:0]

	tick := e.Clock.Advance()

	eligible := e.Registry.GetSystemsForTick(tick)

	var before, after []scheduler.System
	for _, sys := range eligible {
		if sys.Priority() < scheduler.PriorityEventResolution {
			before = append(before, sys)
		} else {
			after = append(after, sys)
		}
	}

	runFailures := e.runSystems(before, tick)
	failures = append(failures, runFailures...)

	var cascResult cascade.Result
	if e.Cascade != nil {
		cascResult = e.Cascade.ResolveTick(tick)
		e.Metrics.CascadeChainsResolved.Add(float64(cascResult.EventsGenerated))
		if cascResult.MaxDepthReached > 0 {
			e.Metrics.CascadeMaxDepth.Set(float64(cascResult.MaxDepthReached))
		}
	}

	runFailures = e.runSystems(after, tick)
	failures = append(failures, runFailures...)

	for _, ev := range e.captureBuf {
		e.Log.Append(ev)
		e.Metrics.EventsEmitted.WithLabelValues(string(ev.Category)).Inc()
	}

	snapshot := append([]event.Event(nil), e.captureBuf...)
	for _, l := range e.listeners {
		l(tick, snapshot)
	}

	e.tickCount++
	e.Metrics.TicksProcessed.Inc()
	e.Metrics.ActiveEntities.Set(float64(e.World.Count()))

	return TickOutcome{Tick: tick, Events: snapshot, Failures: failures, Cascade: cascResult}
}

func (e *Engine) runSystems(systems []scheduler.System, tick uint64) []*SystemExecutionFailed {
	var failures []*SystemExecutionFailed
	for _, sys := range systems {
		if err := e.safeExecute(sys, tick); err != nil {
			f := &SystemExecutionFailed{SystemName: sys.Name(), Err: err, Phase: "execute"}
			failures = append(failures, f)
			e.logger.WithSystem(sys.Name()).WithTick(tick).Warn(f.Error())
		}
	}
	return failures
}

func (e *Engine) safeExecute(sys scheduler.System, tick uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return sys.Execute(e.World, e.Clock, e.Bus)
}

// Run advances the simulation n ticks and returns each tick's outcome.
func (e *Engine) Run(n int) []TickOutcome {
	out := make([]TickOutcome, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.Tick())
	}
	return out
}

// RunUntil runs ticks until predicate returns true or maxTicks is reached,
// whichever comes first. Returns the number of ticks actually run.
func (e *Engine) RunUntil(predicate func(tick uint64) bool, maxTicks int) int {
	ran := 0
	for ran < maxTicks {
		e.Tick()
		ran++
		if predicate(e.tickCount) {
			break
		}
	}
	return ran
}

// Cleanup calls every registered system's Cleanup and marks the engine
// uninitialized, so a subsequent Tick re-runs Initialize.
func (e *Engine) Cleanup() {
	for _, sys := range e.Registry.GetOrderedSystems() {
		if err := sys.Cleanup(); err != nil {
			e.logger.WithSystem(sys.Name()).Warn(fmt.Sprintf("cleanup failed: %v", err))
		}
	}
	e.initialized = false
}

// Reset performs Cleanup, zeroes the tick counter, and drops listeners and
// buffers. The World/Clock/Bus/Log themselves are untouched — callers that
// want a fully fresh run should construct a new Engine over fresh
// components instead.
func (e *Engine) Reset() {
	e.Cleanup()
	e.tickCount = 0
	e.listeners = nil
	e.captureBuf = nil
}
