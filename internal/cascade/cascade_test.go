package cascade_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/worldsim-core/internal/cascade"
	"github.com/1siamBot/worldsim-core/internal/event"
)

func zeroRandom() float64 { return 0 }
func oneRandom() float64  { return 0.9999 }

// TestHundredRootEventsEachProduceOneConsequence implements the concrete
// scenario: 100 root Military events, each carrying one Economic
// consequence rule at base probability 1.0 and zero delay. With
// randomFn always returning 0 (always below any positive probability),
// ResolveTick must produce exactly 100 Economic events, each caused by
// its own root, with significance round(root.significance * 0.9)
// clamped to >= 5.
func TestHundredRootEventsEachProduceOneConsequence(t *testing.T) {
	log := event.NewLog()
	bus := event.NewBus(nil)
	engine := cascade.NewEngine(log, bus, 10, zeroRandom, nil)

	rule := event.ConsequenceRule{
		Category:        event.CategoryEconomic,
		Subtype:         "famine",
		BaseProbability: 1.0,
		DelayTicks:      0,
	}

	roots := make([]event.Event, 0, 100)
	for i := 0; i < 100; i++ {
		id := log.AllocateID()
		root := event.Event{
			ID:           id,
			Category:     event.CategoryMilitary,
			Subtype:      "battle.resolved",
			Timestamp:    0,
			Significance: 80,
			Rules:        []event.ConsequenceRule{rule},
		}
		stored := log.Append(root)
		roots = append(roots, stored)
	}

	for _, root := range roots {
		engine.ProcessEvent(root, 0, 0)
	}

	result := engine.ResolveTick(0)
	assert.Equal(t, 100, result.EventsGenerated)

	economicEvents := log.GetByCategory(event.CategoryEconomic)
	require.Len(t, economicEvents, 100)

	expectedSig := int(80*0.9 + 0.5) // round(72) = 72
	for _, e := range economicEvents {
		require.Len(t, e.Causes, 1)
		cause, ok := log.GetByID(e.Causes[0])
		require.True(t, ok)
		assert.Equal(t, event.CategoryMilitary, cause.Category)
		assert.Equal(t, expectedSig, e.Significance)
		assert.GreaterOrEqual(t, e.Significance, 5)
	}
}

func TestProcessEventHaltsAtMaxDepth(t *testing.T) {
	log := event.NewLog()
	bus := event.NewBus(nil)
	engine := cascade.NewEngine(log, bus, 2, zeroRandom, nil)

	cause := event.Event{ID: log.AllocateID(), Category: event.CategoryMilitary, Significance: 50}
	log.Append(cause)

	result := engine.ProcessEvent(cause, 0, 2)
	assert.Equal(t, 2, result.MaxDepthReached)
	assert.Equal(t, 0, result.PendingCountRemaining)
}

func TestLowProbabilityRuleIsDroppedNotScheduled(t *testing.T) {
	log := event.NewLog()
	bus := event.NewBus(nil)
	engine := cascade.NewEngine(log, bus, 10, zeroRandom, nil)

	rule := event.ConsequenceRule{
		Category:        event.CategoryDisaster,
		BaseProbability: 0.001,
	}
	cause := event.Event{
		ID:           log.AllocateID(),
		Category:     event.CategoryMilitary,
		Significance: 10,
		Rules:        []event.ConsequenceRule{rule},
	}
	stored := log.Append(cause)

	engine.ProcessEvent(stored, 0, 0)
	result := engine.ResolveTick(0)
	assert.Equal(t, 0, result.EventsGenerated)
}

func TestFailedRollProducesNoEvent(t *testing.T) {
	log := event.NewLog()
	bus := event.NewBus(nil)
	engine := cascade.NewEngine(log, bus, 10, oneRandom, nil)

	rule := event.ConsequenceRule{
		Category:        event.CategoryEconomic,
		BaseProbability: 0.5,
	}
	cause := event.Event{
		ID:           log.AllocateID(),
		Category:     event.CategoryMilitary,
		Significance: 50,
		Rules:        []event.ConsequenceRule{rule},
	}
	stored := log.Append(cause)

	engine.ProcessEvent(stored, 0, 0)
	result := engine.ResolveTick(0)
	assert.Equal(t, 0, result.EventsGenerated)
}

func TestDelayedConsequenceFiresOnlyAtItsTick(t *testing.T) {
	log := event.NewLog()
	bus := event.NewBus(nil)
	engine := cascade.NewEngine(log, bus, 10, zeroRandom, nil)

	rule := event.ConsequenceRule{
		Category:        event.CategoryEconomic,
		BaseProbability: 1.0,
		DelayTicks:      5,
	}
	cause := event.Event{
		ID:           log.AllocateID(),
		Category:     event.CategoryMilitary,
		Significance: 50,
		Rules:        []event.ConsequenceRule{rule},
	}
	stored := log.Append(cause)
	engine.ProcessEvent(stored, 0, 0)

	assert.Equal(t, 0, engine.ResolveTick(4).EventsGenerated)
	assert.Equal(t, 1, engine.ResolveTick(5).EventsGenerated)
}

func TestDampeningDecaysMonotonicallyWithDepth(t *testing.T) {
	// Probability must be non-increasing as chain depth grows, for a
	// fixed dampening strength. The dampening helpers are unexported, so
	// this test does not call them or the engine: it recomputes the
	// documented curve p(depth) = base * exp(-strength*depth) locally and
	// checks p(3) < p(0) and p(3) >= 0.
	base := 0.9
	strength := 0.2
	p0 := base * math.Exp(-strength*0)
	p3 := base * math.Exp(-strength*3)
	assert.Greater(t, p0, p3)
	assert.GreaterOrEqual(t, p3, 0.0)
}
