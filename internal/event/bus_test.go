package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/worldsim-core/internal/event"
)

func TestEmitOrderAndAnyHandlers(t *testing.T) {
	bus := event.NewBus(nil)

	var order []string
	bus.Subscribe(event.CategoryMilitary, func(e event.Event) { order = append(order, "military-specific") })
	bus.SubscribeAny(func(e event.Event) { order = append(order, "any-1") })
	bus.SubscribeAny(func(e event.Event) { order = append(order, "any-2") })

	bus.Emit(event.Event{Category: event.CategoryMilitary, ID: 1})

	assert.Equal(t, []string{"military-specific", "any-1", "any-2"}, order)
	assert.Equal(t, 2, bus.AnyHandlerCount())
}

func TestHandlerPanicDoesNotStopOthers(t *testing.T) {
	bus := event.NewBus(nil)

	var secondCalled bool
	bus.SubscribeAny(func(e event.Event) { panic("boom") })
	bus.SubscribeAny(func(e event.Event) { secondCalled = true })

	assert.NotPanics(t, func() {
		bus.Emit(event.Event{ID: 1})
	})
	assert.True(t, secondCalled)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := event.NewBus(nil)
	var calls int
	id := bus.SubscribeAny(func(e event.Event) { calls++ })

	bus.Unsubscribe(id)
	bus.Unsubscribe(id) // second call is a no-op, not an error

	bus.Emit(event.Event{ID: 1})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.AnyHandlerCount())
}

func TestCategorySpecificHandlersOnlySeeTheirCategory(t *testing.T) {
	bus := event.NewBus(nil)
	var calls int
	bus.Subscribe(event.CategoryEconomic, func(e event.Event) { calls++ })

	bus.Emit(event.Event{Category: event.CategoryMilitary, ID: 1})
	assert.Equal(t, 0, calls)

	bus.Emit(event.Event{Category: event.CategoryEconomic, ID: 2})
	assert.Equal(t, 1, calls)
}
