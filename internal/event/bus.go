package event

import (
	"fmt"

	"github.com/1siamBot/worldsim-core/internal/worldlog"
)

// Handler receives a single emitted Event.
type Handler func(Event)

// HandlerID is returned by Subscribe/SubscribeAny and removes the handler
// idempotently when passed to Unsubscribe.
type HandlerID uint64

type subscription struct {
	id      HandlerID
	handler Handler
}

// Bus is an in-process, synchronous pub/sub dispatcher. Emit invokes every
// matching handler, in registration order, before returning; a panicking
// handler is recovered, logged, and never prevents later handlers from
// running.
type Bus struct {
	nextHandlerID HandlerID
	byCategory    map[Category][]subscription
	any           []subscription
	log           *worldlog.Logger
}

// NewBus creates an empty Bus. log may be nil, in which case a default
// no-op-safe logger is used for HandlerFailed diagnostics.
func NewBus(log *worldlog.Logger) *Bus {
	if log == nil {
		log = worldlog.Default()
	}
	return &Bus{
		byCategory: make(map[Category][]subscription),
		log:        log,
	}
}

// Subscribe registers h for events of category c only.
func (b *Bus) Subscribe(c Category, h Handler) HandlerID {
	id := b.nextID()
	b.byCategory[c] = append(b.byCategory[c], subscription{id: id, handler: h})
	return id
}

// SubscribeAny registers h for every emitted event, regardless of category.
func (b *Bus) SubscribeAny(h Handler) HandlerID {
	id := b.nextID()
	b.any = append(b.any, subscription{id: id, handler: h})
	return id
}

func (b *Bus) nextID() HandlerID {
	b.nextHandlerID++
	return b.nextHandlerID
}

// Unsubscribe removes the handler registered under id, from whichever list
// (category-specific or any) it was registered in. Unsubscribing an unknown
// or already-removed id is a no-op.
func (b *Bus) Unsubscribe(id HandlerID) {
	for cat, subs := range b.byCategory {
		if idx := indexOf(subs, id); idx >= 0 {
			b.byCategory[cat] = append(subs[:idx], subs[idx+1:]...)
			return
		}
	}
	if idx := indexOf(b.any, id); idx >= 0 {
		b.any = append(b.any[:idx], b.any[idx+1:]...)
	}
}

func indexOf(subs []subscription, id HandlerID) int {
	for i, s := range subs {
		if s.id == id {
			return i
		}
	}
	return -1
}

// AnyHandlerCount returns the number of currently-registered "any" handlers.
func (b *Bus) AnyHandlerCount() int {
	return len(b.any)
}

// Emit synchronously invokes every category-specific handler for e.Category
// followed by every "any" handler, in registration order. A handler that
// panics is recovered and reported via HandlerFailed; emit continues to the
// remaining handlers.
func (b *Bus) Emit(e Event) {
	for _, sub := range b.byCategory[e.Category] {
		b.invoke(sub, e)
	}
	for _, sub := range b.any {
		b.invoke(sub, e)
	}
}

func (b *Bus) invoke(sub subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Warn(fmt.Sprintf("event: handler %d failed on event %d: %v", sub.id, e.ID, r))
		}
	}()
	sub.handler(e)
}
