package channel

import (
	"context"
	"fmt"
	"sync"
)

// Handler receives one event. A returned error is logged and does not stop
// delivery to later handlers.
type Handler func(ctx context.Context, ev Event) error

type subscription struct {
	id uint64
	h  Handler
}

// registry maps a message type to its handlers in registration order.
type registry struct {
	mu   sync.RWMutex
	next uint64
	subs map[MessageType][]subscription
}

func (r *registry) add(t MessageType, h Handler) func() {
	r.mu.Lock()
	if r.subs == nil {
		r.subs = make(map[MessageType][]subscription)
	}
	r.next++
	id := r.next
	r.subs[t] = append(r.subs[t], subscription{id: id, h: h})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(t, id) })
	}
}

func (r *registry) remove(t MessageType, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.subs[t]
	for i, s := range list {
		if s.id == id {
			// copy so a concurrent dispatch keeps its snapshot intact
			next := make([]subscription, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(r.subs, t)
			} else {
				r.subs[t] = next
			}
			return
		}
	}
}

func (r *registry) handlers(t MessageType) []subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.subs[t]
}

// dispatch calls every handler for ev's type and reports each failure
// through onFailure. A panicking handler counts as a failure.
func (r *registry) dispatch(ctx context.Context, ev Event, onFailure func(error)) int {
	list := r.handlers(ev.Type())
	for _, s := range list {
		if err := invoke(ctx, s.h, ev); err != nil {
			onFailure(err)
		}
	}
	return len(list)
}

func invoke(ctx context.Context, h Handler, ev Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler panic: %v", p)
		}
	}()
	return h(ctx, ev)
}
