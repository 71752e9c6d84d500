package event

import "sync"

type Handler func(payload interface{})

// Bus is the in-process pub/sub used to fan settlement results out to
// observers (audit, websocket feed). Handlers run on their own goroutines
// and must never mutate balances.
type Bus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

func (b *Bus) Subscribe(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[event] = append(b.handlers[event], handler)
}

func (b *Bus) Publish(event string, payload interface{}) {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[event]...)
	b.mu.RUnlock()

	for _, h := range hs {
		go h(payload)
	}
}
