// Package notify is a process-wide broadcast channel keyed by payload type.
//
// It lets any part of the program raise a toast without holding a binding:
// publishers call Publish with a value, and every handler subscribed to that
// exact type receives it. Handlers run on the publisher's goroutine, so UI
// code should subscribe through Forward, which re-sends values into the
// Bubble Tea program instead of touching model state directly.
package notify

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Hub holds subscriptions grouped by payload type
type Hub struct {
	mu     sync.RWMutex
	subs   map[reflect.Type]map[uint64]func(any)
	nextID uint64
	logger *slog.Logger
}

// Default is the process-wide hub
var Default = NewHub(nil)

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[reflect.Type]map[uint64]func(any)),
		logger: logger,
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Subscribe registers fn for values of type T. The returned function removes
// the subscription and may be called more than once.
func Subscribe[T any](h *Hub, fn func(T)) (unsubscribe func()) {
	key := typeKey[T]()

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[key] == nil {
		h.subs[key] = make(map[uint64]func(any))
	}
	h.subs[key][id] = func(v any) { fn(v.(T)) }
	h.mu.Unlock()

	h.logger.Debug("notification subscriber added", "type", key.String(), "sub_id", id)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[key], id)
			if len(h.subs[key]) == 0 {
				delete(h.subs, key)
			}
			h.mu.Unlock()
			h.logger.Debug("notification subscriber removed", "type", key.String(), "sub_id", id)
		})
	}
}

// Publish delivers v to every subscriber of type T and returns how many
// handlers ran. Handlers are called in subscription order, outside the lock.
func Publish[T any](h *Hub, v T) int {
	key := typeKey[T]()

	h.mu.RLock()
	ids := make([]uint64, 0, len(h.subs[key]))
	for id := range h.subs[key] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]func(any), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, h.subs[key][id])
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(v)
	}
	return len(handlers)
}

// Count returns the number of live subscribers for type T
func Count[T any](h *Hub) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[typeKey[T]()])
}

// Sender is the part of *tea.Program the bridge needs
type Sender interface {
	Send(msg tea.Msg)
}

// Received wraps a forwarded notification inside the Bubble Tea program
type Received[T any] struct {
	Value T
}

// Forward subscribes to T and re-sends each value into the program as a
// Received[T]. Call the returned function when the view is torn down.
func Forward[T any](h *Hub, s Sender) (unsubscribe func()) {
	return Subscribe(h, func(v T) {
		s.Send(Received[T]{Value: v})
	})
}
