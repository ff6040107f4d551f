// Package history wraps a history stack behind the push/replace/pop operations
// the view router needs. It owns no navigation state of its own.
package history

import (
	"context"
	"sync"

	"portalctl/internal/route"
	"portalctl/pkg/logging"
)

const subsystem = "History"

// PopEvent describes a back/forward navigation. Route is decoded from the current URL,
// never taken from the entry's stored state.
type PopEvent struct {
	URL   string
	Path  string
	Route route.Route
}

// PopHandler is invoked on every back/forward navigation.
type PopHandler func(ctx context.Context, ev PopEvent)

// Adapter serializes routes into the stack and fans pop events out to handlers.
type Adapter struct {
	stack Stack

	mu       sync.Mutex
	handlers map[int]PopHandler
	nextID   int
}

// New creates an adapter over stack.
func New(stack Stack) *Adapter {
	return &Adapter{stack: stack, handlers: make(map[int]PopHandler)}
}

// Push records r as a new entry.
func (a *Adapter) Push(r route.Route) {
	url := route.Encode(r)
	logging.Debug(subsystem, "push %s", url)
	a.stack.Push(Entry{URL: url, State: r.Normalize(), HasState: true})
}

// Replace overwrites the current entry with r.
func (a *Adapter) Replace(r route.Route) {
	url := route.Encode(r)
	logging.Debug(subsystem, "replace %s", url)
	a.stack.Replace(Entry{URL: url, State: r.Normalize(), HasState: true})
}

// PushURL records a literal location such as a top tab path.
func (a *Adapter) PushURL(url string) {
	logging.Debug(subsystem, "push %s", url)
	a.stack.Push(Entry{URL: url})
}

// ReplaceURL overwrites the current entry with a literal location.
func (a *Adapter) ReplaceURL(url string) {
	logging.Debug(subsystem, "replace %s", url)
	a.stack.Replace(Entry{URL: url})
}

// Location returns the current URL.
func (a *Adapter) Location() string {
	e, ok := a.stack.Current()
	if !ok {
		return ""
	}
	return e.URL
}

// OnPop registers h and returns a function that unregisters it.
func (a *Adapter) OnPop(h PopHandler) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.handlers[id] = h
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		delete(a.handlers, id)
		a.mu.Unlock()
	}
}

// Back moves one entry back and notifies handlers. It returns false at the start of history.
func (a *Adapter) Back(ctx context.Context) bool {
	e, ok := a.stack.Back()
	if !ok {
		return false
	}
	a.emit(ctx, e)
	return true
}

// Forward moves one entry forward and notifies handlers. It returns false at the end of history.
func (a *Adapter) Forward(ctx context.Context) bool {
	e, ok := a.stack.Forward()
	if !ok {
		return false
	}
	a.emit(ctx, e)
	return true
}

func (a *Adapter) emit(ctx context.Context, e Entry) {
	path, query := route.Split(e.URL)
	ev := PopEvent{URL: e.URL, Path: path, Route: route.Decode(path, query)}
	logging.Debug(subsystem, "pop %s", e.URL)

	a.mu.Lock()
	handlers := make([]PopHandler, 0, len(a.handlers))
	for i := 0; i < a.nextID; i++ {
		if h, ok := a.handlers[i]; ok {
			handlers = append(handlers, h)
		}
	}
	a.mu.Unlock()

	for _, h := range handlers {
		h(ctx, ev)
	}
}
