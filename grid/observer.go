package grid

import (
	"sync"

	"gridboard/log"
)

// BreakpointObserver tracks the active breakpoint for a live surface.
// The host feeds it width measurements (terminal resizes, container
// measurements); subscribers are notified only when a breakpoint boundary is
// actually crossed, so a resize flood inside one tier causes no work.
//
// Before the first measurement the observer reports the base breakpoint,
// matching the behavior of a surface that has not been laid out yet.
type BreakpointObserver struct {
	table BreakpointTable

	mu       sync.Mutex
	width    int
	measured bool
	current  string
	nextID   int
	subs     map[int]func(string)
}

// NewBreakpointObserver creates an observer over the given table.
func NewBreakpointObserver(table BreakpointTable) *BreakpointObserver {
	if len(table) == 0 {
		table = DefaultBreakpoints()
	}
	return &BreakpointObserver{
		table:   table,
		current: BaseBreakpoint,
		subs:    make(map[int]func(string)),
	}
}

// SetWidth records a new surface width. Subscribers run synchronously, in
// unspecified order, when the resolved breakpoint changes.
func (o *BreakpointObserver) SetWidth(width int) {
	o.mu.Lock()
	o.width = width
	o.measured = true
	next := o.table.Resolve(width)
	if next == o.current {
		o.mu.Unlock()
		return
	}
	prev := o.current
	o.current = next
	subs := make([]func(string), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	log.LayoutTrace("breakpoint %s -> %s at width %d", prev, next, width)
	for _, fn := range subs {
		fn(next)
	}
}

// Current returns the active breakpoint name.
func (o *BreakpointObserver) Current() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Width returns the last measured width and whether a measurement has been
// recorded at all.
func (o *BreakpointObserver) Width() (int, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.width, o.measured
}

// Subscribe registers fn to run on breakpoint changes and returns a
// cancel function that removes the subscription.
func (o *BreakpointObserver) Subscribe(fn func(breakpoint string)) (cancel func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}
