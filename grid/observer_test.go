package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakpointObserverDefaults(t *testing.T) {
	o := NewBreakpointObserver(DefaultBreakpoints())

	assert.Equal(t, BaseBreakpoint, o.Current(), "unmeasured surface reports base")
	_, measured := o.Width()
	assert.False(t, measured)
}

func TestBreakpointObserverNotifiesOnCrossing(t *testing.T) {
	o := NewBreakpointObserver(DefaultBreakpoints())

	var calls []string
	cancel := o.Subscribe(func(bp string) {
		calls = append(calls, bp)
	})
	defer cancel()

	o.SetWidth(110)
	assert.Equal(t, []string{"standard"}, calls)
	assert.Equal(t, "standard", o.Current())

	// Resizes inside the same tier are not layout changes
	o.SetWidth(105)
	o.SetWidth(115)
	assert.Len(t, calls, 1)

	o.SetWidth(150)
	assert.Equal(t, []string{"standard", "full"}, calls)

	width, measured := o.Width()
	assert.True(t, measured)
	assert.Equal(t, 150, width)
}

func TestBreakpointObserverUnsubscribe(t *testing.T) {
	o := NewBreakpointObserver(DefaultBreakpoints())

	calls := 0
	cancel := o.Subscribe(func(string) { calls++ })

	o.SetWidth(150)
	assert.Equal(t, 1, calls)

	cancel()
	o.SetWidth(60)
	assert.Equal(t, 1, calls, "cancelled subscriber must not fire")

	// Cancelling twice is harmless
	cancel()
}

func TestBreakpointObserverMultipleSubscribers(t *testing.T) {
	o := NewBreakpointObserver(nil) // nil table falls back to the default

	a, b := 0, 0
	cancelA := o.Subscribe(func(string) { a++ })
	defer cancelA()
	cancelB := o.Subscribe(func(string) { b++ })
	defer cancelB()

	o.SetWidth(90)
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
