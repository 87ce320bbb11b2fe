package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrder(t *testing.T) {
	d := NewDispatcher()
	var got []string
	d.Subscribe(func(Event) { got = append(got, "first") })
	d.Subscribe(func(Event) { got = append(got, "second") })

	d.Dispatch(Event{Type: EventKeyDown, Key: KeyW})

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestDetach(t *testing.T) {
	d := NewDispatcher()
	var a, b int
	detachA := d.Subscribe(func(Event) { a++ })
	d.Subscribe(func(Event) { b++ })

	d.Dispatch(Event{Type: EventMouseMove})
	detachA()
	detachA()
	d.Dispatch(Event{Type: EventMouseMove})

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, d.Len())
}

func TestDetachDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var calls int
	var detach func()
	detach = d.Subscribe(func(Event) {
		calls++
		detach()
	})
	var other int
	d.Subscribe(func(Event) { other++ })

	d.Dispatch(Event{Type: EventKeyUp})
	d.Dispatch(Event{Type: EventKeyUp})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other, "remaining listener still receives every event")
}

func TestDispatchAll(t *testing.T) {
	d := NewDispatcher()
	var keys []Key
	d.Subscribe(func(e Event) { keys = append(keys, e.Key) })

	d.DispatchAll([]Event{
		{Type: EventKeyDown, Key: KeyW},
		{Type: EventKeyDown, Key: KeyA},
	})

	assert.Equal(t, []Key{KeyW, KeyA}, keys)
}

func TestIsKeyPressed(t *testing.T) {
	events := []Event{
		{Type: EventKeyUp, Key: KeyP},
		{Type: EventKeyDown, Key: KeyTab},
	}
	assert.True(t, IsKeyPressed(events, KeyTab))
	assert.False(t, IsKeyPressed(events, KeyP), "key-up is not a press")
	assert.False(t, IsKeyPressed(nil, KeyTab))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "finger-motion", EventFingerMotion.String())
	assert.Equal(t, "focus-lost", EventFocusLost.String())
	assert.Equal(t, "none", EventType(99).String())
}
