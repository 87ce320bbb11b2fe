package input

import "sync"

// Listener receives dispatched events.
type Listener func(Event)

// Dispatcher delivers events to subscribed listeners in subscription order.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe attaches fn and returns a function that detaches it.
// Calling the detach function more than once is a no-op.
func (d *Dispatcher) Subscribe(fn Listener) (detach func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.listeners = append(d.listeners, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Dispatcher) remove(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, s := range d.listeners {
		if s.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers e to every listener. Listeners may subscribe or detach
// from inside the callback; changes apply from the next Dispatch.
func (d *Dispatcher) Dispatch(e Event) {
	d.mu.Lock()
	subs := d.listeners
	d.mu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// DispatchAll delivers events in order.
func (d *Dispatcher) DispatchAll(events []Event) {
	for _, e := range events {
		d.Dispatch(e)
	}
}

// Len returns the number of attached listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
