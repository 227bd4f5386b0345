package resource

import (
	"sync"

	"github.com/cyp0633/libccm/observable"
)

// Calendar holds events and carries a deletion signal that its owning
// collection subscribes to.
type Calendar struct {
	id           ID
	collectionID ID

	mu    sync.RWMutex
	name  string
	color Color

	events *observable.List[*Event]

	obsMu     sync.Mutex
	onDeleted map[int]func(*Calendar)
	nextObs   int
}

// NewCalendar creates an unattached calendar belonging to collectionID.
func NewCalendar(id, collectionID ID, name string, color Color) *Calendar {
	return &Calendar{
		id:           id,
		collectionID: collectionID,
		name:         name,
		color:        color,
		events:       observable.New[*Event](),
		onDeleted:    make(map[int]func(*Calendar)),
	}
}

func (c *Calendar) ID() ID     { return c.id }
func (c *Calendar) Kind() Kind { return KindCalendar }
func (c *Calendar) resource()  {}

// CollectionID is the id of the owning collection.
func (c *Calendar) CollectionID() ID { return c.collectionID }

func (c *Calendar) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Calendar) Color() Color {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.color
}

// Events returns the calendar's owned events.
func (c *Calendar) Events() *observable.List[*Event] {
	return c.events
}

// AddEvent appends e to the calendar's events.
func (c *Calendar) AddEvent(e *Event) {
	c.events.Append(e)
}

// Update replaces name and color in place.
func (c *Calendar) Update(name string, color Color) {
	c.mu.Lock()
	c.name = name
	c.color = color
	c.mu.Unlock()
}

// OnDeleted registers fn to run when the calendar is deleted. The returned
// function unregisters it.
func (c *Calendar) OnDeleted(fn func(*Calendar)) (cancel func()) {
	c.obsMu.Lock()
	id := c.nextObs
	c.nextObs++
	c.onDeleted[id] = fn
	c.obsMu.Unlock()

	return func() {
		c.obsMu.Lock()
		delete(c.onDeleted, id)
		c.obsMu.Unlock()
	}
}

// NotifyDeleted signals every deletion observer, in registration order.
func (c *Calendar) NotifyDeleted() {
	c.obsMu.Lock()
	fns := make([]func(*Calendar), 0, len(c.onDeleted))
	for i := 0; i < c.nextObs; i++ {
		if fn, ok := c.onDeleted[i]; ok {
			fns = append(fns, fn)
		}
	}
	c.obsMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
