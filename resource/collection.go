package resource

import "github.com/cyp0633/libccm/observable"

// Collection groups calendars under a provider.
type Collection struct {
	id         ID
	providerID ID
	name       string

	calendars *observable.List[*Calendar]
}

// NewCollection creates an unattached collection belonging to providerID.
func NewCollection(id, providerID ID, name string) *Collection {
	return &Collection{
		id:         id,
		providerID: providerID,
		name:       name,
		calendars:  observable.New[*Calendar](),
	}
}

func (c *Collection) ID() ID     { return c.id }
func (c *Collection) Kind() Kind { return KindCollection }
func (c *Collection) resource()  {}

// ProviderID is the id of the owning provider.
func (c *Collection) ProviderID() ID { return c.providerID }

func (c *Collection) Name() string { return c.name }

// Calendars returns the collection's owned calendars.
func (c *Collection) Calendars() *observable.List[*Calendar] {
	return c.calendars
}

// AddCalendar appends cal and removes it again once cal signals deletion.
func (c *Collection) AddCalendar(cal *Calendar) {
	c.calendars.Append(cal)

	var cancel func()
	cancel = cal.OnDeleted(func(deleted *Calendar) {
		c.calendars.Remove(deleted)
		cancel()
	})
}
