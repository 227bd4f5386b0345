package resource

// Event is a leaf of the graph.
type Event struct {
	id          ID
	calendarID  ID
	name        string
	description string
}

// NewEvent creates an unattached event belonging to calendarID.
func NewEvent(id, calendarID ID, name, description string) *Event {
	return &Event{
		id:          id,
		calendarID:  calendarID,
		name:        name,
		description: description,
	}
}

func (e *Event) ID() ID     { return e.id }
func (e *Event) Kind() Kind { return KindEvent }
func (e *Event) resource()  {}

// CalendarID is the id of the owning calendar.
func (e *Event) CalendarID() ID { return e.calendarID }

func (e *Event) Name() string { return e.name }

func (e *Event) Description() string { return e.description }
