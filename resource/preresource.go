package resource

// PreResource is an unlinked snapshot of one resource's scalar state, as
// resolved from the store. It is the closed set PreProvider, PreCollection,
// PreCalendar and PreEvent.
type PreResource interface {
	ResourceID() ID
	// ParentID is the declared parent, empty for providers.
	ParentID() ID
	Kind() Kind

	preResource()
}

type PreProvider struct {
	ID   ID
	Name string
}

type PreCollection struct {
	ID         ID
	ProviderID ID
	Name       string
}

type PreCalendar struct {
	ID           ID
	CollectionID ID
	Name         string
	Color        Color
}

type PreEvent struct {
	ID          ID
	CalendarID  ID
	Name        string
	Description string
}

func (p PreProvider) ResourceID() ID { return p.ID }
func (p PreProvider) ParentID() ID   { return "" }
func (p PreProvider) Kind() Kind     { return KindProvider }
func (p PreProvider) preResource()   {}

func (p PreCollection) ResourceID() ID { return p.ID }
func (p PreCollection) ParentID() ID   { return p.ProviderID }
func (p PreCollection) Kind() Kind     { return KindCollection }
func (p PreCollection) preResource()   {}

func (p PreCalendar) ResourceID() ID { return p.ID }
func (p PreCalendar) ParentID() ID   { return p.CollectionID }
func (p PreCalendar) Kind() Kind     { return KindCalendar }
func (p PreCalendar) preResource()   {}

func (p PreEvent) ResourceID() ID { return p.ID }
func (p PreEvent) ParentID() ID   { return p.CalendarID }
func (p PreEvent) Kind() Kind     { return KindEvent }
func (p PreEvent) preResource()   {}

// Build constructs the live, unattached entity for a staged snapshot.
func Build(pre PreResource) Resource {
	switch p := pre.(type) {
	case PreProvider:
		return NewProvider(p.ID, p.Name)
	case PreCollection:
		return NewCollection(p.ID, p.ProviderID, p.Name)
	case PreCalendar:
		return NewCalendar(p.ID, p.CollectionID, p.Name, p.Color)
	case PreEvent:
		return NewEvent(p.ID, p.CalendarID, p.Name, p.Description)
	default:
		panic("resource: unknown pre-resource type")
	}
}
