// Package resource defines the live entities of the calendar graph and their
// unlinked staging snapshots.
//
// The graph is Provider → Collection → Calendar → Event. Children hold their
// parent's ID rather than a pointer to it; parents own ordered observable
// lists of their children. Entities are shared by pointer, and updates mutate
// them in place so every holder sees the new values.
package resource

// ID is the opaque store-assigned identifier of a resource. It is unique
// across all kinds.
type ID = string

// Kind enumerates the resource kinds, ordered by ancestor depth.
type Kind int

const (
	KindProvider Kind = iota
	KindCollection
	KindCalendar
	KindEvent
)

// Kinds lists every kind in ancestor-depth order.
var Kinds = []Kind{KindProvider, KindCollection, KindCalendar, KindEvent}

// String provides a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindProvider:
		return "provider"
	case KindCollection:
		return "collection"
	case KindCalendar:
		return "calendar"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Resource is the closed set of live entities: *Provider, *Collection,
// *Calendar and *Event. Identity is by pointer.
type Resource interface {
	ID() ID
	Kind() Kind
	Name() string

	resource()
}

var (
	_ Resource = (*Provider)(nil)
	_ Resource = (*Collection)(nil)
	_ Resource = (*Calendar)(nil)
	_ Resource = (*Event)(nil)
)
