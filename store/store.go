// Package store defines the boundary between the mirror and its backing
// store: a read side (Querier), a change stream (Notifier) and a write side
// (Writer). Please use the error types provided.
package store

import (
	"context"

	"github.com/cyp0633/libccm/resource"
)

// Predicate names a scalar property of a stored resource.
type Predicate string

const (
	PredLabel            Predicate = "rdfs:label"
	PredColor            Predicate = "ccm:color"
	PredProvider         Predicate = "ccm:provider"
	PredCollection       Predicate = "ccm:collection"
	PredCalendar         Predicate = "ccm:calendar"
	PredEventName        Predicate = "ccm:eventName"
	PredEventDescription Predicate = "ccm:eventDescription"
)

// Record is the result of looking up one resource: its id and whichever
// predicates are set on it. The kind is implied by the predicates present.
type Record struct {
	ID    resource.ID
	Props map[Predicate]string
}

// Get returns the value of pred and whether it is present.
func (r Record) Get(pred Predicate) (string, bool) {
	v, ok := r.Props[pred]
	return v, ok
}

// Has reports whether every pred is present.
func (r Record) Has(preds ...Predicate) bool {
	for _, p := range preds {
		if _, ok := r.Props[p]; !ok {
			return false
		}
	}
	return true
}

// ChangeType is the kind of one notification.
type ChangeType int

const (
	ChangeCreate ChangeType = iota
	ChangeUpdate
	ChangeDelete
)

// String provides a human-readable representation of the ChangeType.
func (t ChangeType) String() string {
	switch t {
	case ChangeCreate:
		return "create"
	case ChangeUpdate:
		return "update"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change reports that the resource with ID was created, updated or deleted.
type Change struct {
	Type ChangeType
	ID   resource.ID
}

// Batch is a group of changes delivered as one atomic unit.
type Batch []Change

// Querier is the read side of the store.
type Querier interface {
	// Lookup returns the current predicates of id, or an ErrNotFound error
	// when the id resolves to nothing.
	Lookup(ctx context.Context, id resource.ID) (Record, error)

	// ListProviders returns every provider.
	ListProviders(ctx context.Context) ([]Record, error)
	// ListCollections returns every collection with its ccm:provider.
	ListCollections(ctx context.Context) ([]Record, error)
	// ListCalendars returns every calendar with its ccm:collection.
	ListCalendars(ctx context.Context) ([]Record, error)
	// ListEvents returns every event with its ccm:calendar.
	ListEvents(ctx context.Context) ([]Record, error)

	// SearchEvents runs a full-text query over events and returns the ids of
	// the matches.
	SearchEvents(ctx context.Context, text string) ([]resource.ID, error)
}

// Notifier is the change stream of the store.
type Notifier interface {
	// Subscribe registers fn for every future batch. Batches are delivered
	// one at a time, never overlapped. The returned function unsubscribes.
	Subscribe(fn func(Batch)) (cancel func())
}

// Writer is the command side of the store. Commands only report success or
// failure; ids of new resources are learned later through notifications.
type Writer interface {
	CreateCollection(ctx context.Context, providerID resource.ID, name string) error
	UpdateCollection(ctx context.Context, id resource.ID, name string) error
	DeleteCollection(ctx context.Context, id resource.ID) error

	CreateCalendar(ctx context.Context, collectionID resource.ID, name, color string) error
	UpdateCalendar(ctx context.Context, id resource.ID, name, color string) error
	DeleteCalendar(ctx context.Context, id resource.ID) error

	CreateEvent(ctx context.Context, calendarID resource.ID, name, description string) error
	UpdateEvent(ctx context.Context, id resource.ID, name, description string) error
	DeleteEvent(ctx context.Context, id resource.ID) error
}

// Backend bundles the three sides of a store.
type Backend interface {
	Querier
	Notifier
	Writer
}
