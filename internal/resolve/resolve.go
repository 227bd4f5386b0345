// Package resolve turns store records into pre-resources.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store"
	"github.com/samber/mo"
)

var (
	// ErrNotFound is returned when the store reports a change for an id that
	// no longer resolves to anything.
	ErrNotFound = errors.New("resource not found in store")
	// ErrParse is returned when a record cannot be classified or one of its
	// scalars is malformed.
	ErrParse = errors.New("malformed resource record")
	// ErrQuery is returned when the lookup itself fails.
	ErrQuery = errors.New("store query failed")
)

// Resolver fetches the current scalar state of single ids.
type Resolver struct {
	querier store.Querier
}

// New creates a Resolver reading from q.
func New(q store.Querier) *Resolver {
	return &Resolver{querier: q}
}

// Resolve looks id up and classifies the result. Errors wrap ErrNotFound,
// ErrParse or ErrQuery.
func (r *Resolver) Resolve(ctx context.Context, id resource.ID) mo.Result[resource.PreResource] {
	rec, err := r.querier.Lookup(ctx, id)
	if err != nil {
		if store.IsType(err, store.ErrNotFound) {
			return mo.Err[resource.PreResource](fmt.Errorf("%w: %s", ErrNotFound, id))
		}
		return mo.Err[resource.PreResource](fmt.Errorf("%w: lookup %s: %w", ErrQuery, id, err))
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return Classify(rec)
}

// Classify determines the kind of rec from its parent link predicate and
// builds the matching pre-resource. A record with a link but without the
// scalars that kind requires is malformed, never another kind.
func Classify(rec store.Record) mo.Result[resource.PreResource] {
	label, hasLabel := rec.Get(store.PredLabel)

	switch {
	case rec.Has(store.PredCalendar):
		calendar, _ := rec.Get(store.PredCalendar)
		name, ok := rec.Get(store.PredEventName)
		if !ok {
			return parseErr("event %s has no %s", rec.ID, store.PredEventName)
		}
		description, _ := rec.Get(store.PredEventDescription)
		return mo.Ok[resource.PreResource](resource.PreEvent{
			ID:          rec.ID,
			CalendarID:  calendar,
			Name:        name,
			Description: description,
		})

	case rec.Has(store.PredCollection):
		collection, _ := rec.Get(store.PredCollection)
		if !hasLabel {
			return parseErr("calendar %s has no %s", rec.ID, store.PredLabel)
		}
		raw, ok := rec.Get(store.PredColor)
		if !ok {
			return parseErr("calendar %s has no %s", rec.ID, store.PredColor)
		}
		color, err := resource.ParseColor(raw)
		if err != nil {
			return mo.Err[resource.PreResource](fmt.Errorf("%w: calendar %s: %w", ErrParse, rec.ID, err))
		}
		return mo.Ok[resource.PreResource](resource.PreCalendar{
			ID:           rec.ID,
			CollectionID: collection,
			Name:         label,
			Color:        color,
		})

	case rec.Has(store.PredProvider):
		provider, _ := rec.Get(store.PredProvider)
		if !hasLabel {
			return parseErr("collection %s has no %s", rec.ID, store.PredLabel)
		}
		return mo.Ok[resource.PreResource](resource.PreCollection{
			ID:         rec.ID,
			ProviderID: provider,
			Name:       label,
		})

	case hasLabel:
		return mo.Ok[resource.PreResource](resource.PreProvider{
			ID:   rec.ID,
			Name: label,
		})
	}

	return parseErr("%s has no recognizable predicates", rec.ID)
}

func parseErr(format string, args ...any) mo.Result[resource.PreResource] {
	return mo.Err[resource.PreResource](fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...)))
}
