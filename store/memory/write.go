package memory

import (
	"context"
	"fmt"

	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store"
	"github.com/emersion/go-ical"
)

// create stores a new record under a fresh id after checking that parentID
// is a live record of component parentComp, then publishes the creation.
func (s *Store) create(parentID resource.ID, parentComp string, props map[store.Predicate]string) error {
	s.mu.Lock()
	if s.unavailable {
		s.mu.Unlock()
		return errUnavailable()
	}
	parent, ok := s.records[parentID]
	if !ok || parent.Name != parentComp {
		s.mu.Unlock()
		return &store.Error{
			Type:    store.ErrInvalidInput,
			Message: fmt.Sprintf("parent %s is not a live %s", parentID, parentComp),
		}
	}
	id := newID()
	s.put(store.Record{ID: id, Props: props})
	s.mu.Unlock()

	s.Publish(store.Batch{{Type: store.ChangeCreate, ID: id}})
	return nil
}

// update sets props on the live record id of component comp, then publishes
// the update.
func (s *Store) update(id resource.ID, comp string, props map[store.Predicate]string) error {
	s.mu.Lock()
	if s.unavailable {
		s.mu.Unlock()
		return errUnavailable()
	}
	c, ok := s.records[id]
	if !ok || c.Name != comp {
		s.mu.Unlock()
		return errNotFound(id)
	}
	for pred, v := range props {
		c.Props.SetText(predicateProps[pred], v)
	}
	s.mu.Unlock()

	s.Publish(store.Batch{{Type: store.ChangeUpdate, ID: id}})
	return nil
}

// remove drops the live record id of component comp, then publishes the
// deletion. Children are left in place.
func (s *Store) remove(id resource.ID, comp string) error {
	s.mu.Lock()
	if s.unavailable {
		s.mu.Unlock()
		return errUnavailable()
	}
	c, ok := s.records[id]
	if !ok || c.Name != comp {
		s.mu.Unlock()
		return errNotFound(id)
	}
	s.drop(id)
	s.mu.Unlock()

	s.Publish(store.Batch{{Type: store.ChangeDelete, ID: id}})
	return nil
}

// CreateCollection implements the store.Writer interface
func (s *Store) CreateCollection(_ context.Context, providerID resource.ID, name string) error {
	return s.create(providerID, compProvider, map[store.Predicate]string{
		store.PredLabel:    name,
		store.PredProvider: providerID,
	})
}

// UpdateCollection implements the store.Writer interface
func (s *Store) UpdateCollection(_ context.Context, id resource.ID, name string) error {
	return s.update(id, compCollection, map[store.Predicate]string{store.PredLabel: name})
}

// DeleteCollection implements the store.Writer interface. Calendars of the
// collection are left in place.
func (s *Store) DeleteCollection(_ context.Context, id resource.ID) error {
	return s.remove(id, compCollection)
}

// CreateCalendar implements the store.Writer interface
func (s *Store) CreateCalendar(_ context.Context, collectionID resource.ID, name, color string) error {
	return s.create(collectionID, compCollection, map[store.Predicate]string{
		store.PredLabel:      name,
		store.PredColor:      color,
		store.PredCollection: collectionID,
	})
}

// UpdateCalendar implements the store.Writer interface
func (s *Store) UpdateCalendar(_ context.Context, id resource.ID, name, color string) error {
	return s.update(id, ical.CompCalendar, map[store.Predicate]string{
		store.PredLabel: name,
		store.PredColor: color,
	})
}

// DeleteCalendar implements the store.Writer interface
func (s *Store) DeleteCalendar(_ context.Context, id resource.ID) error {
	return s.remove(id, ical.CompCalendar)
}

// CreateEvent implements the store.Writer interface
func (s *Store) CreateEvent(_ context.Context, calendarID resource.ID, name, description string) error {
	return s.create(calendarID, ical.CompCalendar, map[store.Predicate]string{
		store.PredEventName:        name,
		store.PredEventDescription: description,
		store.PredCalendar:         calendarID,
	})
}

// UpdateEvent implements the store.Writer interface
func (s *Store) UpdateEvent(_ context.Context, id resource.ID, name, description string) error {
	return s.update(id, ical.CompEvent, map[store.Predicate]string{
		store.PredEventName:        name,
		store.PredEventDescription: description,
	})
}

// DeleteEvent implements the store.Writer interface
func (s *Store) DeleteEvent(_ context.Context, id resource.ID) error {
	return s.remove(id, ical.CompEvent)
}
