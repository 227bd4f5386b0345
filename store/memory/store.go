// memory based implementation for testing purposes
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// Component names for the kinds go-ical has no component for.
const (
	compProvider   = "X-CCM-PROVIDER"
	compCollection = "X-CCM-COLLECTION"
)

// predicateProps maps record predicates onto iCalendar property names.
var predicateProps = map[store.Predicate]string{
	store.PredLabel:            ical.PropName,
	store.PredColor:            ical.PropColor,
	store.PredProvider:         "X-CCM-PROVIDER",
	store.PredCollection:       "X-CCM-COLLECTION",
	store.PredCalendar:         "X-CCM-CALENDAR",
	store.PredEventName:        ical.PropSummary,
	store.PredEventDescription: ical.PropDescription,
}

// Store implements store.Backend using in-memory go-ical components.
//
// Writer methods mutate the store and then publish a one-change batch.
// Put and Drop mutate silently, for fixtures. Batches are delivered in order
// on a single dispatcher goroutine.
type Store struct {
	mu          sync.RWMutex
	records     map[resource.ID]*ical.Component
	order       []resource.ID
	unavailable bool
	now         func() time.Time

	subMu   sync.Mutex
	subs    map[int]func(store.Batch)
	nextSub int

	queue     chan envelope
	done      chan struct{}
	closeOnce sync.Once
}

type envelope struct {
	batch   store.Batch
	flushed chan struct{}
}

var _ store.Backend = (*Store)(nil)

// New creates an empty store and starts its dispatcher. Call Close to stop it.
func New() *Store {
	s := &Store{
		records: make(map[resource.ID]*ical.Component),
		now:     time.Now,
		subs:    make(map[int]func(store.Batch)),
		queue:   make(chan envelope, 64),
		done:    make(chan struct{}),
	}
	go s.dispatch()
	return s
}

// Close stops notification delivery. Pending batches are dropped.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// SetUnavailable makes every query and command fail with ErrUnavailable.
func (s *Store) SetUnavailable(v bool) {
	s.mu.Lock()
	s.unavailable = v
	s.mu.Unlock()
}

func newID() resource.ID {
	return "urn:uuid:" + uuid.NewString()
}

func errUnavailable() error {
	return &store.Error{Type: store.ErrUnavailable, Message: "store unavailable"}
}

func errNotFound(id resource.ID) error {
	return &store.Error{Type: store.ErrNotFound, Message: fmt.Sprintf("resource %s not found", id)}
}

// componentName picks the component for a set of predicates, mirroring how
// the resolver classifies records.
func componentName(props map[store.Predicate]string) string {
	has := func(p store.Predicate) bool { _, ok := props[p]; return ok }
	switch {
	case has(store.PredCalendar):
		return ical.CompEvent
	case has(store.PredCollection):
		return ical.CompCalendar
	case has(store.PredProvider):
		return compCollection
	default:
		return compProvider
	}
}

func (s *Store) toComponent(rec store.Record) *ical.Component {
	comp := ical.NewComponent(componentName(rec.Props))
	for pred, v := range rec.Props {
		name, ok := predicateProps[pred]
		if !ok {
			continue
		}
		comp.Props.SetText(name, v)
	}
	if comp.Name == ical.CompEvent {
		now := s.now().UTC()
		comp.Props.SetText(ical.PropUID, rec.ID)
		comp.Props.SetDateTime(ical.PropDateTimeStamp, now)
		comp.Props.SetDateTime(ical.PropDateTimeStart, now)
	}
	return comp
}

func toRecord(id resource.ID, comp *ical.Component) store.Record {
	rec := store.Record{ID: id, Props: make(map[store.Predicate]string)}
	for pred, name := range predicateProps {
		if comp.Props.Get(name) == nil {
			continue
		}
		v, err := comp.Props.Text(name)
		if err != nil {
			continue
		}
		rec.Props[pred] = v
	}
	return rec
}

// put must be called with mu held.
func (s *Store) put(rec store.Record) {
	if _, exists := s.records[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.records[rec.ID] = s.toComponent(rec)
}

// drop must be called with mu held.
func (s *Store) drop(id resource.ID) bool {
	if _, exists := s.records[id]; !exists {
		return false
	}
	delete(s.records, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Put stores rec without publishing a notification. A record with an empty
// ID gets a fresh one. It returns the record's ID.
func (s *Store) Put(rec store.Record) resource.ID {
	if rec.ID == "" {
		rec.ID = newID()
	}
	s.mu.Lock()
	s.put(rec)
	s.mu.Unlock()
	return rec.ID
}

// Drop removes id without publishing a notification.
func (s *Store) Drop(id resource.ID) {
	s.mu.Lock()
	s.drop(id)
	s.mu.Unlock()
}

// Query operations

// Lookup implements the store.Querier interface
func (s *Store) Lookup(_ context.Context, id resource.ID) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.unavailable {
		return store.Record{}, errUnavailable()
	}
	comp, ok := s.records[id]
	if !ok {
		return store.Record{}, errNotFound(id)
	}
	return toRecord(id, comp), nil
}

func (s *Store) list(compName string) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.unavailable {
		return nil, errUnavailable()
	}
	var out []store.Record
	for _, id := range s.order {
		if comp := s.records[id]; comp.Name == compName {
			out = append(out, toRecord(id, comp))
		}
	}
	return out, nil
}

// ListProviders implements the store.Querier interface
func (s *Store) ListProviders(_ context.Context) ([]store.Record, error) {
	return s.list(compProvider)
}

// ListCollections implements the store.Querier interface
func (s *Store) ListCollections(_ context.Context) ([]store.Record, error) {
	return s.list(compCollection)
}

// ListCalendars implements the store.Querier interface
func (s *Store) ListCalendars(_ context.Context) ([]store.Record, error) {
	return s.list(ical.CompCalendar)
}

// ListEvents implements the store.Querier interface
func (s *Store) ListEvents(_ context.Context) ([]store.Record, error) {
	return s.list(ical.CompEvent)
}

// SearchEvents matches text case-insensitively against event names and
// descriptions.
func (s *Store) SearchEvents(_ context.Context, text string) ([]resource.ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.unavailable {
		return nil, errUnavailable()
	}
	needle := strings.ToLower(text)
	var ids []resource.ID
	for _, id := range s.order {
		comp := s.records[id]
		if comp.Name != ical.CompEvent {
			continue
		}
		summary, _ := comp.Props.Text(ical.PropSummary)
		description, _ := comp.Props.Text(ical.PropDescription)
		if strings.Contains(strings.ToLower(summary), needle) ||
			strings.Contains(strings.ToLower(description), needle) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Notifications

// Subscribe implements the store.Notifier interface
func (s *Store) Subscribe(fn func(store.Batch)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Publish queues b for delivery to every subscriber.
func (s *Store) Publish(b store.Batch) {
	select {
	case s.queue <- envelope{batch: b}:
	case <-s.done:
	}
}

// Flush blocks until every batch published so far has been delivered.
func (s *Store) Flush() {
	ack := make(chan struct{})
	select {
	case s.queue <- envelope{flushed: ack}:
	case <-s.done:
		return
	}
	select {
	case <-ack:
	case <-s.done:
	}
}

func (s *Store) dispatch() {
	for {
		select {
		case env := <-s.queue:
			if env.flushed != nil {
				close(env.flushed)
				continue
			}
			s.deliver(env.batch)
		case <-s.done:
			return
		}
	}
}

func (s *Store) deliver(b store.Batch) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(store.Batch), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(b)
	}
}
