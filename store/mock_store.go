package store

import (
	"context"
	"sync"

	"github.com/cyp0633/libccm/resource"
	"github.com/stretchr/testify/mock"
)

// MockStore implements Backend for testing
type MockStore struct {
	mock.Mock

	handlerMu sync.Mutex
	handler   func(Batch)
}

var _ Backend = (*MockStore)(nil)

func (m *MockStore) Lookup(ctx context.Context, id resource.ID) (Record, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Record), args.Error(1)
}

func (m *MockStore) ListProviders(ctx context.Context) ([]Record, error) {
	return m.records(m.Called(ctx))
}

func (m *MockStore) ListCollections(ctx context.Context) ([]Record, error) {
	return m.records(m.Called(ctx))
}

func (m *MockStore) ListCalendars(ctx context.Context) ([]Record, error) {
	return m.records(m.Called(ctx))
}

func (m *MockStore) ListEvents(ctx context.Context) ([]Record, error) {
	return m.records(m.Called(ctx))
}

func (m *MockStore) records(args mock.Arguments) ([]Record, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockStore) SearchEvents(ctx context.Context, text string) ([]resource.ID, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]resource.ID), args.Error(1)
}

// Subscribe records the handler so tests can deliver batches with Deliver.
func (m *MockStore) Subscribe(fn func(Batch)) (cancel func()) {
	m.Called(fn)
	m.handlerMu.Lock()
	m.handler = fn
	m.handlerMu.Unlock()
	return func() {
		m.handlerMu.Lock()
		m.handler = nil
		m.handlerMu.Unlock()
	}
}

// Deliver hands b to the subscribed handler, if any, on the caller's goroutine.
func (m *MockStore) Deliver(b Batch) {
	m.handlerMu.Lock()
	fn := m.handler
	m.handlerMu.Unlock()
	if fn != nil {
		fn(b)
	}
}

func (m *MockStore) CreateCollection(ctx context.Context, providerID resource.ID, name string) error {
	return m.Called(ctx, providerID, name).Error(0)
}

func (m *MockStore) UpdateCollection(ctx context.Context, id resource.ID, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockStore) DeleteCollection(ctx context.Context, id resource.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) CreateCalendar(ctx context.Context, collectionID resource.ID, name, color string) error {
	return m.Called(ctx, collectionID, name, color).Error(0)
}

func (m *MockStore) UpdateCalendar(ctx context.Context, id resource.ID, name, color string) error {
	return m.Called(ctx, id, name, color).Error(0)
}

func (m *MockStore) DeleteCalendar(ctx context.Context, id resource.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) CreateEvent(ctx context.Context, calendarID resource.ID, name, description string) error {
	return m.Called(ctx, calendarID, name, description).Error(0)
}

func (m *MockStore) UpdateEvent(ctx context.Context, id resource.ID, name, description string) error {
	return m.Called(ctx, id, name, description).Error(0)
}

func (m *MockStore) DeleteEvent(ctx context.Context, id resource.ID) error {
	return m.Called(ctx, id).Error(0)
}
