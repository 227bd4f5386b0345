// Package manager keeps an in-process graph of providers, collections,
// calendars and events in step with a backing store.
//
// A Manager loads the whole graph once on construction and then applies the
// store's notification batches as they arrive. Consumers hold on to live
// resources and observable lists; both are updated in place.
package manager

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/cyp0633/libccm/internal/pool"
	"github.com/cyp0633/libccm/internal/resolve"
	"github.com/cyp0633/libccm/observable"
	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store"
	"github.com/samber/mo"
)

// Manager mirrors a store.Backend.
type Manager struct {
	backend  store.Backend
	resolver *resolve.Resolver
	pool     *pool.Pool

	// collections is the root list: every collection ever attached.
	collections *observable.List[*resource.Collection]

	logger  *slog.Logger
	onError func(error)

	ctx    context.Context
	cancel context.CancelFunc

	// reconcileMu serializes bootstrap and batches.
	reconcileMu sync.Mutex

	ready chan struct{}
	// err is written once before ready is closed.
	err error

	unsubscribe func()
	closeOnce   sync.Once
}

// New subscribes to backend and starts loading the graph in the background.
// It returns immediately; wait on Ready before relying on the graph.
func New(backend store.Backend, opts ...Option) (*Manager, error) {
	if backend == nil {
		return nil, errors.New("manager: backend is required")
	}

	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	ctx, cancel := context.WithCancel(cfg.Context)
	m := &Manager{
		backend:     backend,
		resolver:    resolve.New(backend),
		pool:        pool.New(cfg.Logger),
		collections: observable.New[*resource.Collection](),
		logger:      cfg.Logger,
		onError:     cfg.ErrorHandler,
		ctx:         ctx,
		cancel:      cancel,
		ready:       make(chan struct{}),
	}

	// Subscribe before loading so that nothing committed during bootstrap is
	// missed. Such batches wait for bootstrap and may repeat what it already
	// loaded; repeated creates are rejected as duplicates.
	m.unsubscribe = backend.Subscribe(m.Reconcile)
	go m.bootstrap()

	return m, nil
}

// Ready is closed once bootstrap has finished, successfully or not.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Err returns the fatal bootstrap error, if any. It is only meaningful once
// Ready is closed.
func (m *Manager) Err() error {
	select {
	case <-m.ready:
		return m.err
	default:
		return nil
	}
}

// Close unsubscribes from the store and cancels in-flight round-trips. The
// graph stays readable but is no longer updated.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
	})
}

// FindResource returns the live resource registered under id.
func (m *Manager) FindResource(id resource.ID) mo.Option[resource.Resource] {
	return m.pool.Get(id)
}

// Collections returns the root list of collections across all providers.
func (m *Manager) Collections() *observable.List[*resource.Collection] {
	return m.collections
}

// report logs e at level and hands it to the error hook.
func (m *Manager) report(level slog.Level, msg string, e *Error) {
	attrs := []any{"kind", string(e.Kind)}
	if e.ID != "" {
		attrs = append(attrs, "id", e.ID)
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
	}
	m.logger.Log(m.ctx, level, msg, attrs...)

	if m.onError != nil {
		m.onError(e)
	}
}
