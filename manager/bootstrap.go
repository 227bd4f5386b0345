package manager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cyp0633/libccm/internal/resolve"
	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store"
)

// bootstrap loads every resource kind in ancestor order and closes ready.
func (m *Manager) bootstrap() {
	defer close(m.ready)

	m.reconcileMu.Lock()
	defer m.reconcileMu.Unlock()

	m.logger.Debug("bootstrapping resource graph")

	// The provider fetch is the first contact with the store; if it fails the
	// store is considered unreachable and nothing else is attempted.
	providers, err := m.backend.ListProviders(m.ctx)
	if err != nil {
		e := &Error{Kind: KindStoreUnavailable, Err: fmt.Errorf("failed to list providers: %w", err)}
		m.err = e
		m.report(slog.LevelError, "store unavailable, resource graph will not be populated", e)
		return
	}
	m.attachRecords(providers)

	fetches := []struct {
		kind resource.Kind
		list func(context.Context) ([]store.Record, error)
	}{
		{resource.KindCollection, m.backend.ListCollections},
		{resource.KindCalendar, m.backend.ListCalendars},
		{resource.KindEvent, m.backend.ListEvents},
	}
	for _, f := range fetches {
		records, err := f.list(m.ctx)
		if err != nil {
			m.report(slog.LevelError, "bootstrap fetch failed",
				&Error{Kind: KindQueryFailure, Err: fmt.Errorf("failed to list %ss: %w", f.kind, err)})
			continue
		}
		m.attachRecords(records)
	}

	m.logger.Info("resource graph loaded", "resources", m.pool.Len())
}

func (m *Manager) attachRecords(records []store.Record) {
	for _, rec := range records {
		pre, err := resolve.Classify(rec).Get()
		if err != nil {
			m.report(slog.LevelWarn, "skipping unparseable record", resolveError(rec.ID, err))
			continue
		}
		m.attach(pre)
	}
}

// attach builds the live resource for pre, appends it to its parent's child
// list and registers it in the pool. Collections are also appended to the
// root list. A live id or an absent parent leaves everything untouched.
func (m *Manager) attach(pre resource.PreResource) {
	id := pre.ResourceID()
	if existing, ok := m.pool.Get(id).Get(); ok {
		m.report(slog.LevelWarn, "ignoring create for a live id", &Error{
			Kind: KindDuplicateID,
			ID:   id,
			Err:  fmt.Errorf("id already registered as a %s", existing.Kind()),
		})
		return
	}

	var parent resource.Resource
	if pre.Kind() != resource.KindProvider {
		p, ok := m.pool.Get(pre.ParentID()).Get()
		if !ok {
			m.report(slog.LevelWarn, "parent resource not found, dropping", &Error{
				Kind: KindMissingParent,
				ID:   id,
				Err:  fmt.Errorf("%s parent %s is not loaded", pre.Kind(), pre.ParentID()),
			})
			return
		}
		parent = p
	}

	r := resource.Build(pre)
	switch r := r.(type) {
	case *resource.Provider:
	case *resource.Collection:
		p, ok := parent.(*resource.Provider)
		if !ok {
			m.wrongParent(r, parent)
			return
		}
		p.AddCollection(r)
		m.collections.Append(r)
	case *resource.Calendar:
		c, ok := parent.(*resource.Collection)
		if !ok {
			m.wrongParent(r, parent)
			return
		}
		c.AddCalendar(r)
	case *resource.Event:
		c, ok := parent.(*resource.Calendar)
		if !ok {
			m.wrongParent(r, parent)
			return
		}
		c.AddEvent(r)
	}

	m.pool.Insert(id, r)
}

func (m *Manager) wrongParent(r, parent resource.Resource) {
	m.report(slog.LevelWarn, "parent resource has the wrong kind, dropping", &Error{
		Kind: KindMissingParent,
		ID:   r.ID(),
		Err:  fmt.Errorf("%s parent %s is a %s", r.Kind(), parent.ID(), parent.Kind()),
	})
}
