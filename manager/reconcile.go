package manager

import (
	"fmt"
	"log/slog"

	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store"
)

// Reconcile applies one notification batch to the graph. It is the handler
// the manager subscribes with and may also be called directly.
//
// It waits for bootstrap to finish and holds the reconcile lock for the
// whole batch. Creates are applied first, in ancestor order, then updates,
// then deletes. Per-item failures are reported and skipped.
func (m *Manager) Reconcile(batch store.Batch) {
	select {
	case <-m.ready:
	case <-m.ctx.Done():
		return
	}
	if m.err != nil {
		m.logger.Error("dropping notification batch, bootstrap failed",
			"changes", len(batch),
			"error", m.err)
		return
	}
	if m.ctx.Err() != nil {
		return
	}

	m.reconcileMu.Lock()
	defer m.reconcileMu.Unlock()

	var creates, updates, deletes []resource.ID
	for _, c := range batch {
		switch c.Type {
		case store.ChangeCreate:
			creates = append(creates, c.ID)
		case store.ChangeUpdate:
			updates = append(updates, c.ID)
		case store.ChangeDelete:
			deletes = append(deletes, c.ID)
		default:
			m.logger.Warn("ignoring change of unknown type", "id", c.ID, "type", int(c.Type))
		}
	}

	m.logger.Debug("reconciling batch",
		"creates", len(creates),
		"updates", len(updates),
		"deletes", len(deletes))

	m.applyCreates(creates)
	m.applyUpdates(updates)
	m.applyDeletes(deletes)
}

func (m *Manager) applyCreates(ids []resource.ID) {
	staged := make(map[resource.Kind][]resource.PreResource)
	for _, id := range ids {
		pre, err := m.resolver.Resolve(m.ctx, id).Get()
		if err != nil {
			m.report(slog.LevelWarn, "failed to resolve created resource", resolveError(id, err))
			continue
		}
		staged[pre.Kind()] = append(staged[pre.Kind()], pre)
	}

	for _, kind := range resource.Kinds {
		for _, pre := range staged[kind] {
			m.attach(pre)
		}
	}
}

func (m *Manager) applyUpdates(ids []resource.ID) {
	for _, id := range ids {
		live, ok := m.pool.Get(id).Get()
		if !ok {
			m.logger.Warn("update for a resource that is not loaded", "id", id)
			continue
		}

		cal, ok := live.(*resource.Calendar)
		if !ok {
			m.report(slog.LevelError, "unsupported update", unhandled("update", live))
			continue
		}

		pre, err := m.resolver.Resolve(m.ctx, id).Get()
		if err != nil {
			m.report(slog.LevelWarn, "failed to resolve updated calendar", resolveError(id, err))
			continue
		}
		fresh, ok := pre.(resource.PreCalendar)
		if !ok {
			m.report(slog.LevelWarn, "updated calendar no longer resolves to a calendar", &Error{
				Kind: KindParseFailure,
				ID:   id,
				Err:  fmt.Errorf("resolved to a %s", pre.Kind()),
			})
			continue
		}
		cal.Update(fresh.Name, fresh.Color)
	}
}

func (m *Manager) applyDeletes(ids []resource.ID) {
	for _, id := range ids {
		live, ok := m.pool.Get(id).Get()
		if !ok {
			m.logger.Warn("delete for a resource that is not loaded", "id", id)
			continue
		}

		cal, ok := live.(*resource.Calendar)
		if !ok {
			m.report(slog.LevelError, "unsupported delete", unhandled("delete", live))
			continue
		}
		m.pool.Remove(id)
		cal.NotifyDeleted()
	}
}
