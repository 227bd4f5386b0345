package manager

import (
	"context"
	"fmt"

	"github.com/cyp0633/libccm/resource"
)

// Write-back commands go straight to the store and never touch the graph.
// Their effect arrives later as a notification batch.

// CreateCollection asks the store for a new collection under providerID.
func (m *Manager) CreateCollection(ctx context.Context, providerID resource.ID, name string) error {
	if err := m.backend.CreateCollection(ctx, providerID, name); err != nil {
		return fmt.Errorf("failed to create collection under %s: %w", providerID, err)
	}
	return nil
}

// UpdateCollection renames collection id in the store.
func (m *Manager) UpdateCollection(ctx context.Context, id resource.ID, name string) error {
	if err := m.backend.UpdateCollection(ctx, id, name); err != nil {
		return fmt.Errorf("failed to update collection %s: %w", id, err)
	}
	return nil
}

// DeleteCollection removes collection id from the store.
func (m *Manager) DeleteCollection(ctx context.Context, id resource.ID) error {
	if err := m.backend.DeleteCollection(ctx, id); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", id, err)
	}
	return nil
}

// CreateCalendar asks the store for a new calendar in collectionID.
func (m *Manager) CreateCalendar(ctx context.Context, collectionID resource.ID, name string, color resource.Color) error {
	if err := m.backend.CreateCalendar(ctx, collectionID, name, color.String()); err != nil {
		return fmt.Errorf("failed to create calendar in %s: %w", collectionID, err)
	}
	return nil
}

// UpdateCalendar sets the name and color of calendar id in the store.
func (m *Manager) UpdateCalendar(ctx context.Context, id resource.ID, name string, color resource.Color) error {
	if err := m.backend.UpdateCalendar(ctx, id, name, color.String()); err != nil {
		return fmt.Errorf("failed to update calendar %s: %w", id, err)
	}
	return nil
}

// DeleteCalendar removes calendar id from the store.
func (m *Manager) DeleteCalendar(ctx context.Context, id resource.ID) error {
	if err := m.backend.DeleteCalendar(ctx, id); err != nil {
		return fmt.Errorf("failed to delete calendar %s: %w", id, err)
	}
	return nil
}

// CreateEvent asks the store for a new event in calendarID.
func (m *Manager) CreateEvent(ctx context.Context, calendarID resource.ID, name, description string) error {
	if err := m.backend.CreateEvent(ctx, calendarID, name, description); err != nil {
		return fmt.Errorf("failed to create event in %s: %w", calendarID, err)
	}
	return nil
}

// UpdateEvent sets the name and description of event id in the store.
func (m *Manager) UpdateEvent(ctx context.Context, id resource.ID, name, description string) error {
	if err := m.backend.UpdateEvent(ctx, id, name, description); err != nil {
		return fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return nil
}

// DeleteEvent removes event id from the store.
func (m *Manager) DeleteEvent(ctx context.Context, id resource.ID) error {
	if err := m.backend.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}
