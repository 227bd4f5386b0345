package manager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cyp0633/libccm/observable"
	"github.com/cyp0633/libccm/resource"
)

// Search runs a full-text query over events and returns the matching live
// events as a fresh list owned by the caller. The list is not kept up to
// date. Empty text yields an empty list without querying the store. Hits
// that are not loaded in the graph are skipped.
func (m *Manager) Search(ctx context.Context, text string) (*observable.List[*resource.Event], error) {
	results := observable.New[*resource.Event]()
	if text == "" {
		return results, nil
	}

	ids, err := m.backend.SearchEvents(ctx, text)
	if err != nil {
		e := &Error{Kind: KindQueryFailure, Err: fmt.Errorf("failed to search events for %q: %w", text, err)}
		m.report(slog.LevelError, "event search failed", e)
		return results, e
	}

	events := make([]*resource.Event, 0, len(ids))
	for _, id := range ids {
		live, ok := m.pool.Get(id).Get()
		if !ok {
			m.logger.Warn("search hit is not loaded, skipping", "id", id)
			continue
		}
		ev, ok := live.(*resource.Event)
		if !ok {
			m.logger.Warn("search hit is not an event, skipping", "id", id, "kind", live.Kind().String())
			continue
		}
		events = append(events, ev)
	}
	results.Splice(events, 0)

	return results, nil
}
