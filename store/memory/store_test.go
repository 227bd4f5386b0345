package memory

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed() Seed {
	return Seed{Providers: []SeedProvider{{
		Name: "Local",
		Collections: []SeedCollection{{
			Name: "Personal",
			Calendars: []SeedCalendar{{
				Name:  "Work",
				Color: "#ff0000",
				Events: []SeedEvent{
					{Name: "Standup", Description: "Daily sync"},
					{Name: "Review", Description: "Quarterly numbers"},
				},
			}},
		}},
	}}}
}

// collector gathers delivered batches.
type collector struct {
	mu      sync.Mutex
	batches []store.Batch
}

func (c *collector) add(b store.Batch) {
	c.mu.Lock()
	c.batches = append(c.batches, b)
	c.mu.Unlock()
}

func (c *collector) all() []store.Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]store.Batch(nil), c.batches...)
}

func TestStore_SeedAndList(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	ids := s.Seed(testSeed())
	require.Len(t, ids, 5)

	providers, err := s.ListProviders(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, ids["Local"], providers[0].ID)
	assert.Equal(t, "Local", providers[0].Props[store.PredLabel])

	collections, err := s.ListCollections(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, ids["Local"], collections[0].Props[store.PredProvider])

	calendars, err := s.ListCalendars(ctx)
	require.NoError(t, err)
	require.Len(t, calendars, 1)
	assert.Equal(t, "#ff0000", calendars[0].Props[store.PredColor])
	assert.Equal(t, ids["Local/Personal"], calendars[0].Props[store.PredCollection])

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ids["Local/Personal/Work/Standup"], events[0].ID)
	assert.Equal(t, "Daily sync", events[0].Props[store.PredEventDescription])
	assert.Equal(t, ids["Local/Personal/Work"], events[0].Props[store.PredCalendar])
}

func TestStore_Lookup(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()
	ids := s.Seed(testSeed())

	rec, err := s.Lookup(ctx, ids["Local/Personal/Work"])
	require.NoError(t, err)
	assert.Equal(t, map[store.Predicate]string{
		store.PredLabel:      "Work",
		store.PredColor:      "#ff0000",
		store.PredCollection: ids["Local/Personal"],
	}, rec.Props)

	_, err = s.Lookup(ctx, "urn:uuid:missing")
	assert.True(t, store.IsType(err, store.ErrNotFound))
}

func TestStore_Unavailable(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()
	ids := s.Seed(testSeed())

	s.SetUnavailable(true)
	_, err := s.ListProviders(ctx)
	assert.True(t, store.IsType(err, store.ErrUnavailable))
	_, err = s.Lookup(ctx, ids["Local"])
	assert.True(t, store.IsType(err, store.ErrUnavailable))
	_, err = s.SearchEvents(ctx, "x")
	assert.True(t, store.IsType(err, store.ErrUnavailable))
	err = s.CreateCalendar(ctx, ids["Local/Personal"], "New", "#000000")
	assert.True(t, store.IsType(err, store.ErrUnavailable))

	s.SetUnavailable(false)
	_, err = s.ListProviders(ctx)
	assert.NoError(t, err)
}

func TestStore_SearchEvents(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()
	ids := s.Seed(testSeed())

	tests := []struct {
		text string
		want []resource.ID
	}{
		{"standup", []resource.ID{ids["Local/Personal/Work/Standup"]}},
		{"QUARTERLY", []resource.ID{ids["Local/Personal/Work/Review"]}},
		{"u", []resource.ID{ids["Local/Personal/Work/Standup"], ids["Local/Personal/Work/Review"]}},
		{"Work", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := s.SearchEvents(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_WritesPublishNotifications(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()
	ids := s.Seed(testSeed())

	var got collector
	s.Subscribe(got.add)

	require.NoError(t, s.CreateCalendar(ctx, ids["Local/Personal"], "Home", "#00ff00"))
	require.NoError(t, s.UpdateCalendar(ctx, ids["Local/Personal/Work"], "Office", "#0000ff"))
	require.NoError(t, s.DeleteEvent(ctx, ids["Local/Personal/Work/Standup"]))
	s.Flush()

	batches := got.all()
	require.Len(t, batches, 3)
	assert.Equal(t, store.ChangeCreate, batches[0][0].Type)
	assert.True(t, strings.HasPrefix(batches[0][0].ID, "urn:uuid:"))
	assert.Equal(t, store.Change{Type: store.ChangeUpdate, ID: ids["Local/Personal/Work"]}, batches[1][0])
	assert.Equal(t, store.Change{Type: store.ChangeDelete, ID: ids["Local/Personal/Work/Standup"]}, batches[2][0])

	rec, err := s.Lookup(ctx, batches[0][0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", rec.Props[store.PredLabel])

	rec, err = s.Lookup(ctx, ids["Local/Personal/Work"])
	require.NoError(t, err)
	assert.Equal(t, "Office", rec.Props[store.PredLabel])
	assert.Equal(t, "#0000ff", rec.Props[store.PredColor])
}

func TestStore_WriteErrors(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()
	ids := s.Seed(testSeed())

	err := s.CreateCalendar(ctx, ids["Local"], "Wrong parent kind", "#000000")
	assert.True(t, store.IsType(err, store.ErrInvalidInput))

	err = s.CreateEvent(ctx, "urn:uuid:missing", "x", "")
	assert.True(t, store.IsType(err, store.ErrInvalidInput))

	err = s.UpdateEvent(ctx, ids["Local/Personal/Work"], "calendar is not an event", "")
	assert.True(t, store.IsType(err, store.ErrNotFound))

	err = s.DeleteCollection(ctx, "urn:uuid:missing")
	assert.True(t, store.IsType(err, store.ErrNotFound))
}

func TestStore_PutDropAreSilent(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	var got collector
	s.Subscribe(got.add)

	id := s.Put(store.Record{Props: map[store.Predicate]string{store.PredLabel: "Remote"}})
	s.Drop(id)
	s.Flush()

	assert.Empty(t, got.all())
	_, err := s.Lookup(ctx, id)
	assert.True(t, store.IsType(err, store.ErrNotFound))
}

func TestStore_SubscribeCancel(t *testing.T) {
	s := New()
	defer s.Close()

	var got collector
	cancel := s.Subscribe(got.add)
	s.Publish(store.Batch{{Type: store.ChangeCreate, ID: "a"}})
	s.Flush()
	cancel()
	s.Publish(store.Batch{{Type: store.ChangeCreate, ID: "b"}})
	s.Flush()

	assert.Len(t, got.all(), 1)
}

func TestStore_WriteICS(t *testing.T) {
	s := New()
	defer s.Close()
	s.Seed(testSeed())

	var buf bytes.Buffer
	require.NoError(t, s.WriteICS(&buf))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "NAME:Work")
	assert.Contains(t, out, "SUMMARY:Standup")
	assert.Contains(t, out, "SUMMARY:Review")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}
