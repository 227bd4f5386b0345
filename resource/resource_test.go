package resource

import (
	"testing"

	"github.com/cyp0633/libccm/observable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ff0000", want: RGB(0xff, 0, 0)},
		{in: "#F90", want: RGB(0xff, 0x99, 0x00)},
		{in: "#11223380", want: Color{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{in: "rgb(1, 2, 3)", want: RGB(1, 2, 3)},
		{in: "rgba(10,20,30,0)", want: Color{R: 10, G: 20, B: 30, A: 0}},
		{in: " RGB(255,255,255) ", want: RGB(255, 255, 255)},
		{in: "red", want: RGB(0xff, 0, 0)},
		{in: "chartreuse", want: RGB(0x7f, 0xff, 0x00)},
		{in: "Blue", want: RGB(0, 0, 0xff)},
		{in: "hsl(120, 100%, 50%)", want: RGB(0, 0xff, 0)},
		{in: "transparent", want: Color{}},
		{in: "", wantErr: true},
		{in: "notacolor", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "rgb(1,2)", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColor_String(t *testing.T) {
	for _, c := range []Color{RGB(0x12, 0xab, 0xef), {R: 1, G: 2, B: 3, A: 4}} {
		parsed, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	assert.Equal(t, "#ff9500", RGB(0xff, 0x95, 0x00).String())
}

func TestBuild(t *testing.T) {
	tests := []struct {
		pre  PreResource
		kind Kind
	}{
		{PreProvider{ID: "p", Name: "Local"}, KindProvider},
		{PreCollection{ID: "c", ProviderID: "p", Name: "Personal"}, KindCollection},
		{PreCalendar{ID: "cal", CollectionID: "c", Name: "Work", Color: RGB(1, 2, 3)}, KindCalendar},
		{PreEvent{ID: "e", CalendarID: "cal", Name: "Standup", Description: "daily"}, KindEvent},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			r := Build(tt.pre)
			assert.Equal(t, tt.kind, r.Kind())
			assert.Equal(t, tt.pre.ResourceID(), r.ID())
		})
	}

	ev := Build(PreEvent{ID: "e", CalendarID: "cal", Name: "n", Description: "d"}).(*Event)
	assert.Equal(t, "cal", ev.CalendarID())
	assert.Equal(t, "d", ev.Description())
}

func TestCalendar_UpdateIsVisibleToAllHolders(t *testing.T) {
	cal := NewCalendar("cal", "c", "Old", RGB(0, 0, 0))
	var held Resource = cal

	cal.Update("New", RGB(1, 1, 1))

	assert.Equal(t, "New", held.Name())
	assert.Equal(t, RGB(1, 1, 1), held.(*Calendar).Color())
}

func TestCollection_RemovesCalendarOnDeletion(t *testing.T) {
	coll := NewCollection("c", "p", "Personal")
	a := NewCalendar("a", "c", "A", RGB(0, 0, 0))
	b := NewCalendar("b", "c", "B", RGB(0, 0, 0))
	coll.AddCalendar(a)
	coll.AddCalendar(b)

	var deltas []observable.Delta
	coll.Calendars().Observe(func(d observable.Delta) { deltas = append(deltas, d) })

	a.NotifyDeleted()

	assert.Equal(t, []*Calendar{b}, coll.Calendars().Items())
	assert.Equal(t, []observable.Delta{{Position: 0, Removed: 1}}, deltas)

	// subscription is one-shot
	assert.NotPanics(t, a.NotifyDeleted)
	assert.Len(t, deltas, 1)
}

func TestCalendar_OnDeletedCancel(t *testing.T) {
	cal := NewCalendar("cal", "c", "A", RGB(0, 0, 0))
	calls := 0
	cancel := cal.OnDeleted(func(*Calendar) { calls++ })
	cancel()

	cal.NotifyDeleted()
	assert.Zero(t, calls)
}
