package memory

import (
	"fmt"
	"io"

	"github.com/cyp0633/libccm/resource"
	"github.com/cyp0633/libccm/store"
	"github.com/emersion/go-ical"
)

// Seed is a nested fixture of providers and everything below them.
type Seed struct {
	Providers []SeedProvider `yaml:"providers" json:"providers"`
}

type SeedProvider struct {
	Name        string           `yaml:"name" json:"name"`
	Collections []SeedCollection `yaml:"collections" json:"collections"`
}

type SeedCollection struct {
	Name      string         `yaml:"name" json:"name"`
	Calendars []SeedCalendar `yaml:"calendars" json:"calendars"`
}

type SeedCalendar struct {
	Name   string      `yaml:"name" json:"name"`
	Color  string      `yaml:"color" json:"color"`
	Events []SeedEvent `yaml:"events" json:"events"`
}

type SeedEvent struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Seed stores every resource of seed without publishing notifications. It
// returns the assigned ids keyed by slash-joined name path, e.g.
// "Local/Personal/Work/Standup".
func (s *Store) Seed(seed Seed) map[string]resource.ID {
	ids := make(map[string]resource.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range seed.Providers {
		pid := newID()
		s.put(store.Record{ID: pid, Props: map[store.Predicate]string{store.PredLabel: p.Name}})
		ids[p.Name] = pid

		for _, c := range p.Collections {
			cpath := p.Name + "/" + c.Name
			cid := newID()
			s.put(store.Record{ID: cid, Props: map[store.Predicate]string{
				store.PredLabel:    c.Name,
				store.PredProvider: pid,
			}})
			ids[cpath] = cid

			for _, cal := range c.Calendars {
				calpath := cpath + "/" + cal.Name
				calid := newID()
				s.put(store.Record{ID: calid, Props: map[store.Predicate]string{
					store.PredLabel:      cal.Name,
					store.PredColor:      cal.Color,
					store.PredCollection: cid,
				}})
				ids[calpath] = calid

				for _, ev := range cal.Events {
					eid := newID()
					s.put(store.Record{ID: eid, Props: map[store.Predicate]string{
						store.PredEventName:        ev.Name,
						store.PredEventDescription: ev.Description,
						store.PredCalendar:         calid,
					}})
					ids[calpath+"/"+ev.Name] = eid
				}
			}
		}
	}
	return ids
}

// WriteICS encodes every calendar together with its events as iCalendar
// documents, one after the other.
func (s *Store) WriteICS(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enc := ical.NewEncoder(w)
	for _, id := range s.order {
		comp := s.records[id]
		if comp.Name != ical.CompCalendar {
			continue
		}

		cal := ical.NewCalendar()
		cal.Props.SetText(ical.PropProductID, "-//libccm//Memory Store//EN")
		cal.Props.SetText(ical.PropVersion, "2.0")
		for _, name := range []string{ical.PropName, ical.PropColor} {
			if p := comp.Props.Get(name); p != nil {
				cal.Props.Set(p)
			}
		}

		for _, eid := range s.order {
			ev := s.records[eid]
			if ev.Name != ical.CompEvent {
				continue
			}
			if parent, _ := ev.Props.Text(predicateProps[store.PredCalendar]); parent == id {
				cal.Children = append(cal.Children, ev)
			}
		}

		if err := enc.Encode(cal); err != nil {
			return fmt.Errorf("failed to encode calendar %s: %w", id, err)
		}
	}
	return nil
}
