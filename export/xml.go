// Package export renders the live resource graph as XML.
package export

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/cyp0633/libccm/resource"
)

// Namespace is the XML namespace of every exported element
const Namespace = "urn:x-ccm:export"

const (
	TagGraph       = "ccm:graph"
	TagSearch      = "ccm:search"
	TagCollection  = "ccm:collection"
	TagCalendar    = "ccm:calendar"
	TagEvent       = "ccm:event"
	TagDescription = "ccm:description"
)

// Graph renders collections with their calendars and events.
func Graph(collections []*resource.Collection) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(TagGraph)
	root.CreateAttr("xmlns:ccm", Namespace)

	for _, c := range collections {
		root.AddChild(CollectionElement(c))
	}
	return doc
}

// SearchResults renders the events matching text.
func SearchResults(text string, events []*resource.Event) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(TagSearch)
	root.CreateAttr("xmlns:ccm", Namespace)
	root.CreateAttr("text", text)
	root.CreateAttr("count", fmt.Sprint(len(events)))

	for _, e := range events {
		root.AddChild(EventElement(e))
	}
	return doc
}

// CollectionElement converts a collection and everything below it to an
// element.
func CollectionElement(c *resource.Collection) *etree.Element {
	elem := etree.NewElement(TagCollection)
	elem.CreateAttr("id", c.ID())
	elem.CreateAttr("provider", c.ProviderID())
	elem.CreateAttr("name", c.Name())

	for _, cal := range c.Calendars().Items() {
		elem.AddChild(CalendarElement(cal))
	}
	return elem
}

// CalendarElement converts a calendar and its events to an element.
func CalendarElement(cal *resource.Calendar) *etree.Element {
	elem := etree.NewElement(TagCalendar)
	elem.CreateAttr("id", cal.ID())
	elem.CreateAttr("name", cal.Name())
	elem.CreateAttr("color", cal.Color().String())

	for _, e := range cal.Events().Items() {
		elem.AddChild(EventElement(e))
	}
	return elem
}

// EventElement converts an event to an element. The description becomes a
// child element and is omitted when empty.
func EventElement(e *resource.Event) *etree.Element {
	elem := etree.NewElement(TagEvent)
	elem.CreateAttr("id", e.ID())
	elem.CreateAttr("calendar", e.CalendarID())
	elem.CreateAttr("name", e.Name())

	if d := e.Description(); d != "" {
		elem.CreateElement(TagDescription).SetText(d)
	}
	return elem
}

// Write indents doc and writes it to w.
func Write(w io.Writer, doc *etree.Document) error {
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}
