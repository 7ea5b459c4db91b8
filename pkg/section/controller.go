package section

import (
	"strings"
)

// EntryKind tells a renderer whether a flat list position holds a section
// header or one of its items.
type EntryKind int

const (
	HeaderEntry EntryKind = iota
	ItemEntry
)

func (k EntryKind) String() string {
	if k == HeaderEntry {
		return "header"
	}
	return "item"
}

// Entry is one position of the flat projection.
type Entry struct {
	Kind    EntryKind
	Section Group
	// Item is nil for headers.
	Item any
	// Index is the item's position within its section's filtered items.
	Index int
}

// Controller owns an ordered set of sections and the flat, position
// addressable list derived from them.
type Controller struct {
	sections  []Group
	positions []Entry
	query     string
}

func NewController(sections ...Group) *Controller {
	c := &Controller{sections: append([]Group(nil), sections...)}
	c.RebuildProjection()
	return c
}

// AddSection appends s after every section already registered.
func (c *Controller) AddSection(s Group) {
	c.sections = append(c.sections, s)
	c.RebuildProjection()
}

// ApplyFilter narrows every section to query and returns the number of items
// matching across all sections. A blank query restores every section.
func (c *Controller) ApplyFilter(query string) int {
	c.query = strings.TrimSpace(query)

	total := 0
	for _, s := range c.sections {
		if c.query == "" {
			s.ResetFilter()
		} else {
			s.Filter(c.query)
		}
		total += s.NbItems()
	}

	c.RebuildProjection()
	return total
}

// Refresh rebuilds the projection after sections were mutated directly, for
// instance by a data reload.
func (c *Controller) Refresh() {
	c.RebuildProjection()
}

// RebuildProjection walks sections in registration order, emitting a header
// and then the filtered items of every section that is not hidden.
func (c *Controller) RebuildProjection() {
	positions := make([]Entry, 0, len(c.positions))
	for _, s := range c.sections {
		positions = s.appendEntries(positions)
	}
	c.positions = positions
}

func (c *Controller) ItemCount() int { return len(c.positions) }

// ItemAt returns the entry at pos. A position outside the current projection
// is not an error: the list may have shrunk since the position was read, so
// the zero Entry and false are returned.
func (c *Controller) ItemAt(pos int) (Entry, bool) {
	if pos < 0 || pos >= len(c.positions) {
		return Entry{}, false
	}
	return c.positions[pos], true
}

// Total is the number of items currently shown across all sections.
func (c *Controller) Total() int {
	n := 0
	for _, s := range c.sections {
		n += s.NbItems()
	}
	return n
}

func (c *Controller) Query() string { return c.query }

// Filtered reports whether a non-blank query is applied.
func (c *Controller) Filtered() bool { return c.query != "" }

func (c *Controller) Sections() []Group {
	out := make([]Group, len(c.sections))
	copy(out, c.sections)
	return out
}

// Section finds a registered section by its base title.
func (c *Controller) Section(title string) (Group, bool) {
	for _, s := range c.sections {
		if s.BaseTitle() == title {
			return s, true
		}
	}
	return nil, false
}
