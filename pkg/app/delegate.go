package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/byxorna/sieve/pkg/section"
	"github.com/byxorna/sieve/pkg/text"
	"github.com/byxorna/sieve/pkg/types/v1"
	"github.com/byxorna/sieve/pkg/ui"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	verticalLine = "│"
	itemIndent   = 2
)

type rowKind int

const (
	headerRow rowKind = iota
	placeholderRow
	itemRow
)

// row is one line of the list: a section header, the placeholder of a section
// with nothing to show, or an item. Only item rows can be selected.
type row struct {
	kind  rowKind
	entry section.Entry
}

// FilterValue satisfies list.Item. The list never filters on its own, the
// controller does.
func (r row) FilterValue() string {
	if it, ok := r.entry.Item.(v1.Item); ok && r.kind == itemRow {
		return it.Title()
	}
	return ""
}

func (r row) selectable() bool { return r.kind == itemRow }

// rows flattens the controller projection into list rows, adding a
// placeholder row after the header of every empty section that has one.
func rows(c *section.Controller) []list.Item {
	out := make([]list.Item, 0, c.ItemCount())
	for i := 0; i < c.ItemCount(); i++ {
		e, ok := c.ItemAt(i)
		if !ok {
			continue
		}
		if e.Kind == section.ItemEntry {
			out = append(out, row{kind: itemRow, entry: e})
			continue
		}
		out = append(out, row{kind: headerRow, entry: e})
		if e.Section.NbItems() == 0 && e.Section.EmptyViewPlaceholder() != "" {
			out = append(out, row{kind: placeholderRow, entry: e})
		}
	}
	return out
}

// sectionDelegate draws rows one line each. The query highlighted in item
// titles is read from the directory at render time.
type sectionDelegate struct {
	dir *Directory
}

func newSectionDelegate(dir *Directory) sectionDelegate {
	return sectionDelegate{dir: dir}
}

func (d sectionDelegate) Height() int                               { return 1 }
func (d sectionDelegate) Spacing() int                              { return 0 }
func (d sectionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d sectionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	width := m.Width()
	switch r.kind {
	case headerRow:
		g := r.entry.Section
		title := text.TruncateWithTail(g.Title(), uint(max(width, 1)), text.Ellipsis)
		fmt.Fprint(w, ui.HeaderStyle.Foreground(text.SectionColor(g.BaseTitle())).Render(title))
	case placeholderRow:
		fmt.Fprint(w, strings.Repeat(" ", itemIndent)+ui.PlaceholderStyle.Render(r.entry.Section.EmptyViewPlaceholder()))
	default:
		fmt.Fprint(w, renderItem(r.entry, index == m.Index(), d.dir.Controller().Query(), width))
	}
}

func renderItem(e section.Entry, selected bool, query string, width int) string {
	var (
		title, summary, icon string
	)
	if it, ok := e.Item.(v1.Item); ok {
		title, summary, icon = it.Title(), it.Summary(), it.Icon()
	} else {
		title, icon = fmt.Sprint(e.Item), text.EmojiUnknown
	}

	gutter := " "
	primary, secondary := ui.ItemLinePrimaryUnfocused, ui.ItemLineSecondaryUnfocused
	if selected {
		gutter = ui.ItemLineSecondaryFocused.Render(verticalLine)
		primary, secondary = ui.ItemLinePrimaryFocused, ui.ItemLineSecondaryFocused
	}

	// leave room for the gutter, icon and a short summary
	titleWidth := max(width-itemIndent-runewidth.StringWidth(icon)-4, 8)
	title = text.TruncateWithTail(title, uint(titleWidth), text.Ellipsis)
	line := fmt.Sprintf("%s %s %s", gutter, icon,
		text.StyleFilteredText(title, query, primary, primary.Inherit(ui.MatchedText)))

	used := lipgloss.Width(line)
	if summary != "" && used+3 < width {
		summary = text.TruncateWithTail(summary, uint(width-used-3), text.Ellipsis)
		line += "  " + secondary.Render(summary)
	}
	return line
}

// plainRow is the unstyled rendering of a row, for non-interactive output.
func plainRow(r row) string {
	indent := strings.Repeat(" ", itemIndent)
	switch r.kind {
	case headerRow:
		return r.entry.Section.Title()
	case placeholderRow:
		return indent + r.entry.Section.EmptyViewPlaceholder()
	}

	it, ok := r.entry.Item.(v1.Item)
	if !ok {
		return indent + fmt.Sprint(r.entry.Item)
	}
	return fmt.Sprintf("%s%s  %s", indent, runewidth.FillRight(it.Title(), 32), it.Summary())
}

// Print writes the current projection, one row per line, followed by the
// match count, or a no results line when a query matched nothing.
func (d *Directory) Print(w io.Writer) error {
	c := d.controller
	for _, it := range rows(c) {
		if _, err := fmt.Fprintln(w, plainRow(it.(row))); err != nil {
			return err
		}
	}

	var err error
	switch total := c.Total(); {
	case c.Filtered() && total == 0:
		_, err = fmt.Fprintf(w, "No results for %q\n", c.Query())
	case c.Filtered():
		_, err = fmt.Fprintf(w, "%d matches for %q\n", total, c.Query())
	default:
		_, err = fmt.Fprintf(w, "%d items\n", total)
	}
	return err
}
