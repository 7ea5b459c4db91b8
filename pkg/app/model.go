package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/byxorna/sieve/pkg/config"
	"github.com/byxorna/sieve/pkg/types/v1"
	"github.com/byxorna/sieve/pkg/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const (
	// filter prompt, divider, status bar and help
	chromeHeight = 5
)

// familyChangedMsg is delivered when a family's listing changed on disk. The
// reload happens in Update so sections are only touched from the event loop.
type familyChangedMsg v1.Family
type watchErrMsg struct{ err error }
type watchClosedMsg struct{}

type Application struct {
	*config.Config

	UseAltScreen bool
	// GlamourStyle names the theme used to render item details.
	GlamourStyle string

	dir  *Directory
	keys applicationKeyMap
	help help.Model

	filterInput textinput.Model
	detail      viewport.Model
	showDetail  bool

	// list holds the rows of the controller projection; its selection is
	// kept on an item row whenever there is one
	list  list.Model
	total int

	width, height int
	err           error
	quitting      bool

	changes   <-chan v1.Family
	watchErrs <-chan error
}

func newApplication(cfg *config.Config, dir *Directory) *Application {
	ti := textinput.New()
	ti.Prompt = "Find: "
	ti.PromptStyle = ui.PromptStyle
	ti.Placeholder = "rooms, people, groups"

	l := list.New(rows(dir.Controller()), newSectionDelegate(dir), 80, 24-chromeHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	m := Application{
		Config:       cfg,
		GlamourStyle: "notty",
		dir:          dir,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		filterInput:  ti,
		detail:       viewport.New(80, 24-chromeHeight),
		list:         l,
		width:        80,
		height:       24,
	}
	m.total = dir.Controller().Total()
	m.selectFirstItem()
	return &m
}

func (m Application) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the store watcher and turns its next event into a
// message for Update.
func (m Application) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes, errs := m.changes, m.watchErrs
	return func() tea.Msg {
		select {
		case f, ok := <-changes:
			if !ok {
				return watchClosedMsg{}
			}
			return familyChangedMsg(f)
		case err, ok := <-errs:
			if !ok {
				return watchClosedMsg{}
			}
			return watchErrMsg{err}
		}
	}
}

func (m Application) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		topGap, rightGap, bottomGap, leftGap := ui.AppStyle.GetPadding()
		m.width = msg.Width - leftGap - rightGap
		m.height = msg.Height - topGap - bottomGap
		m.help.Width = m.width
		m.detail.Width = m.width
		m.detail.Height = max(m.height-chromeHeight, 1)
		m.list.SetSize(m.width, max(m.height-chromeHeight, 1))
		return m, nil

	case familyChangedMsg:
		if err := m.dir.Reload(v1.Family(msg)); err != nil {
			m.err = err
		} else {
			m.err = nil
		}
		m.afterProjectionChange()
		return m, m.waitForChange()

	case watchErrMsg:
		log.Printf("watch error: %v", msg.err)
		return m, m.waitForChange()

	case watchClosedMsg:
		m.changes = nil
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.filterInput.Focused():
			return m.updateFilter(msg)
		case m.showDetail:
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.filterInput.Focused() {
		m.filterInput, cmd = m.filterInput.Update(msg)
	}
	return m, cmd
}

func (m Application) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Filter):
		cmd := m.filterInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ClearFilter):
		m.filterInput.SetValue("")
		m.applyFilter()

	case key.Matches(msg, m.keys.Reload):
		if err := m.dir.ReloadAll(); err != nil {
			m.err = err
		} else {
			m.err = nil
		}
		m.afterProjectionChange()

	case key.Matches(msg, m.keys.Choose):
		m.openDetail()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		// cursor and paging keys
		before := m.list.Index()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.snapToItem(m.list.Index() - before)
		return m, cmd
	}
	return m, nil
}

func (m Application) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancelFilter):
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.applyFilter()
		return m, nil

	case key.Matches(msg, m.keys.acceptFilter):
		m.filterInput.Blur()
		return m, nil
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m Application) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ClearFilter), key.Matches(msg, m.keys.Choose):
		m.showDetail = false
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Application) applyFilter() {
	m.total = m.dir.ApplyFilter(m.filterInput.Value())
	m.list.SetItems(rows(m.dir.Controller()))
	m.selectFirstItem()
}

// afterProjectionChange keeps the selection on an item after the projection
// was rebuilt underneath it.
func (m *Application) afterProjectionChange() {
	m.total = m.dir.Controller().Total()
	m.list.SetItems(rows(m.dir.Controller()))
	if !m.selectable(m.list.Index()) {
		m.selectFirstItem()
	}
}

func (m *Application) selectable(i int) bool {
	items := m.list.Items()
	if i < 0 || i >= len(items) {
		return false
	}
	r, ok := items[i].(row)
	return ok && r.selectable()
}

func (m *Application) selectFirstItem() {
	for i := range m.list.Items() {
		if m.selectable(i) {
			m.list.Select(i)
			return
		}
	}
	m.list.Select(0)
}

// snapToItem moves the selection off a header or placeholder row, first in
// the direction the cursor was moving and then back. At either end of the
// list the selection returns to the nearest item.
func (m *Application) snapToItem(delta int) {
	i := m.list.Index()
	if m.selectable(i) {
		return
	}
	dirs := []int{1, -1}
	if delta < 0 {
		dirs = []int{-1, 1}
	}
	for _, d := range dirs {
		for j := i + d; j >= 0 && j < len(m.list.Items()); j += d {
			if m.selectable(j) {
				m.list.Select(j)
				return
			}
		}
	}
}

// Selected returns the item under the cursor. It is nil when the list has
// no items, including when the cursor went stale after a reload.
func (m Application) Selected() v1.Item {
	if !m.selectable(m.list.Index()) {
		return nil
	}
	r := m.list.Items()[m.list.Index()].(row)
	it, _ := r.entry.Item.(v1.Item)
	return it
}

func (m *Application) openDetail() {
	it := m.Selected()
	if it == nil {
		return
	}
	out, err := glamour.Render(it.AsMarkdown(), m.GlamourStyle)
	if err != nil {
		log.Printf("unable to render %s: %v", it.Identifier(), err)
		out = it.AsMarkdown()
	}
	m.detail.SetContent(out)
	m.detail.GotoTop()
	m.showDetail = true
}

func (m Application) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	b := strings.Builder{}
	b.WriteString(m.filterInput.View())
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteString("\n")

	if m.showDetail {
		b.WriteString(m.detail.View())
	} else {
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return ui.AppStyle.Render(b.String())
}

func (m Application) statusView() string {
	c := m.dir.Controller()
	switch {
	case m.err != nil:
		return ui.ErrorStyle.Render(m.err.Error())
	case c.Filtered() && m.total == 0:
		return ui.NoResultsStyle.Render(fmt.Sprintf("No results for %q", c.Query()))
	case c.Filtered():
		return ui.StatusStyle.Render(fmt.Sprintf("%d matches", m.total))
	}
	return ui.StatusStyle.Render(fmt.Sprintf("%d items", m.total))
}
