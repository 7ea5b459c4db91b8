package app

import (
	"os"
	"testing"

	"github.com/byxorna/sieve/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApplication(t *testing.T) Application {
	t.Helper()
	d := newTestDirectory(t)
	return *newApplication(testConfig(t.TempDir()), d)
}

func send(m Application, msgs ...tea.Msg) Application {
	var tm tea.Model = m
	for _, msg := range msgs {
		tm, _ = tm.Update(msg)
	}
	return tm.(Application)
}

// typeQuery focuses the filter and types q one rune at a time.
func typeQuery(m Application, q string) Application {
	m = send(m, runes("/"))
	for _, r := range q {
		m = send(m, runes(string(r)))
	}
	return m
}

func TestCursorSkipsHeaders(t *testing.T) {
	m := newTestApplication(t)

	// Invites header, then its only room
	assert.Equal(t, 1, m.list.Index())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "Secret plans", m.Selected().Title())

	m = send(m, keyDown)
	assert.Equal(t, 3, m.list.Index())
	assert.Equal(t, "Matrix HQ", m.Selected().Title())

	m = send(m, keyDown, keyDown)
	assert.Equal(t, 6, m.list.Index())
	assert.Equal(t, "Bob", m.Selected().Title())

	m = send(m, keyUp)
	assert.Equal(t, "Ops", m.Selected().Title())

	m = send(m, keyUp, keyUp, keyUp, keyUp)
	assert.Equal(t, 1, m.list.Index(), "cursor stays on the first item")
}

func TestFilterWhileTyping(t *testing.T) {
	m := newTestApplication(t)

	m = typeQuery(m, "carl")
	assert.True(t, m.filterInput.Focused())
	assert.Equal(t, 1, m.total)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "Carl", m.Selected().Title())
	assert.Contains(t, m.View(), "1 matches")

	m = send(m, keyEnter)
	assert.False(t, m.filterInput.Focused())
	assert.Equal(t, "carl", m.dir.Controller().Query(), "accepting keeps the query")

	m = send(m, keyEsc)
	assert.Equal(t, m.dir.Controller().Total(), m.total)
	assert.False(t, m.dir.Controller().Filtered())
}

func TestCancelFilter(t *testing.T) {
	m := newTestApplication(t)
	unfiltered := m.total

	m = typeQuery(m, "zzz")
	assert.Equal(t, 0, m.total)
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), `No results for "zzz"`)

	m = send(m, keyEsc)
	assert.False(t, m.filterInput.Focused())
	assert.Equal(t, "", m.filterInput.Value())
	assert.Equal(t, unfiltered, m.total)
}

func TestDetail(t *testing.T) {
	m := newTestApplication(t)

	m = send(m, keyEnter)
	require.True(t, m.showDetail)
	assert.Contains(t, m.detail.View(), "Secret plans")

	m = send(m, keyEsc)
	assert.False(t, m.showDetail)

	// nothing to open
	m = send(typeQuery(m, "zzz"), keyEnter, keyEnter)
	assert.False(t, m.showDetail)
}

func TestFamilyChangedMovesStaleCursor(t *testing.T) {
	m := newTestApplication(t)
	m = send(typeQuery(m, "ops"), keyEnter)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "Ops", m.Selected().Title())

	store := m.dir.Store().StoragePath(v1.FamilyRooms)
	require.NoError(t, os.WriteFile(store, []byte("items: []\n"), 0600))

	m = send(m, familyChangedMsg(v1.FamilyRooms))
	assert.NoError(t, m.err)
	assert.Equal(t, 0, m.total)
	assert.Nil(t, m.Selected())

	require.NoError(t, os.WriteFile(store, []byte("items: [\n"), 0600))
	m = send(m, familyChangedMsg(v1.FamilyRooms))
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "rooms.yaml")
}

func TestWindowSizeAndQuit(t *testing.T) {
	m := newTestApplication(t)

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 96, m.width)
	assert.Equal(t, 38, m.height)

	var tm tea.Model = m
	tm, cmd := tm.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Bye!\n", tm.View())
}

func TestPlaceholderRowsAreSkipped(t *testing.T) {
	m := typeQuery(newTestApplication(t), "carl")
	m = send(m, keyEnter)

	// Rooms header and placeholder, then the Contacts header
	assert.Equal(t, 3, m.list.Index())
	assert.Equal(t, "Carl", m.Selected().Title())
	assert.Contains(t, m.View(), "No matching rooms")

	m = send(m, keyUp)
	assert.Equal(t, 3, m.list.Index(), "nothing selectable above")

	m = send(m, keyDown)
	assert.Equal(t, 3, m.list.Index(), "nothing selectable below")
}

func TestJumpToEnds(t *testing.T) {
	m := newTestApplication(t)

	m = send(m, runes("G"))
	assert.Equal(t, len(m.list.Items())-1, m.list.Index())
	assert.Equal(t, "Alice", m.Selected().Title())

	m = send(m, runes("g"))
	assert.Equal(t, 1, m.list.Index(), "the first row is a header")
	assert.Equal(t, "Secret plans", m.Selected().Title())
}

func TestInitLeavesScreenToProgram(t *testing.T) {
	m := newTestApplication(t)
	m.UseAltScreen = true
	assert.Nil(t, m.Init())
}
