package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/levelsim/internal/config"
	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/sim"
	"github.com/vovakirdan/levelsim/internal/storage"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

func testSession() Session {
	lvl := &levels.Level{
		ID:     "yard",
		Number: 1,
		Name:   "Yard",
		Grid:   tilemap.MustParse("....", "===="),
		Start:  tilemap.C(0, 0),
		Nest:   tilemap.C(3, 0),
	}
	return Session{
		Results: []sim.LevelResult{{
			Level: lvl,
			Animals: []sim.AnimalResult{
				{Animal: physics.Animal{ID: "bunny", Name: "Bunny"}, Nest: true, FunScore: 60},
				{Animal: physics.Animal{ID: "turtle", Name: "Turtle"}, FunScore: 30, Issues: []string{sim.IssueNest}},
			},
			Rules: config.DefaultRulebook(),
		}},
		Engine: physics.NewEngine(physics.DefaultConstants()),
	}
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestListView(t *testing.T) {
	m := NewModel(testSession(), 100, 40)
	out := m.View()

	assert.Contains(t, out, "LEVELS")
	assert.Contains(t, out, "Level 1: Yard")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "1/2")
}

func TestOpenAndCloseReport(t *testing.T) {
	m := NewModel(testSession(), 120, 80)

	m = press(t, m, enter)
	out := m.View()
	assert.Contains(t, out, "LEVEL FEASIBILITY + FUN SIMULATOR")
	assert.Contains(t, out, "CANNOT REACH NEST")

	m = press(t, m, esc)
	assert.Contains(t, m.View(), "LEVELS")
}

func TestQuit(t *testing.T) {
	m := NewModel(testSession(), 100, 40)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestRecordWithoutStore(t *testing.T) {
	m := NewModel(testSession(), 100, 40)
	m = press(t, m, runes("s"))
	assert.Equal(t, "history database not available", m.Status())
}

func TestRecordSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	s := testSession()
	s.Store = store
	m := NewModel(s, 100, 40)

	m = press(t, m, runes("s"))
	assert.Contains(t, m.Status(), "recorded run #1 for yard")

	runs, err := store.RecentRuns("yard", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Passed)
	assert.Len(t, runs[0].Animals, 2)
}

func TestResize(t *testing.T) {
	m := NewModel(testSession(), 80, 24)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	nm := next.(Model)
	assert.Equal(t, 120, nm.width)
	assert.Equal(t, 50-chromeHeight, nm.viewport.Height)
}
