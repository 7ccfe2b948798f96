// Package tui provides the interactive level browser, both for a local
// terminal and over SSH via Wish.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/report"
	"github.com/vovakirdan/levelsim/internal/sim"
	"github.com/vovakirdan/levelsim/internal/storage"
)

// Browser layout constants
const (
	chromeHeight = 6 // title, blank lines and help bar
	minHeight    = 5
)

// Session is everything the browser shows: analyzed levels plus what is
// needed to render and record them.
type Session struct {
	Results []sim.LevelResult
	Engine  *physics.Engine
	Store   *storage.Store // optional; recording is disabled without it
	Strict  bool
	Color   bool
}

type view int

const (
	viewList view = iota
	viewReport
)

// Model is the Bubble Tea model for the level browser.
type Model struct {
	session  Session
	keys     KeyMap
	help     help.Model
	table    table.Model
	viewport viewport.Model
	view     view
	current  int // index of the open report
	status   string
	width    int
	height   int
	quitting bool
}

// NewModel creates a browser over the session's results.
func NewModel(s Session, width, height int) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		session:  s,
		keys:     DefaultKeyMap(),
		help:     h,
		width:    width,
		height:   height,
		viewport: viewport.New(width, bodyHeight(height)),
	}
	m.table = m.createTable()
	return m
}

func bodyHeight(h int) int {
	return max(h-chromeHeight, minHeight)
}

func (m Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 22},
		{Title: "Verdict", Width: 8},
		{Title: "Animals OK", Width: 10},
		{Title: "Issues", Width: 6},
		{Title: "Avg fun", Width: 7},
		{Title: "Runs", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(bodyHeight(m.height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m Model) rows() []table.Row {
	var stats map[string]*storage.LevelStats
	if m.session.Store != nil {
		//nolint:errcheck // Run counts are informational
		stats, _ = m.session.Store.AllLevelStats()
	}

	rows := make([]table.Row, len(m.session.Results))
	for i, res := range m.session.Results {
		passed := 0
		for _, a := range res.Animals {
			if a.Passed() {
				passed++
			}
		}
		verdict := "PASS"
		if !res.Passed(m.session.Strict) {
			verdict = "FAIL"
		}
		runs := "-"
		if st, ok := stats[res.Level.ID]; ok {
			runs = strconv.Itoa(st.RunsCount)
		}
		rows[i] = table.Row{
			res.Level.Title(),
			verdict,
			fmt.Sprintf("%d/%d", passed, len(res.Animals)),
			strconv.Itoa(res.IssueCount()),
			fmt.Sprintf("%.1f", res.AvgFun()),
			runs,
		}
	}
	return rows
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(bodyHeight(msg.Height))
		m.viewport.Width = msg.Width
		m.viewport.Height = bodyHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Record):
			m.record()
			return m, nil
		}

		if m.view == viewReport {
			if key.Matches(msg, m.keys.Back) {
				m.view = viewList
				m.status = ""
				return m, nil
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if key.Matches(msg, m.keys.Open) && len(m.session.Results) > 0 {
			m.open(m.table.Cursor())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// open shows the report for result i.
func (m *Model) open(i int) {
	m.current = i
	m.view = viewReport
	m.status = ""
	var sb strings.Builder
	p := report.NewPrinter(&sb, m.session.Engine, m.session.Color)
	p.SetStrict(m.session.Strict)
	p.Level(m.session.Results[i])
	m.viewport.SetContent(sb.String())
	m.viewport.GotoTop()
}

// record stores the selected level's result in the history database.
func (m *Model) record() {
	if m.session.Store == nil {
		m.status = "history database not available"
		return
	}
	if len(m.session.Results) == 0 {
		return
	}
	i := m.table.Cursor()
	if m.view == viewReport {
		i = m.current
	}
	res := m.session.Results[i]
	id, err := m.session.Store.SaveRun(storage.RunFromResult(res, m.session.Strict))
	if err != nil {
		m.status = fmt.Sprintf("record failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("recorded run #%d for %s", id, res.Level.ID)
	m.table.SetRows(m.rows())
}

// Status returns the last status line shown under the body.
func (m Model) Status() string {
	return m.status
}

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var b strings.Builder
	switch m.view {
	case viewReport:
		b.WriteString(titleStyle.Render(m.session.Results[m.current].Level.Title()))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
	default:
		b.WriteString(titleStyle.Render("LEVELS"))
		b.WriteString("\n\n")
		if len(m.session.Results) == 0 {
			b.WriteString(helpStyle.Render("No levels found."))
		} else {
			b.WriteString(m.table.View())
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the browser in the local terminal.
func Run(s Session, width, height int) error {
	p := tea.NewProgram(
		NewModel(s, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
