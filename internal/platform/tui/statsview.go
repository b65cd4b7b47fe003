package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LaMitaOne/glint/internal/registry"
	"github.com/LaMitaOne/glint/internal/storage"
)

// maxRuns caps how many records the browser loads per view.
const maxRuns = 100

// StatsKeyMap defines the key bindings for the stats browser.
type StatsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// statsFilter is one view of the run table: all recent runs, or the
// best runs of a single effect.
type statsFilter struct {
	effectID string // empty means all effects, by recency
	title    string
}

// StatsModel is the Bubble Tea model for the run stats browser.
type StatsModel struct {
	filters      []statsFilter
	filterCursor int
	store        *storage.Store
	runs         []storage.RunRecord
	table        table.Model
	help         help.Model
	keys         StatsKeyMap
	width        int
	height       int
	quitting     bool
	goingBack    bool
}

// NewStatsModel creates a new stats browser model.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	filters := []statsFilter{{effectID: "", title: "Recent"}}
	for _, e := range registry.List() {
		filters = append(filters, statsFilter{effectID: e.ID, title: e.Title + " (top)"})
	}

	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		filters: filters,
		store:   store,
		keys:    DefaultStatsKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates the run table with fixed columns.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Effect", Width: 12},
		{Title: "Mode", Width: 9},
		{Title: "Avg FPS", Width: 8},
		{Title: "Frames", Width: 8},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 14},
	}

	height := m.height - 7 // Leave room for title, tabs, help, margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// loadRuns loads records for the current filter.
func (m *StatsModel) loadRuns() {
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	var (
		runs []storage.RunRecord
		err  error
	)
	if f := m.filters[m.filterCursor]; f.effectID == "" {
		runs, err = m.store.RecentRuns(maxRuns)
	} else {
		runs, err = m.store.TopRuns(f.effectID, maxRuns)
	}
	if err != nil {
		m.runs = nil
	} else {
		m.runs = runs
	}
	m.updateTableRows()
}

// updateTableRows refreshes the table from the loaded records.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.EffectID,
			r.Mode,
			fmt.Sprintf("%.1f", r.AvgFPS),
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%.1fs", r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats browser.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.filterCursor = (m.filterCursor + 1) % len(m.filters)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filterCursor--
			if m.filterCursor < 0 {
				m.filterCursor = len(m.filters) - 1
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats browser.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("RUN STATS - %s", m.filters[m.filterCursor].title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	// Filter tabs
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.filterCursor {
			tabs[i] = activeTabStyle.Render(f.title)
		} else {
			tabs[i] = tabStyle.Render(" " + f.title + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	// Table or empty message
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("No runs recorded yet.\nRun an effect to gather stats!"))
	} else {
		b.WriteString(m.table.View())
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats browser.
// Returns true if the user wants to go back to the menu, false on quit.
func RunStats(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewStatsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
