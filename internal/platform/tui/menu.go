package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LaMitaOne/glint/internal/registry"
)

// MenuItem represents a selectable effect in the menu.
type MenuItem struct {
	EffectID string
	Title    string
}

// MenuModel is the Bubble Tea model for the effect picker menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when the user picks an effect
	openStats bool      // True if the user pressed Tab for run stats
}

// NewMenuModel creates a new menu model from the effect registry.
func NewMenuModel(width, height int) MenuModel {
	effects := registry.List()
	items := make([]MenuItem, 0, len(effects))
	for _, e := range effects {
		items = append(items, MenuItem{
			EffectID: e.ID,
			Title:    e.Title,
		})
	}

	return MenuModel{
		items:     items,
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the viewer
		}

	case MenuActionStats:
		m.openStats = true
		return m, tea.Quit // Exit menu to show the stats browser
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	title := "  G L I N T  "
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	// Subtitle
	subtitle := "Select an effect"
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	// Effect list
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%s", cursor, item.Title)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Run  |  Tab: Stats  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if the user requested the stats browser.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// Size returns the current terminal size (may have been updated by
// resize while the menu was open).
func (m MenuModel) Size() (int, int) {
	return m.width, m.height
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	EffectID   string
	Width      int
	Height     int
	WantsStats bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(width, height int) (MenuResult, error) {
	model := NewMenuModel(width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	w, h := m.Size()
	result := MenuResult{
		Width:  w,
		Height: h,
	}

	if m.WantsStats() {
		result.WantsStats = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.EffectID = m.Selected().EffectID
	} else {
		result.Quit = true
	}

	return result, nil
}
