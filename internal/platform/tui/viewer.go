// Package tui provides the Bubble Tea integration for the glint
// platform: the effect viewer, the picker menu, the stats browser and
// the SSH server that serves all three remotely.
package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LaMitaOne/glint/internal/canvas"
	"github.com/LaMitaOne/glint/internal/engine"
	"github.com/LaMitaOne/glint/internal/registry"
	"github.com/LaMitaOne/glint/internal/storage"
)

// statusRows is how many terminal rows the viewer reserves below the
// canvas for the status bar and the help line.
const statusRows = 2

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	helpBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// termHost adapts the terminal to the engine's Host interface. The
// drawable area is the window minus the reserved rows, at two pixels
// per cell row.
type termHost struct {
	mu   sync.Mutex
	w, h int

	repaint   chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

func newTermHost(cols, rows int) *termHost {
	h := &termHost{
		repaint: make(chan struct{}, 1),
		closed:  make(chan struct{}),
	}
	h.setSize(cols, rows)
	return h
}

// setSize converts a terminal size in cells to pixel bounds.
func (h *termHost) setSize(cols, rows int) {
	w := cols
	ph := (rows - statusRows) * 2
	if w < 0 {
		w = 0
	}
	if ph < 0 {
		ph = 0
	}

	h.mu.Lock()
	h.w, h.h = w, ph
	h.mu.Unlock()
}

// Bounds implements engine.Host. It is polled from the worker goroutine.
func (h *termHost) Bounds() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w, h.h
}

// Invalidate implements engine.Host: a non-blocking nudge into the
// repaint channel. Requests during or after teardown are dropped.
func (h *termHost) Invalidate() {
	select {
	case <-h.closed:
	case h.repaint <- struct{}{}:
	default:
	}
}

// awaitRepaint blocks until the engine requests a paint and surfaces it
// as a message. Closing the host releases a pending wait so the command
// goroutine never leaks.
func (h *termHost) awaitRepaint() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-h.repaint:
			return repaintMsg{}
		case <-h.closed:
			return nil
		}
	}
}

func (h *termHost) close() {
	h.closeOnce.Do(func() { close(h.closed) })
}

// repaintMsg is delivered when the engine has published a new artifact.
type repaintMsg struct{}

// fpsSteps are the selectable frame-rate targets, lowest to highest.
var fpsSteps = []int{10, 15, 20, 30, 45, 60, 90, 120}

// nextFPS returns the step adjacent to current in the given direction
// (positive is faster). A current value between steps snaps to the next
// step in that direction; zero (default interval) counts as 60.
func nextFPS(current, dir int) int {
	if current <= 0 {
		current = 60
	}
	if dir > 0 {
		for _, s := range fpsSteps {
			if s > current {
				return s
			}
		}
		return fpsSteps[len(fpsSteps)-1]
	}
	for i := len(fpsSteps) - 1; i >= 0; i-- {
		if fpsSteps[i] < current {
			return fpsSteps[i]
		}
	}
	return fpsSteps[0]
}

// ViewerConfig holds the settings for one viewer session.
type ViewerConfig struct {
	// Cols and Rows size the canvas until the first WindowSizeMsg.
	Cols, Rows int

	// Engine options passed through to engine.New.
	Engine engine.Options

	// Store receives a run record on teardown; nil disables saving.
	Store *storage.Store

	// InSession makes Back return control to an enclosing menu instead
	// of quitting the program.
	InSession bool
}

// Viewer is the Bubble Tea model that runs one effect on screen.
type Viewer struct {
	effect registry.Effect
	eng    *engine.Engine
	host   *termHost
	store  *storage.Store
	keys   ViewerKeyMap
	help   help.Model

	cols, rows int
	paused     bool
	inSession  bool
	backToMenu bool
	quitting   bool
	saved      bool
}

// NewViewer creates a viewer model for the given effect.
func NewViewer(effect registry.Effect, cfg ViewerConfig) Viewer {
	host := newTermHost(cfg.Cols, cfg.Rows)
	eng := engine.New(host, effect, cfg.Engine)

	h := help.New()
	h.ShowAll = false

	return Viewer{
		effect:    effect,
		eng:       eng,
		host:      host,
		store:     cfg.Store,
		keys:      DefaultViewerKeyMap(),
		help:      h,
		cols:      cfg.Cols,
		rows:      cfg.Rows,
		inSession: cfg.InSession,
	}
}

// Init starts the engine and arms the repaint wait.
func (m Viewer) Init() tea.Cmd {
	m.eng.SetActive(true)
	return m.host.awaitRepaint()
}

// Update handles messages for the viewer.
func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height
		m.host.setSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case repaintMsg:
		// Re-arm; the paint itself happens in View.
		return m, m.host.awaitRepaint()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.inSession {
			m.backToMenu = true
			m.teardown()
			return m, nil
		}
		m.quitting = true
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		m.eng.SetActive(!m.paused)
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		m.eng.SetTargetFPS(nextFPS(m.eng.TargetFPS(), 1))
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		m.eng.SetTargetFPS(nextFPS(m.eng.TargetFPS(), -1))
		return m, nil
	}

	return m, nil
}

// teardown releases the engine and the host and records the run once.
// The engine close is bounded, so quitting never hangs on a stuck
// effect.
func (m *Viewer) teardown() {
	m.eng.Close()
	m.host.close()

	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	stats := m.eng.Stats()
	if stats.Frames == 0 {
		return
	}

	//nolint:errcheck // Best-effort save, teardown continues regardless
	m.store.SaveRun(storage.RunRecord{
		EffectID:  m.effect.ID(),
		Mode:      m.eng.Mode().String(),
		TargetFPS: m.eng.TargetFPS(),
		Frames:    int64(stats.Frames),
		Skipped:   int64(stats.Skipped),
		AvgFPS:    stats.AvgFPS,
		Duration:  stats.Wall.Seconds(),
	})
}

// View presents the latest artifact plus a status bar and help line.
func (m Viewer) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	w, h := m.host.Bounds()
	surface := canvas.NewSurface(w, h)

	// Present even without a surface: it clears the repaint-coalescing
	// flag so invalidations keep flowing while the window is too small.
	m.eng.Present(surface)

	if surface == nil {
		return centerText("terminal too small", m.cols)
	}

	frame := RenderImage(surface.Snapshot())
	return frame + "\n" + m.statusBar() + "\n" + helpBarStyle.Render(m.help.View(m.keys))
}

// statusBar summarizes the running engine in one line.
func (m Viewer) statusBar() string {
	stats := m.eng.Stats()

	state := "running"
	if m.paused {
		state = "paused"
	}

	target := "default"
	if fps := m.eng.TargetFPS(); fps > 0 {
		target = fmt.Sprintf("%d fps", fps)
	}

	line := fmt.Sprintf(" %s | %s | %s | target %s | avg %.1f fps | t=%.1fs ",
		m.effect.Title(), m.eng.Mode(), state, target, stats.AvgFPS, stats.Elapsed)

	return statusBarStyle.Render(line)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Viewer) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Viewer) BackToMenu() bool {
	return m.backToMenu
}

// RunViewer runs a standalone viewer program for the given effect.
func RunViewer(effect registry.Effect, cfg ViewerConfig) error {
	model := NewViewer(effect, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
