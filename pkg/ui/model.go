package ui

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/leddt/bwtui/pkg/vault"
)

// View width threshold below which the details panel replaces the list
// instead of sitting beside it.
const SplitViewThreshold = 80

// tickInterval drives the render/drain loop: background results are applied,
// the spinner advances, and expired status messages are dropped.
const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// rect is a screen region used for mouse hit-testing.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Model is the main Bubble Tea model. All vault state lives in *vault.State
// and is mutated only from Update; background work goes through the
// orchestrator's channels and is drained on each tick.
type Model struct {
	ctx   context.Context
	state *vault.State
	orch  *vault.Orchestrator

	theme      Theme
	search     textinput.Model
	viewport   viewport.Model
	mdRenderer *glamour.TermRenderer

	showDetails bool
	listOffset  int

	ready  bool
	width  int
	height int

	// Interior content regions, recomputed on resize.
	listRect    rect
	detailsRect rect
}

// NewModel builds the UI around an initialized state and orchestrator.
func NewModel(ctx context.Context, state *vault.State, orch *vault.Orchestrator) Model {
	theme := DefaultTheme(lipgloss.NewRenderer(os.Stdout))

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "type to search"
	search.PromptStyle = theme.Renderer.NewStyle().Foreground(theme.Primary)
	search.Focus()

	return Model{
		ctx:    ctx,
		state:  state,
		orch:   orch,
		theme:  theme,
		search: search,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.orch.Tick(m.ctx, time.Time(msg), m.detailsVisible())
		m.scrollList()
		m.syncViewport(time.Time(msg))
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.syncViewport(time.Now())
	}

	return m, nil
}

// detailsVisible reports whether the details pane is on screen, which gates
// the automatic TOTP refresh.
func (m Model) detailsVisible() bool {
	return m.showDetails && m.state.Items.Selected() != nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.Mode.Kind() {
	case vault.ModeFatalError:
		// Terminal state; any key exits.
		return m, tea.Quit
	case vault.ModePasswordPrompt:
		return m.handlePasswordKey(msg)
	case vault.ModeSaveTokenPrompt:
		return m.handleSavePromptKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handlePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		// Cancelling the password prompt exits the application.
		return m, tea.Quit
	case tea.KeyEnter:
		m.orch.SubmitPassword(m.ctx)
		return m, nil
	case tea.KeyBackspace:
		m.state.Mode.DeletePasswordChar()
		return m, nil
	case tea.KeySpace:
		m.state.Mode.AppendPassword(' ')
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.state.Mode.AppendPassword(r)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSavePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "Y", "enter":
		m.orch.ResolveSaveToken(m.ctx, true)
	case "n", "N", "esc":
		m.orch.ResolveSaveToken(m.ctx, false)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		// First escape clears the query, second closes details, third quits.
		if m.state.Items.Query() != "" {
			m.search.SetValue("")
			m.state.SetQuery("")
			return m, nil
		}
		if m.showDetails {
			m.showDetails = false
			return m, nil
		}
		return m, tea.Quit

	case "up", "ctrl+k":
		m.state.SelectPrevious()
	case "down", "ctrl+j":
		m.state.SelectNext()
	case "pgup":
		m.state.PageUp(m.listRect.h)
	case "pgdown":
		m.state.PageDown(m.listRect.h)
	case "home":
		m.state.Home()
	case "end":
		m.state.End()

	case "tab":
		m.state.CycleNextTab()
	case "shift+tab":
		m.state.CyclePreviousTab()

	case "enter":
		if m.state.Items.Selected() != nil {
			m.showDetails = true
			m.layout()
		}
	case "ctrl+d":
		m.showDetails = !m.showDetails
		m.layout()

	case "ctrl+u":
		m.orch.CopyUsername()
	case "ctrl+p":
		m.orch.CopyPassword()
	case "ctrl+t":
		m.orch.CopyTOTP(m.ctx, now)
	case "ctrl+r":
		m.orch.Refresh(m.ctx)

	default:
		// Everything else edits the search query.
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != m.state.Items.Query() {
			m.state.SetQuery(m.search.Value())
		}
		return m, cmd
	}

	m.scrollList()
	m.syncViewport(now)
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.state.Mode.InputAllowed() {
		return m, nil
	}
	now := time.Now()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.detailsVisible() && m.detailsRect.contains(msg.X, msg.Y) {
			m.viewport.LineUp(3)
		} else {
			m.state.SelectPrevious()
			m.scrollList()
		}
		return m, nil

	case tea.MouseButtonWheelDown:
		if m.detailsVisible() && m.detailsRect.contains(msg.X, msg.Y) {
			m.viewport.LineDown(3)
		} else {
			m.state.SelectNext()
			m.scrollList()
		}
		return m, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		if m.detailsVisible() && m.detailsRect.contains(msg.X, msg.Y) {
			m.handleDetailsClick(msg, now)
			return m, nil
		}
		if m.listRect.contains(msg.X, msg.Y) {
			index := m.listOffset + (msg.Y - m.listRect.y)
			if index < m.state.Items.Len() {
				m.state.Select(index)
				m.showDetails = true
				m.layout()
				m.syncViewport(now)
			}
		}
	}

	return m, nil
}

func (m *Model) handleDetailsClick(msg tea.MouseMsg, now time.Time) {
	item := m.state.Items.Selected()
	if item == nil {
		return
	}

	contentRow := m.viewport.YOffset + (msg.Y - m.detailsRect.y)
	switch m.copyActionAt(item, contentRow, now) {
	case actionCopyUsername:
		m.orch.CopyUsername()
	case actionCopyPassword:
		m.orch.CopyPassword()
	case actionCopyTOTP:
		m.orch.CopyTOTP(m.ctx, now)
	case actionCopyNumber:
		m.orch.CopyCardNumber()
	case actionCopyCVV:
		m.orch.CopyCVV()
	}
}

// layout recomputes the panel regions. Rows: tab bar, search bar, body,
// footer. Each panel carries a rounded border plus one column of padding.
func (m *Model) layout() {
	bodyY := 2
	bodyHeight := m.height - 3
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	split := m.showDetails && m.width >= SplitViewThreshold

	if split {
		listOuter := m.width * 2 / 5
		if listOuter < 20 {
			listOuter = 20
		}
		detailOuter := m.width - listOuter

		m.listRect = rect{x: 2, y: bodyY + 1, w: listOuter - 4, h: bodyHeight - 2}
		m.detailsRect = rect{x: listOuter + 2, y: bodyY + 1, w: detailOuter - 4, h: bodyHeight - 2}
	} else if m.showDetails {
		// Narrow terminal: details panel takes over the body.
		m.listRect = rect{}
		m.detailsRect = rect{x: 2, y: bodyY + 1, w: m.width - 4, h: bodyHeight - 2}
	} else {
		m.listRect = rect{x: 2, y: bodyY + 1, w: m.width - 4, h: bodyHeight - 2}
		m.detailsRect = rect{}
	}

	if m.detailsRect.w > 0 {
		m.viewport = viewport.New(m.detailsRect.w, m.detailsRect.h)
		m.mdRenderer = newMarkdownRenderer(m.detailsRect.w)
	}

	m.search.Width = m.width - 6
}

// syncViewport rebuilds the details pane content for the current selection.
func (m *Model) syncViewport(now time.Time) {
	if !m.detailsVisible() || m.detailsRect.w == 0 {
		return
	}
	item := m.state.Items.Selected()
	lines := m.buildDetailLines(item, now)
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.text
	}
	m.viewport.SetContent(joinLines(texts))
}

// scrollList keeps the selection inside the visible window and returns the
// offset used for both rendering and click hit-testing.
func (m *Model) scrollList() int {
	visible := m.listRect.h
	if visible < 1 {
		visible = 1
	}
	sel := m.state.Items.SelectedIndex()
	if sel < 0 {
		m.listOffset = 0
		return 0
	}
	if sel < m.listOffset {
		m.listOffset = sel
	}
	if sel >= m.listOffset+visible {
		m.listOffset = sel - visible + 1
	}
	max := m.state.Items.Len() - visible
	if max < 0 {
		max = 0
	}
	if m.listOffset > max {
		m.listOffset = max
	}
	return m.listOffset
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
