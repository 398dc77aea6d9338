package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/leddt/bwtui/pkg/model"
	"github.com/leddt/bwtui/pkg/vault"
)

var tabLabels = []struct {
	label  string
	filter model.ItemType
}{
	{"All", 0},
	{"Logins", model.TypeLogin},
	{"Notes", model.TypeSecureNote},
	{"Cards", model.TypeCard},
	{"Identities", model.TypeIdentity},
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.state.Mode.Kind() {
	case vault.ModeFatalError:
		body = m.renderFatal()
	case vault.ModePasswordPrompt:
		body = m.renderPasswordPrompt()
	case vault.ModeSaveTokenPrompt:
		body = m.renderSavePrompt()
	default:
		body = m.renderMain()
	}

	footer := m.renderFooter()

	// Clamp to the terminal height so the tab bar never scrolls off the top.
	finalStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height)

	return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
}

func (m Model) renderMain() string {
	tabs := m.renderTabs()
	search := m.renderSearchBar()

	bodyHeight := m.height - 3
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var panels string
	if m.detailsVisible() && m.width >= SplitViewThreshold {
		list := m.renderListPanel(m.listRect.w, bodyHeight)
		details := m.renderDetailsPanel(bodyHeight)
		panels = lipgloss.JoinHorizontal(lipgloss.Top, list, details)
	} else if m.detailsVisible() {
		panels = m.renderDetailsPanel(bodyHeight)
	} else {
		list := m.renderListPanel(m.width-4, bodyHeight)
		panels = list
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabs, search, panels)
}

func (m Model) renderTabs() string {
	t := m.theme
	active := t.Renderer.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)
	inactive := t.Renderer.NewStyle().
		Foreground(t.Muted).
		Padding(0, 1)

	parts := make([]string, 0, len(tabLabels))
	for _, tab := range tabLabels {
		if tab.filter == m.state.Items.TypeFilter() {
			parts = append(parts, active.Render(tab.label))
		} else {
			parts = append(parts, inactive.Render(tab.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderSearchBar() string {
	return " " + m.search.View()
}

func (m Model) renderListPanel(innerWidth, outerHeight int) string {
	t := m.theme
	m.scrollList()

	visible := m.listRect.h
	if visible < 1 {
		visible = outerHeight - 2
	}

	items := m.state.Items
	rows := make([]string, 0, visible)
	for i := m.listOffset; i < items.Len() && len(rows) < visible; i++ {
		rows = append(rows, m.renderListRow(items.At(i), i == items.SelectedIndex(), innerWidth))
	}
	if items.Len() == 0 {
		empty := "No items"
		if !items.InitialLoadComplete() {
			empty = "Loading vault..."
		} else if items.Query() != "" {
			empty = "No matches for \"" + items.Query() + "\""
		}
		rows = append(rows, t.Renderer.NewStyle().Foreground(t.Muted).Render(empty))
	}

	content := strings.Join(rows, "\n")

	style := t.Panel
	if !m.detailsVisible() {
		style = t.FocusedPanel
	}
	return style.
		Width(innerWidth + 2).
		Height(outerHeight - 2).
		MaxHeight(outerHeight).
		Render(content)
}

func (m Model) renderListRow(item *model.VaultItem, selected bool, width int) string {
	t := m.theme

	icon, color := t.TypeIcon(item.Type)
	star := "  "
	if item.Favorite {
		star = t.Renderer.NewStyle().Foreground(t.Favorite).Render("★ ")
	}

	sub := item.Username()
	if sub == "" {
		sub = item.Domain()
	}

	name := item.Name
	line := fmt.Sprintf("%s %s%s", icon, star, name)
	if sub != "" {
		line += t.Renderer.NewStyle().Foreground(t.Subtext).Render("  " + sub)
	}
	line = truncate.StringWithTail(line, uint(width), "…")

	if selected {
		return t.Selected.Width(width).Render(line)
	}
	return t.Renderer.NewStyle().Foreground(color).PaddingLeft(2).Render(line)
}

func (m Model) renderDetailsPanel(outerHeight int) string {
	t := m.theme
	return t.FocusedPanel.
		Width(m.detailsRect.w + 2).
		Height(outerHeight - 2).
		MaxHeight(outerHeight).
		Render(m.viewport.View())
}

func (m Model) renderFooter() string {
	t := m.theme

	if spin := m.state.Sync.Spinner(); spin != "" {
		left := t.Renderer.NewStyle().Foreground(t.Info).Render(spin + " syncing")
		return m.footerLine(left)
	}

	if msg := m.state.Status(); msg != nil {
		styled := t.Renderer.NewStyle().
			Foreground(m.theme.LevelColor(msg.Level)).
			Bold(true).
			Render(msg.Text)
		return m.footerLine(styled)
	}

	items := m.state.Items
	counts := fmt.Sprintf("%d/%d items", items.Len(), items.TotalLen())
	hints := "↑/↓ navigate · tab types · enter details · ^U/^P/^T copy · ^R sync · ^C quit"
	left := t.Renderer.NewStyle().Foreground(t.Muted).Render(counts + "  " + hints)
	return m.footerLine(left)
}

func (m Model) footerLine(content string) string {
	return m.theme.Renderer.NewStyle().
		Width(m.width).
		MaxHeight(1).
		Render(truncate.StringWithTail(content, uint(m.width), "…"))
}

func (m Model) renderPasswordPrompt() string {
	t := m.theme

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Align(lipgloss.Center)

	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	errStyle := t.Renderer.NewStyle().Foreground(t.Error)
	keyStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)

	masked := strings.Repeat("•", m.state.Mode.PasswordLen())
	if masked == "" {
		masked = " "
	}

	content := titleStyle.Render("Vault is locked") + "\n\n" +
		t.Base.Render("Master password: ") + t.Base.Render(masked) + "\n"
	if errText := m.state.Mode.UnlockError(); errText != "" {
		content += "\n" + errStyle.Render(errText) + "\n"
	}
	content += "\n" + keyStyle.Render("Enter") + t.Base.Render(" unlock   ") +
		keyStyle.Render("Esc") + t.Base.Render(" quit")

	return m.centered(boxStyle.Render(content))
}

func (m Model) renderSavePrompt() string {
	t := m.theme

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Success).
		Padding(1, 3).
		Align(lipgloss.Center)

	titleStyle := t.Renderer.NewStyle().Foreground(t.Success).Bold(true)
	keyStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)

	content := titleStyle.Render("Vault unlocked") + "\n\n" +
		t.Base.Render("Save the session token for future runs?") + "\n\n" +
		keyStyle.Render("Y") + t.Base.Render(" save   ") +
		keyStyle.Render("N") + t.Base.Render(" skip")

	return m.centered(boxStyle.Render(content))
}

func (m Model) renderFatal() string {
	t := m.theme

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error).
		Padding(1, 3).
		Align(lipgloss.Center)

	titleStyle := t.Renderer.NewStyle().Foreground(t.Error).Bold(true)

	content := titleStyle.Render("Cannot continue") + "\n\n" +
		t.Base.Render(m.state.Mode.FatalMessage()) + "\n\n" +
		t.Renderer.NewStyle().Foreground(t.Muted).Render("Press any key to exit")

	return m.centered(boxStyle.Render(content))
}

func (m Model) centered(box string) string {
	return lipgloss.Place(
		m.width,
		m.height-1,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
