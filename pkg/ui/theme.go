package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leddt/bwtui/pkg/model"
	"github.com/leddt/bwtui/pkg/vault"
)

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Status levels
	Info    lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// Item types
	Login    lipgloss.AdaptiveColor
	Note     lipgloss.AdaptiveColor
	Card     lipgloss.AdaptiveColor
	Identity lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Favorite  lipgloss.AdaptiveColor

	// Styles
	Base         lipgloss.Style
	Selected     lipgloss.Style
	Header       lipgloss.Style
	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		// Dracula / Light Mode equivalent
		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Info:    lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		Success: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Warning: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Error:   lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red

		Login:    lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		Note:     lipgloss.AdaptiveColor{Light: "#808000", Dark: "#F1FA8C"}, // Yellow/olive
		Card:     lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Identity: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Favorite:  lipgloss.AdaptiveColor{Light: "#808000", Dark: "#F1FA8C"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.FocusedPanel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)

	return t
}

func (t Theme) LevelColor(level vault.MessageLevel) lipgloss.AdaptiveColor {
	switch level {
	case vault.LevelSuccess:
		return t.Success
	case vault.LevelWarning:
		return t.Warning
	case vault.LevelError:
		return t.Error
	default:
		return t.Info
	}
}

func (t Theme) TypeIcon(typ model.ItemType) (string, lipgloss.AdaptiveColor) {
	switch typ {
	case model.TypeLogin:
		return "🔑", t.Login
	case model.TypeSecureNote:
		return "📝", t.Note
	case model.TypeCard:
		return "💳", t.Card
	case model.TypeIdentity:
		return "🪪", t.Identity
	default:
		return "•", t.Subtext
	}
}
