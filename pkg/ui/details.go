package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/leddt/bwtui/pkg/model"
)

// Copy actions addressable from the details panel, by button row.
const (
	actionCopyUsername = "username"
	actionCopyPassword = "password"
	actionCopyTOTP     = "totp"
	actionCopyNumber   = "number"
	actionCopyCVV      = "cvv"
)

// detailLine is one rendered row of the details panel. A non-empty action
// marks the row as a clickable copy button.
type detailLine struct {
	text   string
	action string
}

// buildDetailLines lays out the details panel for the selected item. The
// same slice drives rendering and mouse hit-testing, so a click on row N
// always matches what row N shows.
func (m Model) buildDetailLines(item *model.VaultItem, now time.Time) []detailLine {
	t := m.theme
	labelStyle := t.Renderer.NewStyle().Foreground(t.Secondary).Bold(true)
	valueStyle := t.Base
	mutedStyle := t.Renderer.NewStyle().Foreground(t.Muted)
	buttonStyle := t.Renderer.NewStyle().Foreground(t.Primary)

	var lines []detailLine
	plain := func(text string) {
		lines = append(lines, detailLine{text: text})
	}
	field := func(label, value string) {
		plain(labelStyle.Render(label+": ") + valueStyle.Render(value))
	}
	button := func(label, action string) {
		lines = append(lines, detailLine{
			text:   "  " + buttonStyle.Render("[ Copy "+label+" ]"),
			action: action,
		})
	}

	icon, _ := t.TypeIcon(item.Type)
	name := item.Name
	if item.Favorite {
		name += " ★"
	}
	plain(t.Renderer.NewStyle().Bold(true).Render(icon + " " + name))
	plain("")

	switch item.Type {
	case model.TypeLogin:
		if item.Login != nil {
			if item.Login.Username != "" {
				field("Username", item.Login.Username)
				button("^U", actionCopyUsername)
				plain("")
			}
			if item.Login.Password != "" || item.Login.HasPassword {
				field("Password", "••••••••")
				button("^P", actionCopyPassword)
				plain("")
			}
			if item.HasTOTP() {
				field("TOTP", m.totpDisplay(item, now))
				button("^T", actionCopyTOTP)
				plain("")
			}
			for _, uri := range item.Login.URIs {
				if uri.URI != "" {
					field("URL", uri.URI)
				}
			}
			if len(item.Login.URIs) > 0 {
				plain("")
			}
		}
	case model.TypeCard:
		if item.Card != nil {
			c := item.Card
			if c.CardholderName != "" {
				field("Cardholder", c.CardholderName)
			}
			if c.Brand != "" {
				field("Brand", c.Brand)
			}
			if c.Number != "" || c.HasNumber {
				field("Number", maskCardNumber(c.Number))
				button("number", actionCopyNumber)
			}
			if c.ExpMonth != "" && c.ExpYear != "" {
				field("Expires", c.ExpMonth+"/"+c.ExpYear)
			}
			if c.Code != "" || c.HasCode {
				field("CVV", "•••")
				button("CVV", actionCopyCVV)
			}
			plain("")
		}
	case model.TypeIdentity:
		if item.Identity != nil {
			id := item.Identity
			fullName := strings.Join(nonEmpty(id.FirstName, id.MiddleName, id.LastName), " ")
			if fullName != "" {
				field("Name", fullName)
			}
			if id.Email != "" {
				field("Email", id.Email)
			}
			if id.Phone != "" {
				field("Phone", id.Phone)
			}
			if id.Address1 != "" {
				field("Address", id.Address1)
			}
			if id.PassportNumber != "" {
				field("Passport", id.PassportNumber)
			}
			plain("")
		}
	}

	for _, f := range item.Fields {
		if f.Name != "" {
			field(f.Name, f.Value)
		}
	}
	if len(item.Fields) > 0 {
		plain("")
	}

	if item.Notes != "" {
		plain(labelStyle.Render("Notes:"))
		for _, line := range m.renderNotes(item.Notes) {
			plain(line)
		}
	}

	if !m.state.Items.SecretsAvailable() {
		plain("")
		plain(mutedStyle.Render("Secrets not loaded yet (syncing...)"))
	}

	return lines
}

// totpDisplay formats the code cell: the live code with its countdown, a
// loading marker while a fetch is in flight, or a hint to request one.
func (m Model) totpDisplay(item *model.VaultItem, now time.Time) string {
	otp := &m.state.OTP
	if otp.Loading() {
		return "······"
	}
	if otp.BelongsTo(item.ID) && !otp.Expired(now) {
		if rem, ok := otp.Remaining(now); ok {
			return fmt.Sprintf("%s (%ds)", otp.Code(), rem)
		}
		return otp.Code()
	}
	return "•••••• (ctrl+t)"
}

// renderNotes runs the note body through glamour, falling back to the raw
// text when markdown rendering fails.
func (m Model) renderNotes(notes string) []string {
	if m.mdRenderer != nil {
		if out, err := m.mdRenderer.Render(notes); err == nil {
			return strings.Split(strings.TrimRight(out, "\n"), "\n")
		}
	}
	return strings.Split(notes, "\n")
}

// newMarkdownRenderer builds a glamour renderer wrapped to the details pane.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func maskCardNumber(number string) string {
	if number == "" {
		return "•••• ••••"
	}
	if len(number) <= 4 {
		return "•••• " + number
	}
	return "•••• " + number[len(number)-4:]
}

// copyActionAt resolves a click on a details-panel content row to the copy
// action rendered there, accounting for the viewport scroll offset.
func (m Model) copyActionAt(item *model.VaultItem, contentRow int, now time.Time) string {
	lines := m.buildDetailLines(item, now)
	if contentRow < 0 || contentRow >= len(lines) {
		return ""
	}
	return lines[contentRow].action
}
