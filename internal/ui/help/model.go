package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/shift-handover/internal/keys"
	"github.com/nhle/shift-handover/internal/theme"
)

// Model is the help overlay. It has no state of its own beyond its size.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// View renders the help overlay.
func (m Model) View() string {
	title := theme.SectionTitleStyle.Render("キー操作 / Keyboard shortcuts")

	m.help.Width = m.width - 8
	helpText := m.help.View(m.keys)

	note := theme.HelpStyle.Render("Forms: tab/shift+tab move between fields, enter submits, esc cancels.")

	content := lipgloss.JoinVertical(lipgloss.Left, title, helpText, "", note)

	return theme.ModalStyle.
		Width(m.width - 8).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 8
}
