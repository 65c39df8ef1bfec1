// Package notice provides the blocking modals: error notices and
// yes/no confirmations.
package notice

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/shift-handover/internal/theme"
)

// DismissedMsg is sent when an error notice is acknowledged.
type DismissedMsg struct{}

// ConfirmedMsg is sent when the user accepts a confirmation. Action is
// the value given to Confirm.
type ConfirmedMsg struct {
	Action any
}

// CanceledMsg is sent when the user rejects a confirmation.
type CanceledMsg struct{}

type kind int

const (
	kindNone kind = iota
	kindError
	kindInfo
	kindConfirm
)

var (
	yesKey     = key.NewBinding(key.WithKeys("y", "Y"))
	noKey      = key.NewBinding(key.WithKeys("n", "N", "esc"))
	dismissKey = key.NewBinding(key.WithKeys("enter", "esc", " "))
)

// Model is a single modal. Only one is shown at a time.
type Model struct {
	kind    kind
	title   string
	message string
	action  any
	width   int
}

func New(width int) Model {
	return Model{width: width}
}

// Error shows a blocking error notice.
func (m *Model) Error(title string, err error) {
	m.kind = kindError
	m.title = title
	m.message = err.Error()
	m.action = nil
}

// Info shows a message that must be acknowledged, e.g. a signed URL.
func (m *Model) Info(title, message string) {
	m.kind = kindInfo
	m.title = title
	m.message = message
	m.action = nil
}

// Confirm asks a yes/no question and carries action back on yes.
func (m *Model) Confirm(question string, action any) {
	m.kind = kindConfirm
	m.title = "確認"
	m.message = question
	m.action = action
}

// Active reports whether a modal is shown.
func (m Model) Active() bool { return m.kind != kindNone }

func (m *Model) close() { *m = Model{width: m.width} }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.kind == kindNone {
		return m, nil
	}

	switch m.kind {
	case kindConfirm:
		switch {
		case key.Matches(km, yesKey):
			action := m.action
			m.close()
			return m, func() tea.Msg { return ConfirmedMsg{Action: action} }
		case key.Matches(km, noKey):
			m.close()
			return m, func() tea.Msg { return CanceledMsg{} }
		}
	default:
		if key.Matches(km, dismissKey) {
			m.close()
			return m, func() tea.Msg { return DismissedMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.kind == kindNone {
		return ""
	}

	style := theme.ModalStyle
	hint := "enter: 閉じる"
	title := theme.SectionTitleStyle.Render(m.title)
	switch m.kind {
	case kindError:
		style = theme.ErrorModalStyle
		title = theme.ErrorStyle.Render(m.title)
	case kindConfirm:
		hint = "y: はい   n: いいえ"
	}

	w := m.width / 2
	if w < 40 {
		w = 40
	}
	body := lipgloss.NewStyle().Width(w).Render(m.message)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", body, "", theme.HelpStyle.Render(hint)))
}

// SetSize updates the modal width.
func (m *Model) SetSize(width int) { m.width = width }
