package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// SectionTitleStyle heads a block inside a section, e.g. "今日の予定".
var SectionTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// TabStyle renders an inactive department tab.
var TabStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(ColorGray)

// ActiveTabStyle renders the selected department tab.
var ActiveTabStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true).
	Underline(true)

// ModalStyle frames forms, confirmations and notices.
var ModalStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBlue)

// ErrorModalStyle frames blocking error notices.
var ErrorModalStyle = ModalStyle.
	BorderForeground(ColorRed)

// ErrorStyle colors inline error text.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// MutedStyle is used for out-of-month calendar days and empty states.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// Hex returns a lipgloss color for a "#RRGGBB" value stored in the
// reference data, or gray when the value is empty.
func Hex(hex string) lipgloss.TerminalColor {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return ColorGray
	}
	return lipgloss.Color(hex)
}

// Badge renders text as a colored label, as used for departments,
// priorities and statuses.
func Badge(hex, text string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Hex(hex)).
		Render(text)
}

// Dot renders a colored bullet, used for calendar markers.
func Dot(hex string) string {
	return lipgloss.NewStyle().Foreground(Hex(hex)).Render("●")
}

// Colored renders text in the given foreground color.
func Colored(hex, text string) string {
	return lipgloss.NewStyle().Foreground(Hex(hex)).Render(text)
}
