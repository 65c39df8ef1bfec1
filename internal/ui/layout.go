package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/shift-handover/internal/theme"
)

// Layout manages the terminal frame: header with section tabs, content
// area and status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// fill pads rendered to the full width with style's background.
func (l Layout) fill(style lipgloss.Style, parts ...string) string {
	used := 0
	for _, p := range parts {
		used += lipgloss.Width(p)
	}
	gap := l.Width - used
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
	if len(parts) == 0 {
		return filler
	}
	out := append([]string{}, parts[:len(parts)-1]...)
	out = append(out, filler, parts[len(parts)-1])
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// RenderHeader renders the title, the numbered section tabs and a status
// text aligned right.
func (l Layout) RenderHeader(title string, sections []string, active int, status string) string {
	var tabs []string
	for i, name := range sections {
		label := " " + string(rune('1'+i)) + " " + name + " "
		style := theme.HeaderStyle.Bold(false)
		if i == active {
			style = theme.HeaderStyle.Underline(true)
		}
		tabs = append(tabs, style.Render(label))
	}

	titleRendered := theme.HeaderStyle.Render(title)
	tabsRendered := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	statusRendered := theme.HeaderStyle.Align(lipgloss.Right).Render(status)

	left := lipgloss.JoinHorizontal(lipgloss.Top, titleRendered, tabsRendered)
	return l.fill(theme.HeaderStyle, left, statusRendered)
}

// RenderStatusBar renders the bottom status bar. A non-empty message
// replaces the key hints.
func (l Layout) RenderStatusBar(hints, message string) string {
	text := hints
	if strings.TrimSpace(message) != "" {
		text = message
	}
	rendered := theme.StatusBarStyle.Render(text)
	return l.fill(theme.StatusBarStyle, rendered, "")
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// Overlay centers a modal in the content area.
func (l Layout) Overlay(modal string) string {
	return lipgloss.Place(
		l.Width, l.ContentHeight(),
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}
