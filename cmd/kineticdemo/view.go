package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	pinnedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	overscrollStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Faint(true)
)

// View renders the collapsing header and the list at their current scroll
// offsets.
func (m model) View() string {
	if m.quitting {
		return "bye\n"
	}
	if m.height == 0 {
		return "measuring terminal..."
	}

	var b strings.Builder

	// The header shrinks row by row as the outer position collapses; the
	// last row stays pinned.
	collapsed := int(math.Round(m.outer.Pixels() / rowHeight))
	visibleHeader := headerRows - collapsed
	if visibleHeader < 1 {
		visibleHeader = 1
	}
	for i := 0; i < visibleHeader-1; i++ {
		b.WriteString(headerStyle.Width(m.width).Render(
			fmt.Sprintf(" kinetic demo · header row %d", i+1)))
		b.WriteByte('\n')
	}
	b.WriteString(pinnedStyle.Width(m.width).Render(" ── pinned header ──"))
	b.WriteByte('\n')

	// List rows, offset by the inner position. An out-of-range offset
	// (bouncing physics) renders as blank slack above or below.
	listHeight := m.height - chromeRows - visibleHeader
	if listHeight < 1 {
		listHeight = 1
	}
	offset := m.inner.Pixels() / rowHeight
	first := int(math.Floor(offset))
	for line := 0; line < listHeight; line++ {
		row := first + line
		switch {
		case row < 0 || row >= listRows:
			b.WriteString(overscrollStyle.Render(" ~"))
		default:
			b.WriteString(rowStyle.Render(fmt.Sprintf("  item %03d", row+1)))
		}
		b.WriteByte('\n')
	}

	b.WriteString(statusStyle.Width(m.width).Render(m.statusLine()))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(" j/k drag · J/K fling · g/G ends · a animate · b physics · q quit"))
	return b.String()
}
