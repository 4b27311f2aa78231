package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/standups/internal/standup"
)

// handleStandupsKey processes keyboard input for the standups list.
func (m Model) handleStandupsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	standups := m.list.Standups()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.list.AddStandup()
	case len(standups) == 0:
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(standups)-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = len(standups) - 1
	case key.Matches(msg, m.keys.Open):
		if m.selectedRow < len(standups) {
			m.meetingRow = 0
			m.list.Select(standups[m.selectedRow].ID)
		}
	}
	return m, nil
}

// renderStandups renders the standups list.
func (m Model) renderStandups() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	standups := m.list.Standups()

	if len(standups) == 0 {
		empty := styles.MutedText.Render("No standups yet. Press a to add one.")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	inner := m.width - 2
	start := visibleFrom(m.selectedRow, height-2)
	lines := make([]string, 0, len(standups)-start)
	for i, s := range standups[start:] {
		lines = append(lines, m.formatStandupRow(s, inner, start+i == m.selectedRow))
	}
	title := fmt.Sprintf("Standups (%d)", len(standups))
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

// formatStandupRow formats one row: "Title  6 attendees · 5 minutes · 2 meetings".
func (m Model) formatStandupRow(s standup.Standup, width int, selected bool) string {
	rowBg := m.theme.FocusBg
	if selected {
		rowBg = m.theme.SelectionBg
	}
	bg := NewBgStyle(rowBg)
	styles := m.theme.Styles()

	marker := "  "
	if selected {
		marker = "› "
	}
	summary := strings.Join([]string{
		plural(len(s.Attendees), "attendee", "attendees"),
		formatLength(s.Duration),
		plural(len(s.Meetings), "meeting", "meetings"),
	}, " · ")

	titleWidth := max(width-len(marker)-lipgloss.Width(summary)-6, 8)
	badge := m.theme.badgeStyle(s.Theme).Render(truncate(titleOrPlaceholder(s.Title), titleWidth))

	summaryStyle := styles.MutedText
	if selected {
		summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
	}
	content := bg.Render(marker, styles.AccentText) + badge + bg.Spaces(2) + bg.Render(summary, summaryStyle)
	return lipgloss.NewStyle().Background(lipgloss.Color(rowBg)).Width(width).Render(content)
}

// visibleFrom returns the first row to draw so that selected stays in a
// window of rows lines.
func visibleFrom(selected, rows int) int {
	if rows <= 0 {
		return selected
	}
	return max(selected-rows+1, 0)
}

// renderTitledBox draws a bordered pane with the title in the top border.
// Content is padded or cut to fit.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	bgColor := m.theme.SurfaceAlt
	if focused {
		borderColor = m.theme.BorderFocus
		bgColor = m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 1)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	lineStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxHeight(1).
		Background(lipgloss.Color(bgColor))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)
	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+lineStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return top + "\n" + strings.Join(lines, "\n") + "\n" + bottom
}
