package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleDetailKey processes keyboard input for the standup screen.
func (m *Model) handleDetailKey(msg tea.KeyMsg) {
	d := m.openDetail()
	if d == nil {
		return
	}
	meetings := d.Standup().Meetings

	switch {
	case key.Matches(msg, m.keys.Back):
		m.list.CloseDetail()
	case key.Matches(msg, m.keys.Edit):
		d.StartEdit()
	case key.Matches(msg, m.keys.StartMeeting):
		d.StartMeeting(m.ctx)
	case key.Matches(msg, m.keys.DeleteStandup):
		d.RequestDeletion()
	case len(meetings) == 0:
	case key.Matches(msg, m.keys.Down):
		if m.meetingRow < len(meetings)-1 {
			m.meetingRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.meetingRow > 0 {
			m.meetingRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.meetingRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.meetingRow = len(meetings) - 1
	case key.Matches(msg, m.keys.Open):
		d.ViewMeeting(meetings[m.meetingRow].ID)
	case key.Matches(msg, m.keys.DeleteMeeting):
		d.DeleteMeetings(m.meetingRow)
	}
}

// renderDetail renders the standup info next to its meeting history.
func (m Model) renderDetail() string {
	d := m.openDetail()
	if d == nil {
		return ""
	}
	s := d.Standup()
	height := m.contentHeight()

	infoWidth := m.width * 40 / 100
	if m.width < LayoutCompactWidth {
		infoWidth = m.width / 2
	}
	historyWidth := m.width - infoWidth

	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	row := func(label, value string) string {
		return bg.Render(lipgloss.NewStyle().Width(10).Render(label), styles.MutedText) + bg.Render(value, styles.Text)
	}

	var info []string
	info = append(info, m.theme.badgeStyle(s.Theme).Render(truncate(titleOrPlaceholder(s.Title), infoWidth-6)))
	info = append(info, "")
	info = append(info, row("Length", formatLength(s.Duration)))
	info = append(info, row("Colour", s.Theme.Name()))
	info = append(info, row("Per person", formatClock(s.DurationPerAttendee())))
	info = append(info, "")
	info = append(info, bg.Render("Attendees", styles.AccentText.Bold(true)))
	for _, a := range s.Attendees {
		info = append(info, bg.Spaces(2)+bg.Render(truncate(a.Name, infoWidth-6), styles.Text))
	}
	info = append(info, "")
	info = append(info, bg.Render("s", styles.AccentText)+bg.Render(" to start a meeting", styles.FaintText))
	infoPane := m.renderTitledBox("Standup", strings.Join(info, "\n"), infoWidth, height, false)

	historyTitle := fmt.Sprintf("History (%d)", len(s.Meetings))
	var history []string
	if len(s.Meetings) == 0 {
		history = append(history, lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(m.theme.FocusBg)).
			Render("No meetings yet"))
	}
	now := m.now()
	start := visibleFrom(m.meetingRow, height-2)
	for i, meeting := range s.Meetings[start:] {
		index := start + i
		rowBg := m.theme.FocusBg
		textStyle := m.theme.Styles().Text
		marker := "  "
		if index == m.meetingRow {
			rowBg = m.theme.SelectionBg
			textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
			marker = "› "
		}
		rb := NewBgStyle(rowBg)
		line := rb.Render(marker, m.theme.Styles().AccentText) + rb.Render(formatMeetingDate(meeting.Date, now), textStyle)
		history = append(history, lipgloss.NewStyle().Background(lipgloss.Color(rowBg)).Width(historyWidth-2).Render(line))
	}
	historyPane := m.renderTitledBox(historyTitle, strings.Join(history, "\n"), historyWidth, height, true)

	return lipgloss.JoinHorizontal(lipgloss.Top, infoPane, historyPane)
}
