package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/standups/internal/detail"
	"github.com/five82/standups/internal/standup"
)

func (m *Model) resizeTranscript() {
	m.transcript.Width = max(m.width-4, 1)
	m.transcript.Height = max(m.contentHeight()-2, 1)
	if d := m.openDetail(); d != nil {
		if v, ok := d.Destination().(detail.ViewingMeeting); ok {
			m.loadTranscript(v.Meeting)
		}
	}
}

// loadTranscript fills the viewport with the attendees and transcript of
// meeting.
func (m *Model) loadTranscript(meeting standup.Meeting) {
	styles := m.theme.Styles()
	width := max(m.transcript.Width, 1)

	var b strings.Builder
	b.WriteString(styles.MutedText.Render(formatMeetingDate(meeting.Date, m.now())))
	b.WriteString("\n\n")

	if d := m.openDetail(); d != nil {
		b.WriteString(styles.AccentText.Bold(true).Render("Attendees"))
		b.WriteString("\n")
		for _, a := range d.Standup().Attendees {
			b.WriteString("  " + styles.Text.Render(a.Name) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.AccentText.Bold(true).Render("Transcript"))
	b.WriteString("\n")
	transcript := strings.TrimSpace(meeting.Transcript)
	if transcript == "" {
		b.WriteString(styles.FaintText.Render("Nothing was transcribed."))
	} else {
		b.WriteString(strings.Join(tailLines(transcript, width, 1<<30), "\n"))
	}

	m.transcript.SetContent(b.String())
	m.transcript.GotoTop()
}

// handleMeetingKey processes keyboard input for the meeting view.
func (m Model) handleMeetingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	d := m.openDetail()
	if d == nil {
		return m, nil
	}
	if key.Matches(msg, m.keys.Back) {
		d.CloseMeeting()
		return m, nil
	}
	var cmd tea.Cmd
	m.transcript, cmd = m.transcript.Update(msg)
	return m, cmd
}

func (m Model) renderMeeting() string {
	title := "Meeting"
	if d := m.openDetail(); d != nil {
		title = titleOrPlaceholder(d.Standup().Title)
	}
	content := lipgloss.NewStyle().Padding(0, 1).Render(m.transcript.View())
	return m.renderTitledBox(title, content, m.width, m.contentHeight(), true)
}
