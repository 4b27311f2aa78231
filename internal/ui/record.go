package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/standups/internal/record"
)

func (m *Model) handleRecordKey(msg tea.KeyMsg) {
	rec := m.activeRecording()
	if rec == nil {
		return
	}
	switch {
	case key.Matches(msg, m.keys.NextSpeaker):
		rec.NextSpeaker()
	case key.Matches(msg, m.keys.EndEarly):
		rec.EndMeetingEarly()
	}
}

// renderRecord renders the running meeting: progress, current speaker, the
// speaker strip and the tail of the live transcript.
func (m Model) renderRecord() string {
	rec := m.activeRecording()
	if rec == nil {
		return ""
	}
	s := rec.Standup()
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	inner := max(m.width-4, 10)
	accent := standupColor(s.Theme, m.theme.Accent)
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(accent))

	var lines []string
	lines = append(lines, m.theme.badgeStyle(s.Theme).Render(truncate(titleOrPlaceholder(s.Title), inner-2)))
	lines = append(lines, "")
	lines = append(lines, m.renderProgressBar(rec.Progress(), inner, accentStyle, bg))

	elapsed := bg.Render("Seconds elapsed ", styles.MutedText) + bg.Render(formatClock(rec.Elapsed()), styles.Text)
	remaining := bg.Render("Seconds remaining ", styles.MutedText) + bg.Render(formatClock(rec.Remaining()), styles.Text)
	gap := max(inner-lipgloss.Width(elapsed)-lipgloss.Width(remaining), 2)
	lines = append(lines, elapsed+bg.Spaces(gap)+remaining)
	lines = append(lines, "")

	lines = append(lines, bg.Render(rec.Speaker(), styles.Text.Bold(true))+
		bg.Spaces(2)+bg.Render(rec.SpeakerText(), styles.MutedText))
	lines = append(lines, m.renderSpeakerStrip(rec, inner, accentStyle, bg))
	lines = append(lines, "")

	lines = append(lines, bg.Render("Transcript", styles.AccentText.Bold(true)))
	transcript := strings.TrimSpace(rec.Transcript())
	if transcript == "" {
		lines = append(lines, bg.Render("Listening...", styles.FaintText))
	} else {
		for _, l := range tailLines(transcript, inner, TranscriptTailLines) {
			lines = append(lines, bg.Render(l, styles.Text))
		}
	}

	return m.renderTitledBox("Recording", strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}

// renderProgressBar renders a text progress bar for fraction in [0, 1].
func (m Model) renderProgressBar(fraction float64, width int, style lipgloss.Style, bg BgStyle) string {
	fraction = min(max(fraction, 0), 1)
	filled := min(int(float64(width)*fraction), width)
	return bg.Render(strings.Repeat("█", filled), style) +
		bg.Render(strings.Repeat("░", width-filled), m.theme.Styles().FaintText)
}

// renderSpeakerStrip draws one segment per attendee: finished speakers are
// full, the current one fills with its slot and the rest are empty.
func (m Model) renderSpeakerStrip(rec *record.Controller, width int, style lipgloss.Style, bg BgStyle) string {
	attendees := rec.Standup().Attendees
	n := len(attendees)
	if n == 0 {
		return ""
	}
	seg := max((width-(n-1))/n, SpeakerStripMinWidth)

	per := rec.PerSpeaker()
	intoSlot := rec.Elapsed() - per*time.Duration(rec.SpeakerIndex())

	segments := make([]string, 0, n)
	for i := range attendees {
		var fraction float64
		switch {
		case i < rec.SpeakerIndex():
			fraction = 1
		case i == rec.SpeakerIndex() && per > 0:
			fraction = float64(intoSlot) / float64(per)
		}
		segments = append(segments, m.renderProgressBar(fraction, seg, style, bg))
	}
	return strings.Join(segments, bg.Spaces(1))
}
