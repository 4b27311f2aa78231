package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/standups/internal/edit"
	"github.com/five82/standups/internal/list"
	"github.com/five82/standups/internal/standup"
)

// formFields lists the focusable fields in tab order.
func formFields(s standup.Standup) []edit.Focus {
	fields := make([]edit.Focus, 0, len(s.Attendees)+1)
	fields = append(fields, edit.TitleFocus())
	for _, a := range s.Attendees {
		fields = append(fields, edit.AttendeeFocus(a.ID))
	}
	return fields
}

func fieldIndex(fields []edit.Focus, f edit.Focus) int {
	for i, candidate := range fields {
		if candidate == f {
			return i
		}
	}
	return 0
}

// bindForm points the text input at the focused field whenever the form or
// its focus changed outside the input.
func (m *Model) bindForm() tea.Cmd {
	e := m.activeForm()
	if e == nil {
		m.form.owner = nil
		m.form.input.Blur()
		return nil
	}
	if e.Focus().Kind == edit.FocusNone {
		e.SetFocus(edit.TitleFocus())
	}
	if m.form.owner == e && m.form.focus == e.Focus() {
		return nil
	}

	m.form.owner = e
	m.form.focus = e.Focus()
	s := e.Standup()
	switch f := e.Focus(); f.Kind {
	case edit.FocusAttendee:
		name := ""
		if i := s.AttendeeIndex(f.Attendee); i >= 0 {
			name = s.Attendees[i].Name
		}
		m.form.input.Placeholder = "New attendee"
		m.form.input.SetValue(name)
	default:
		m.form.input.Placeholder = "Title"
		m.form.input.SetValue(s.Title)
	}
	m.form.input.CursorEnd()
	return m.form.input.Focus()
}

// writeInput copies the input value into the focused field.
func (m *Model) writeInput(e *edit.Controller) {
	value := m.form.input.Value()
	switch f := e.Focus(); f.Kind {
	case edit.FocusAttendee:
		e.SetAttendeeName(f.Attendee, value)
	default:
		e.SetTitle(value)
	}
}

func (m Model) confirmForm() {
	if _, adding := m.list.Destination().(list.Adding); adding {
		m.list.ConfirmAdd()
		return
	}
	if d := m.openDetail(); d != nil {
		d.CommitEdit()
	}
}

func (m Model) cancelForm() {
	if _, adding := m.list.Destination().(list.Adding); adding {
		m.list.CancelAdd()
		return
	}
	if d := m.openDetail(); d != nil {
		d.CancelEdit()
	}
}

// handleFormKey processes keyboard input for the add and edit form.
func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	e := m.activeForm()
	if e == nil {
		return m, nil
	}
	fields := formFields(e.Standup())
	current := fieldIndex(fields, e.Focus())

	switch {
	case key.Matches(msg, m.keys.Back):
		m.cancelForm()
	case key.Matches(msg, m.keys.Save):
		m.confirmForm()
	case key.Matches(msg, m.keys.NextField):
		e.SetFocus(fields[(current+1)%len(fields)])
	case key.Matches(msg, m.keys.PrevField):
		e.SetFocus(fields[(current-1+len(fields))%len(fields)])
	case key.Matches(msg, m.keys.AddAttendee):
		e.AddAttendee()
	case key.Matches(msg, m.keys.RemoveAttendee):
		if f := e.Focus(); f.Kind == edit.FocusAttendee {
			e.DeleteAttendees(e.Standup().AttendeeIndex(f.Attendee))
		}
	case key.Matches(msg, m.keys.Longer):
		e.AdjustDuration(1)
	case key.Matches(msg, m.keys.Shorter):
		e.AdjustDuration(-1)
	case key.Matches(msg, m.keys.NextColour):
		e.CycleTheme()
	default:
		var cmd tea.Cmd
		m.form.input, cmd = m.form.input.Update(msg)
		m.writeInput(e)
		return m, cmd
	}
	return m, nil
}

// renderForm renders the add or edit form.
func (m Model) renderForm() string {
	e := m.activeForm()
	if e == nil {
		return ""
	}
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	s := e.Standup()
	focus := e.Focus()

	width := min(m.width, LayoutFormWidth)
	inner := width - 4
	label := func(text string) string {
		return bg.Render(lipgloss.NewStyle().Width(10).Render(text), styles.MutedText)
	}
	field := func(f edit.Focus, value, placeholder string) string {
		if f == focus {
			m.form.input.Width = max(inner-14, 8)
			return bg.Render("› ", styles.AccentText) + m.form.input.View()
		}
		if strings.TrimSpace(value) == "" {
			return bg.Spaces(2) + bg.Render(placeholder, styles.FaintText)
		}
		return bg.Spaces(2) + bg.Render(truncate(value, inner-14), styles.Text)
	}

	var lines []string
	lines = append(lines, bg.Render("Meeting info", styles.AccentText.Bold(true)))
	lines = append(lines, label("Title")+field(edit.TitleFocus(), s.Title, "Title"))
	lines = append(lines, label("Length")+bg.Spaces(2)+bg.Render(formatLength(s.Duration), styles.Text)+
		bg.Spaces(2)+bg.Render("pgup/pgdn", styles.FaintText))
	lines = append(lines, label("Colour")+bg.Spaces(2)+m.theme.badgeStyle(s.Theme).Render(s.Theme.Name())+
		bg.Spaces(2)+bg.Render("ctrl+t", styles.FaintText))
	lines = append(lines, "")
	lines = append(lines, bg.Render("Attendees", styles.AccentText.Bold(true)))
	for _, a := range s.Attendees {
		lines = append(lines, bg.Spaces(2)+field(edit.AttendeeFocus(a.ID), a.Name, "New attendee"))
	}
	lines = append(lines, bg.Spaces(4)+bg.Render("ctrl+n to add an attendee", styles.FaintText))

	title := "New standup"
	if _, adding := m.list.Destination().(list.Adding); !adding {
		title = "Edit standup"
	}

	start := 0
	if rows := m.contentHeight() - 2; len(lines) > rows && rows > 0 {
		start = visibleFrom(m.focusedLine(s, focus), rows)
	}
	box := m.renderTitledBox(title, strings.Join(lines[start:], "\n"), width, m.contentHeight(), true)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}

// focusedLine is the form line of the focused field.
func (m Model) focusedLine(s standup.Standup, focus edit.Focus) int {
	if focus.Kind != edit.FocusAttendee {
		return 1
	}
	return 6 + max(s.AttendeeIndex(focus.Attendee), 0)
}
