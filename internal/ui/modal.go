package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/standups/internal/detail"
	"github.com/five82/standups/internal/record"
)

// alert is a confirmation shown over the screen. It is rebuilt from the
// controller tree on every update; only the button cursor lives in the Model.
type alert struct {
	title   string
	message string
	buttons []alertButton
	// cancel runs on esc; nil ignores esc.
	cancel func()
	danger bool
}

type alertButton struct {
	label  string
	hotkey string
	run    func()
}

// activeAlert returns the alert the controller tree currently asks for.
func (m Model) activeAlert() *alert {
	d := m.openDetail()
	if d == nil {
		return nil
	}
	switch dest := d.Destination().(type) {
	case detail.ConfirmDelete:
		return &alert{
			title:   "Delete?",
			message: "Are you sure you want to delete this meeting?",
			buttons: []alertButton{
				{label: "Delete", hotkey: "y", run: d.ConfirmDeletion},
				{label: "Cancel", hotkey: "n", run: d.CancelDeletion},
			},
			cancel: d.CancelDeletion,
			danger: true,
		}
	case detail.Recording:
		return recordAlert(dest.Record)
	}
	return nil
}

func recordAlert(rec *record.Controller) *alert {
	switch dest := rec.Destination().(type) {
	case record.ConfirmEarlyEnd:
		a := &alert{
			title:   "End meeting?",
			message: "You are ending the meeting early. What would you like to do?",
		}
		for _, choice := range dest.Choices {
			a.buttons = append(a.buttons, alertButton{
				label:  choice.String(),
				hotkey: choiceHotkey(choice),
				run:    func() { rec.Resolve(choice) },
			})
		}
		if dest.Has(record.Resume) {
			a.cancel = func() { rec.Resolve(record.Resume) }
		}
		return a
	case record.Failure:
		dismiss := func() { rec.Resolve(record.Discard) }
		return &alert{
			title:   "Something went wrong",
			message: dest.Err.Error(),
			buttons: []alertButton{{label: "OK", hotkey: "o", run: dismiss}},
			cancel:  dismiss,
			danger:  true,
		}
	}
	return nil
}

func choiceHotkey(c record.Choice) string {
	switch c {
	case record.SaveAndEnd:
		return "s"
	case record.Discard:
		return "d"
	case record.Resume:
		return "r"
	}
	return ""
}

// handleAlertKey moves the button cursor or runs a button.
func (m *Model) handleAlertKey(msg tea.KeyMsg, a alert) {
	if len(a.buttons) == 0 {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		if a.cancel != nil {
			a.cancel()
		}
		return
	case key.Matches(msg, m.keys.Left):
		m.alertCursor = (m.alertCursor - 1 + len(a.buttons)) % len(a.buttons)
		return
	case key.Matches(msg, m.keys.Right):
		m.alertCursor = (m.alertCursor + 1) % len(a.buttons)
		return
	case key.Matches(msg, m.keys.Confirm):
		a.buttons[min(m.alertCursor, len(a.buttons)-1)].run()
		return
	}
	for _, b := range a.buttons {
		if b.hotkey != "" && msg.String() == b.hotkey {
			b.run()
			return
		}
	}
}

// renderAlert renders the alert centred on the screen.
func (m Model) renderAlert(a alert) string {
	styles := m.theme.Styles()

	titleStyle := styles.Text.Bold(true)
	borderColor := m.theme.Accent
	if a.danger {
		titleStyle = styles.DangerText
		borderColor = m.theme.Danger
	}

	width := min(max(m.width-8, 20), 56)
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(strings.Join(wrapWords(a.message, width-6), "\n")))
	b.WriteString("\n\n")

	buttons := make([]string, 0, len(a.buttons))
	for i, button := range a.buttons {
		label := " " + button.label + " "
		if i == m.alertCursor {
			buttons = append(buttons, styles.Selected.Bold(true).Render(label))
		} else {
			buttons = append(buttons, styles.MutedText.Render(label))
		}
	}
	b.WriteString(strings.Join(buttons, "  "))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
