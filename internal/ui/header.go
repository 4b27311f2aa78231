package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/standups/internal/detail"
	"github.com/five82/standups/internal/list"
)

// renderMain renders header, command bar and the active screen.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) contentHeight() int {
	return max(m.height-2, 3)
}

// renderContent renders the main content area for the current screen.
func (m Model) renderContent() string {
	switch m.screen() {
	case screenForm:
		return m.renderForm()
	case screenDetail:
		return m.renderDetail()
	case screenMeeting:
		return m.renderMeeting()
	case screenRecord:
		return m.renderRecord()
	default:
		return m.renderStandups()
	}
}

// renderHeader renders the breadcrumb and the save status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("standups", styles.Logo)}
	for _, crumb := range m.breadcrumbs() {
		parts = append(parts, bg.Render(crumb, styles.Text))
	}
	left := bg.Join(parts, " › ")

	right := m.renderSaveStatus(styles, bg)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 2 {
		return styles.Header.Width(m.width).Render(left)
	}
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

func (m Model) breadcrumbs() []string {
	switch dest := m.list.Destination().(type) {
	case list.Adding:
		return []string{"New standup"}
	case list.Detail:
		crumbs := []string{truncate(titleOrPlaceholder(dest.Detail.Standup().Title), 32)}
		switch dest.Detail.Destination().(type) {
		case detail.Editing:
			crumbs = append(crumbs, "Edit")
		case detail.ViewingMeeting:
			crumbs = append(crumbs, "Meeting")
		case detail.Recording:
			crumbs = append(crumbs, "Recording")
		}
		return crumbs
	}
	return nil
}

// renderSaveStatus describes the last load and save outcome, or a save still
// waiting out its quiet interval.
func (m Model) renderSaveStatus(styles Styles, bg BgStyle) string {
	s := m.status
	switch {
	case s.LastError != nil && s.IsFailing():
		return bg.Render("Saving keeps failing: "+truncate(s.LastError.Error(), 40), styles.DangerText)
	case s.LastError != nil:
		return bg.Render("Save failed: "+truncate(s.LastError.Error(), 40), styles.DangerText)
	case m.savePending:
		return bg.Render("Saving...", styles.MutedText)
	case s.Saves > 0:
		return bg.Render("Saved "+s.LastSaved.In(m.location()).Format("15:04:05"), styles.MutedText)
	case s.LoadError != nil:
		return bg.Render("Couldn't load saved standups", styles.WarningText)
	default:
		return bg.Render("No unsaved changes", styles.FaintText)
	}
}

func (m Model) location() *time.Location {
	return m.now().Location()
}

// renderCommandBar renders the key hints for the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.screen() {
	case screenForm:
		commands = []cmd{
			{"tab", "Next"},
			{"ctrl+n", "Attendee"},
			{"ctrl+x", "Remove"},
			{"pgup/pgdn", "Length"},
			{"ctrl+t", "Colour"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}
	case screenDetail:
		commands = []cmd{
			{"s", "Start meeting"},
			{"e", "Edit"},
			{"enter", "View meeting"},
			{"x", "Delete meeting"},
			{"D", "Delete"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case screenMeeting:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"esc", "Back"},
		}
	case screenRecord:
		commands = []cmd{
			{"n", "Next speaker"},
			{"x", "End meeting"},
		}
	default:
		commands = []cmd{
			{"a", "New"},
			{"enter", "Open"},
			{"j/k", "Navigate"},
			{"?", "More"},
			{"q", "Quit"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	if m.screen() != screenForm {
		segments = append(segments,
			bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
