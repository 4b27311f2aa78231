package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Standups list
	Add key.Binding

	// Standup detail
	Edit          key.Binding
	StartMeeting  key.Binding
	DeleteMeeting key.Binding
	DeleteStandup key.Binding

	// Form
	NextField      key.Binding
	PrevField      key.Binding
	Save           key.Binding
	AddAttendee    key.Binding
	RemoveAttendee key.Binding
	Longer         key.Binding
	Shorter        key.Binding
	NextColour     key.Binding

	// Recording
	NextSpeaker key.Binding
	EndEarly    key.Binding

	// Alerts
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle palette"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "New standup"),
		),

		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit"),
		),
		StartMeeting: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Start meeting"),
		),
		DeleteMeeting: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete meeting"),
		),
		DeleteStandup: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete standup"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down", "enter"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		AddAttendee: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Add attendee"),
		),
		RemoveAttendee: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Remove attendee"),
		),
		Longer: key.NewBinding(
			key.WithKeys("pgup", "ctrl+right"),
			key.WithHelp("pgup", "One minute longer"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+left"),
			key.WithHelp("pgdown", "One minute shorter"),
		),
		NextColour: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Next colour"),
		),

		NextSpeaker: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "Next speaker"),
		),
		EndEarly: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x", "End meeting"),
		),

		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "Previous button"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right", "Next button"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Open, k.Back},
		{k.Add},
		{k.Edit, k.StartMeeting, k.DeleteMeeting, k.DeleteStandup},
		{k.NextField, k.PrevField, k.AddAttendee, k.RemoveAttendee, k.Longer, k.Shorter, k.NextColour, k.Save},
		{k.NextSpeaker, k.EndEarly},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
