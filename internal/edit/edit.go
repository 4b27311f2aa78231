// Package edit holds the transient working copy behind the add and edit
// standup forms. It has no side effects: the caller decides whether the
// working copy is committed or discarded.
package edit

import (
	"time"

	"github.com/five82/standups/internal/standup"
)

// Duration bounds offered by the form, in whole minutes.
const (
	MinDuration = 5 * time.Minute
	MaxDuration = 30 * time.Minute
)

// FocusKind is the form field that has keyboard focus.
type FocusKind int

const (
	FocusNone FocusKind = iota
	FocusTitle
	FocusAttendee
)

// Focus is the focused field; Attendee is set only for FocusAttendee.
type Focus struct {
	Kind     FocusKind
	Attendee standup.AttendeeID
}

// TitleFocus focuses the title field.
func TitleFocus() Focus { return Focus{Kind: FocusTitle} }

// AttendeeFocus focuses the name field of one attendee.
func AttendeeFocus(id standup.AttendeeID) Focus {
	return Focus{Kind: FocusAttendee, Attendee: id}
}

// Controller edits one standup.
type Controller struct {
	standup standup.Standup
	focus   Focus
}

// New seeds the form with a copy of s. A standup without attendees gets one
// blank attendee. Focus starts on the title.
func New(s standup.Standup) *Controller {
	c := &Controller{standup: s.Clone(), focus: TitleFocus()}
	if len(c.standup.Attendees) == 0 {
		c.standup.Attendees = append(c.standup.Attendees, standup.NewAttendee(""))
	}
	return c
}

// Standup returns a copy of the working copy.
func (c *Controller) Standup() standup.Standup {
	return c.standup.Clone()
}

func (c *Controller) Focus() Focus { return c.focus }

func (c *Controller) SetFocus(f Focus) { c.focus = f }

func (c *Controller) SetTitle(title string) { c.standup.Title = title }

func (c *Controller) SetTheme(t standup.Theme) { c.standup.Theme = t }

// CycleTheme moves to the next theme in display order.
func (c *Controller) CycleTheme() { c.standup.Theme = c.standup.Theme.Next() }

// SetDuration sets the length, clamped to the form's range.
func (c *Controller) SetDuration(d time.Duration) {
	c.standup.Duration = min(max(d, MinDuration), MaxDuration)
}

// AdjustDuration moves the length by whole minutes within the form's range.
func (c *Controller) AdjustDuration(minutes int) {
	current := c.standup.Duration.Truncate(time.Minute)
	c.SetDuration(current + time.Duration(minutes)*time.Minute)
}

// SetAttendeeName renames the attendee with id and reports whether it exists.
func (c *Controller) SetAttendeeName(id standup.AttendeeID, name string) bool {
	i := c.standup.AttendeeIndex(id)
	if i < 0 {
		return false
	}
	c.standup.Attendees[i].Name = name
	return true
}

// AddAttendee appends a blank attendee and focuses it.
func (c *Controller) AddAttendee() standup.AttendeeID {
	a := standup.NewAttendee("")
	c.standup.Attendees = append(c.standup.Attendees, a)
	c.focus = AttendeeFocus(a.ID)
	return a.ID
}

// DeleteAttendees removes the attendees at offsets. The list never ends up
// empty: a blank attendee replaces the last one removed. Focus moves to the
// attendee just before the lowest removed offset, clamped into range.
func (c *Controller) DeleteAttendees(offsets ...int) {
	lowest := -1
	for _, o := range offsets {
		if o < 0 || o >= len(c.standup.Attendees) {
			continue
		}
		if lowest < 0 || o < lowest {
			lowest = o
		}
	}
	if lowest < 0 {
		return
	}

	c.standup.Attendees = standup.RemoveAt(c.standup.Attendees, offsets...)
	if len(c.standup.Attendees) == 0 {
		c.standup.Attendees = append(c.standup.Attendees, standup.NewAttendee(""))
	}

	index := min(max(lowest-1, 0), len(c.standup.Attendees)-1)
	c.focus = AttendeeFocus(c.standup.Attendees[index].ID)
}
