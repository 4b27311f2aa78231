package standup

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// DefaultDuration is the length of a freshly created standup.
const DefaultDuration = 5 * time.Minute

// StandupID identifies a standup. It never changes after creation.
type StandupID uuid.UUID

// AttendeeID identifies an attendee within a standup.
type AttendeeID uuid.UUID

// MeetingID identifies a recorded meeting.
type MeetingID uuid.UUID

func NewStandupID() StandupID { return StandupID(uuid.New()) }
func NewAttendeeID() AttendeeID { return AttendeeID(uuid.New()) }
func NewMeetingID() MeetingID { return MeetingID(uuid.New()) }

func (id StandupID) String() string { return uuid.UUID(id).String() }
func (id AttendeeID) String() string { return uuid.UUID(id).String() }
func (id MeetingID) String() string { return uuid.UUID(id).String() }

// Standup is a recurring meeting definition plus its recorded history.
type Standup struct {
	ID        StandupID
	Title     string
	Duration  time.Duration
	Attendees []Attendee
	Meetings  []Meeting // most recent first
	Theme     Theme
}

// Attendee is one participant. Order within a standup is the speaking order.
type Attendee struct {
	ID   AttendeeID
	Name string
}

// Meeting is a finished recording session.
type Meeting struct {
	ID         MeetingID
	Date       time.Time
	Transcript string
}

// New returns an empty standup with a fresh identity and default settings.
func New() Standup {
	return Standup{
		ID:       NewStandupID(),
		Duration: DefaultDuration,
		Theme:    Bubblegum,
	}
}

// NewAttendee returns an attendee with a fresh identity.
func NewAttendee(name string) Attendee {
	return Attendee{ID: NewAttendeeID(), Name: name}
}

// IsBlank reports whether the attendee name is empty or whitespace only.
func (a Attendee) IsBlank() bool {
	return strings.IndexFunc(a.Name, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

// DurationPerAttendee splits the standup duration evenly in whole seconds.
// The result is never below one second so rollover always terminates.
func (s Standup) DurationPerAttendee() time.Duration {
	total := int64(s.Duration / time.Second)
	if len(s.Attendees) == 0 {
		return time.Duration(max(total, 1)) * time.Second
	}
	per := total / int64(len(s.Attendees))
	if per < 1 {
		per = 1
	}
	return time.Duration(per) * time.Second
}

// AttendeeIndex returns the position of the attendee with id, or -1.
func (s Standup) AttendeeIndex(id AttendeeID) int {
	for i, a := range s.Attendees {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Meeting returns the meeting with id.
func (s Standup) Meeting(id MeetingID) (Meeting, bool) {
	for _, m := range s.Meetings {
		if m.ID == id {
			return m, true
		}
	}
	return Meeting{}, false
}

// Clone returns a deep copy so callers can mutate slices independently.
func (s Standup) Clone() Standup {
	dup := s
	if s.Attendees != nil {
		dup.Attendees = make([]Attendee, len(s.Attendees))
		copy(dup.Attendees, s.Attendees)
	}
	if s.Meetings != nil {
		dup.Meetings = make([]Meeting, len(s.Meetings))
		copy(dup.Meetings, s.Meetings)
	}
	return dup
}

// WithoutBlankAttendees drops whitespace-only attendees. When nothing is left a
// single blank attendee is kept so the standup never ends up without one.
func (s Standup) WithoutBlankAttendees() Standup {
	out := s.Clone()
	kept := out.Attendees[:0]
	for _, a := range out.Attendees {
		if !a.IsBlank() {
			kept = append(kept, a)
		}
	}
	out.Attendees = kept
	if len(out.Attendees) == 0 {
		out.Attendees = append(out.Attendees, NewAttendee(""))
	}
	return out
}

// CloneAll deep-copies a collection.
func CloneAll(standups []Standup) []Standup {
	if standups == nil {
		return nil
	}
	dup := make([]Standup, len(standups))
	for i, s := range standups {
		dup[i] = s.Clone()
	}
	return dup
}

// RemoveAt returns items without the elements at offsets. Out-of-range and
// repeated offsets are ignored. The input slice is not modified.
func RemoveAt[T any](items []T, offsets ...int) []T {
	drop := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		if o >= 0 && o < len(items) {
			drop[o] = true
		}
	}
	out := make([]T, 0, len(items)-len(drop))
	for i, item := range items {
		if !drop[i] {
			out = append(out, item)
		}
	}
	return out
}
