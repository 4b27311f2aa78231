package standup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationPerAttendee(t *testing.T) {
	tests := []struct {
		name      string
		duration  time.Duration
		attendees int
		want      time.Duration
	}{
		{"even split", time.Minute, 6, 10 * time.Second},
		{"truncates fractions", 10 * time.Second, 3, 3 * time.Second},
		{"single attendee", 6 * time.Second, 1, 6 * time.Second},
		{"clamped to one second", 2 * time.Second, 5, time.Second},
		{"no attendees", 30 * time.Second, 0, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Duration = tt.duration
			for range tt.attendees {
				s.Attendees = append(s.Attendees, NewAttendee("x"))
			}
			assert.Equal(t, tt.want, s.DurationPerAttendee())
		})
	}
}

func TestAttendeeIsBlank(t *testing.T) {
	assert.True(t, Attendee{Name: ""}.IsBlank())
	assert.True(t, Attendee{Name: " \t\n"}.IsBlank())
	assert.False(t, Attendee{Name: " Dani "}.IsBlank())
}

func TestWithoutBlankAttendees(t *testing.T) {
	s := New()
	s.Attendees = []Attendee{NewAttendee(""), NewAttendee("  "), NewAttendee("Dani")}

	cleaned := s.WithoutBlankAttendees()
	require.Len(t, cleaned.Attendees, 1)
	assert.Equal(t, "Dani", cleaned.Attendees[0].Name)
	assert.Len(t, s.Attendees, 3, "original must be left untouched")

	s.Attendees = []Attendee{NewAttendee(""), NewAttendee(" ")}
	cleaned = s.WithoutBlankAttendees()
	require.Len(t, cleaned.Attendees, 1)
	assert.True(t, cleaned.Attendees[0].IsBlank())
}

func TestCloneIsDeep(t *testing.T) {
	s := Mock()
	dup := s.Clone()
	dup.Attendees[0].Name = "changed"
	dup.Meetings[0].Transcript = "changed"

	assert.Equal(t, "Blob", s.Attendees[0].Name)
	assert.NotEqual(t, "changed", s.Meetings[0].Transcript)
}

func TestTheme(t *testing.T) {
	assert.Len(t, Themes(), 16)
	assert.Equal(t, "Sdorange", Orange.Name())
	assert.True(t, Navy.AccentIsLight())
	assert.False(t, Bubblegum.AccentIsLight())
	assert.Equal(t, Buttercup, Bubblegum.Next())
	assert.Equal(t, Bubblegum, Yellow.Next())

	got, err := ParseTheme(" SeaFoam ")
	require.NoError(t, err)
	assert.Equal(t, Seafoam, got)

	_, err = ParseTheme("chartreuse")
	assert.Error(t, err)
}
