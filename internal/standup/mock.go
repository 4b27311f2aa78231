package standup

import "time"

const mockTranscript = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor " +
	"incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud " +
	"exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."

// Mock returns a populated sample standup for demos and tests.
func Mock() Standup {
	return Standup{
		ID:    NewStandupID(),
		Title: "Design",
		Attendees: []Attendee{
			NewAttendee("Blob"),
			NewAttendee("Blob Jr"),
			NewAttendee("Blob Sr"),
			NewAttendee("Blob Esq"),
			NewAttendee("Blob III"),
			NewAttendee("Blob I"),
		},
		Duration: time.Minute,
		Meetings: []Meeting{{
			ID:         NewMeetingID(),
			Date:       time.Now().Add(-7 * 24 * time.Hour).UTC().Truncate(time.Second),
			Transcript: mockTranscript,
		}},
		Theme: Orange,
	}
}
