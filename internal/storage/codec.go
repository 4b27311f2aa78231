package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/standups/internal/standup"
)

const formatVersion = 1

type document struct {
	Version  int             `toml:"version"`
	Standups []standupRecord `toml:"standups"`
}

type standupRecord struct {
	ID        string           `toml:"id"`
	Title     string           `toml:"title"`
	Duration  int64            `toml:"duration"` // seconds
	Theme     string           `toml:"theme"`
	Attendees []attendeeRecord `toml:"attendees"`
	Meetings  []meetingRecord  `toml:"meetings"`
}

type attendeeRecord struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

type meetingRecord struct {
	ID         string `toml:"id"`
	Date       string `toml:"date"` // RFC 3339 with nanoseconds
	Transcript string `toml:"transcript"`
}

// Encode serializes the collection in order. Text that is not valid UTF-8 is
// stored with U+FFFD in place of the bad bytes, since TOML cannot carry it.
func Encode(standups []standup.Standup) ([]byte, error) {
	doc := document{Version: formatVersion, Standups: make([]standupRecord, 0, len(standups))}
	for _, s := range standups {
		rec := standupRecord{
			ID:       s.ID.String(),
			Title:    validText(s.Title),
			Duration: int64(s.Duration / time.Second),
			Theme:    string(s.Theme),
		}
		for _, a := range s.Attendees {
			rec.Attendees = append(rec.Attendees, attendeeRecord{ID: a.ID.String(), Name: validText(a.Name)})
		}
		for _, m := range s.Meetings {
			rec.Meetings = append(rec.Meetings, meetingRecord{
				ID:         m.ID.String(),
				Date:       m.Date.Format(time.RFC3339Nano),
				Transcript: validText(m.Transcript),
			})
		}
		doc.Standups = append(doc.Standups, rec)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal standups: %w", err)
	}
	return data, nil
}

func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// Decode parses a collection written by Encode.
func Decode(data []byte) ([]standup.Standup, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse standups: %w", err)
	}
	if doc.Version > formatVersion {
		return nil, fmt.Errorf("unsupported standups format version %d", doc.Version)
	}

	out := make([]standup.Standup, 0, len(doc.Standups))
	for i, rec := range doc.Standups {
		s, err := rec.standup()
		if err != nil {
			return nil, fmt.Errorf("decode standup %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (rec standupRecord) standup() (standup.Standup, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return standup.Standup{}, fmt.Errorf("parse id: %w", err)
	}
	theme, err := standup.ParseTheme(rec.Theme)
	if err != nil {
		return standup.Standup{}, err
	}

	s := standup.Standup{
		ID:       standup.StandupID(id),
		Title:    rec.Title,
		Duration: time.Duration(rec.Duration) * time.Second,
		Theme:    theme,
	}
	for _, a := range rec.Attendees {
		aid, err := uuid.Parse(a.ID)
		if err != nil {
			return standup.Standup{}, fmt.Errorf("parse attendee id: %w", err)
		}
		s.Attendees = append(s.Attendees, standup.Attendee{ID: standup.AttendeeID(aid), Name: a.Name})
	}
	for _, m := range rec.Meetings {
		mid, err := uuid.Parse(m.ID)
		if err != nil {
			return standup.Standup{}, fmt.Errorf("parse meeting id: %w", err)
		}
		date, err := time.Parse(time.RFC3339Nano, m.Date)
		if err != nil {
			return standup.Standup{}, fmt.Errorf("parse meeting date: %w", err)
		}
		s.Meetings = append(s.Meetings, standup.Meeting{
			ID:         standup.MeetingID(mid),
			Date:       date,
			Transcript: m.Transcript,
		})
	}
	return s, nil
}
