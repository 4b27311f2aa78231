package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutFormWidth caps the width of the add and edit form.
	LayoutFormWidth = 72
)

// Record screen limits.
const (
	// TranscriptTailLines is how much of the live transcript the record
	// screen shows.
	TranscriptTailLines = 6

	// SpeakerStripMinWidth is the narrowest segment drawn per speaker.
	SpeakerStripMinWidth = 3
)

// Timing constants.
const (
	// DefaultUIInterval is how often the status line is refreshed.
	DefaultUIInterval = time.Second
)
