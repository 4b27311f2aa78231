// Package logtail reads the application log for the logs command.
//
// The logger writes one JSON object per line. Read returns the last lines of
// the file using a ring buffer, so memory stays proportional to the number of
// lines asked for rather than the file size. Parse decodes a line into an
// Entry, and Format or ColorizeLine render it for a terminal:
//
//	2024-10-10 14:32:15 INFO  standups saved count=3
//
// Lines that are not JSON pass through unchanged. A missing log file reads as
// empty.
package logtail
