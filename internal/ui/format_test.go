package ui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	cases := map[time.Duration]string{
		0:                            "0:00",
		-5 * time.Second:             "0:00",
		59 * time.Second:             "0:59",
		61 * time.Second:             "1:01",
		10*time.Minute + time.Second: "10:01",
	}
	for d, want := range cases {
		if got := formatClock(d); got != want {
			t.Fatalf("formatClock(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestFormatLength(t *testing.T) {
	if got := formatLength(time.Minute); got != "1 minute" {
		t.Fatalf("formatLength(1m) = %q", got)
	}
	if got := formatLength(5 * time.Minute); got != "5 minutes" {
		t.Fatalf("formatLength(5m) = %q", got)
	}
	if got := formatLength(30 * time.Second); got != "0:30" {
		t.Fatalf("formatLength(30s) = %q", got)
	}
}

func TestFormatMeetingDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	got := formatMeetingDate(now.Add(-3*24*time.Hour), now)
	if got != "Mar 07, 2024 12:00 · 3d ago" {
		t.Fatalf("formatMeetingDate = %q", got)
	}
	if got := formatMeetingDate(time.Time{}, now); got != "" {
		t.Fatalf("formatMeetingDate(zero) = %q, want empty", got)
	}
}

func TestHumanizeAgo(t *testing.T) {
	cases := map[time.Duration]string{
		-time.Minute:     "just now",
		30 * time.Second: "just now",
		5 * time.Minute:  "5m ago",
		2 * time.Hour:    "2h ago",
		49 * time.Hour:   "2d ago",
	}
	for d, want := range cases {
		if got := humanizeAgo(d); got != want {
			t.Fatalf("humanizeAgo(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo wörld", 8); got != "héllo..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate zero = %q", got)
	}
}

func TestWrapWords(t *testing.T) {
	got := wrapWords("the quick brown fox jumps", 10)
	want := []string{"the quick", "brown fox", "jumps"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("wrapWords = %q, want %q", got, want)
	}

	got = wrapWords("abcdefghijkl", 5)
	if strings.Join(got, "|") != "abcde|fghij|kl" {
		t.Fatalf("wrapWords long word = %q", got)
	}
}

func TestTailLines(t *testing.T) {
	got := tailLines("one two three four five six", 9, 2)
	if strings.Join(got, "|") != "four five|six" {
		t.Fatalf("tailLines = %q", got)
	}
	if got := tailLines("anything", 0, 3); got != nil {
		t.Fatalf("tailLines zero width = %q, want nil", got)
	}
}

func TestTitleOrPlaceholder(t *testing.T) {
	if got := titleOrPlaceholder("  "); got != "Untitled" {
		t.Fatalf("titleOrPlaceholder(blank) = %q", got)
	}
	if got := titleOrPlaceholder("Design"); got != "Design" {
		t.Fatalf("titleOrPlaceholder = %q", got)
	}
}
