package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"
)

// Read returns at most maxLines from the end of the file at path. A maxLines
// of zero or less returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded JSON log line.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
	Fields  map[string]any
}

// Keys written by the logging package's encoder.
const (
	timeKey    = "ts"
	levelKey   = "level"
	messageKey = "msg"
	callerKey  = "caller"
)

// Parse decodes a JSON log line. Lines that are not JSON objects report false.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}

	var e Entry
	if s, ok := raw[timeKey].(string); ok {
		if t, err := time.Parse("2006-01-02T15:04:05.000Z0700", s); err == nil {
			e.Time = t
		}
	}
	if s, ok := raw[levelKey].(string); ok {
		if lvl, err := zapcore.ParseLevel(s); err == nil {
			e.Level = lvl
		}
	}
	e.Message, _ = raw[messageKey].(string)

	for _, k := range []string{timeKey, levelKey, messageKey, callerKey, "stacktrace"} {
		delete(raw, k)
	}
	if len(raw) > 0 {
		e.Fields = raw
	}
	return e, true
}

// Format renders an entry as a single plain line:
//
//	2024-10-10 14:32:15 INFO  standups saved count=3
func Format(e Entry) string {
	var b strings.Builder
	b.WriteString(formatTime(e.Time))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%-5s", e.Level.CapitalString()))
	b.WriteString(" ")
	b.WriteString(e.Message)
	for _, kv := range fieldPairs(e.Fields) {
		b.WriteString(" ")
		b.WriteString(kv)
	}
	return b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return strings.Repeat(" ", len("2006-01-02 15:04:05"))
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func fieldPairs(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+formatValue(fields[k]))
	}
	return pairs
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		if strings.ContainsAny(v, " \t\"=") {
			return fmt.Sprintf("%q", v)
		}
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case nil:
		return "null"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	levelStyle = map[zapcore.Level]lipgloss.Style{
		zapcore.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		zapcore.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		zapcore.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		zapcore.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// ColorizeLine decodes and colours a JSON log line. Other lines are returned
// unchanged.
func ColorizeLine(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}
	style, ok := levelStyle[e.Level]
	if !ok {
		style = levelStyle[zapcore.ErrorLevel]
	}

	var b strings.Builder
	b.WriteString(timeStyle.Render(formatTime(e.Time)))
	b.WriteString(" ")
	b.WriteString(style.Render(fmt.Sprintf("%-5s", e.Level.CapitalString())))
	b.WriteString(" ")
	b.WriteString(e.Message)
	for _, kv := range fieldPairs(e.Fields) {
		b.WriteString(" ")
		b.WriteString(fieldStyle.Render(kv))
	}
	return b.String()
}

// ColorizeLines applies ColorizeLine to every line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}

// Filter keeps the lines at or above threshold. Lines that are not JSON are kept.
func Filter(lines []string, threshold zapcore.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if e, ok := Parse(line); ok && e.Level < threshold {
			continue
		}
		out = append(out, line)
	}
	return out
}

// FormatLines renders each JSON line with Format. Other lines are returned
// unchanged.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if e, ok := Parse(line); ok {
			out[i] = Format(e)
		} else {
			out[i] = line
		}
	}
	return out
}
