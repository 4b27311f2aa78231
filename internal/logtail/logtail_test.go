package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if lines != nil {
		t.Fatalf("Read() = %v, want nil", lines)
	}
}

const savedLine = `{"level":"info","ts":"2024-10-10T14:32:15.000Z","caller":"list/list.go:152","msg":"standups saved","count":3}`

func TestParse(t *testing.T) {
	e, ok := Parse(savedLine)
	if !ok {
		t.Fatalf("Parse() ok = false")
	}
	if e.Level != zapcore.InfoLevel {
		t.Errorf("Level = %v, want info", e.Level)
	}
	if e.Message != "standups saved" {
		t.Errorf("Message = %q", e.Message)
	}
	want := time.Date(2024, 10, 10, 14, 32, 15, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", e.Time, want)
	}
	if len(e.Fields) != 1 || e.Fields["count"] != float64(3) {
		t.Errorf("Fields = %v, want only count", e.Fields)
	}

	if _, ok := Parse("plain text"); ok {
		t.Errorf("Parse(plain text) ok = true")
	}
}

func TestFormat(t *testing.T) {
	e, _ := Parse(`{"level":"warn","ts":"2024-10-10T14:32:15.000Z","msg":"save standups failed, retrying","error":"disk full","attempt":2}`)
	stamp := time.Date(2024, 10, 10, 14, 32, 15, 0, time.UTC).Local().Format("2006-01-02 15:04:05")

	want := stamp + ` WARN  save standups failed, retrying attempt=2 error="disk full"`
	if got := Format(e); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		`{"level":"debug","msg":"detail destination"}`,
		savedLine,
		`{"level":"error","msg":"save standups failed"}`,
		"not json",
	}
	got := Filter(lines, zapcore.InfoLevel)
	want := []string{lines[1], lines[2], lines[3]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestColorizeLine(t *testing.T) {
	if got := ColorizeLine("not json"); got != "not json" {
		t.Errorf("ColorizeLine(plain) = %q", got)
	}
	got := ColorizeLine(savedLine)
	if !strings.Contains(got, "standups saved") || !strings.Contains(got, "count=3") {
		t.Errorf("ColorizeLine() = %q, want message and fields", got)
	}
}

func TestFormatLines(t *testing.T) {
	got := FormatLines([]string{savedLine, "raw"})
	if len(got) != 2 || !strings.HasSuffix(got[0], "INFO  standups saved count=3") || got[1] != "raw" {
		t.Errorf("FormatLines() = %q", got)
	}
}
