package output

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/astrocyte/Youtube-Summerator/internal/fileutil"
	"github.com/astrocyte/Youtube-Summerator/internal/logger"
	"github.com/astrocyte/Youtube-Summerator/internal/transcript"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59.9, "00:00:59"},
		{300, "00:05:00"},
		{3725, "01:02:05"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatTranscriptEmpty(t *testing.T) {
	if got := FormatTranscript(nil); got != "" {
		t.Errorf("FormatTranscript(nil) = %q", got)
	}
}

func TestFormatTranscriptBlocksAndBullets(t *testing.T) {
	segments := []transcript.Segment{
		{Text: "Welcome back.", Start: 0, Duration: 2},
		{Text: "Today we cover chunking.", Start: 2, Duration: 3},
		// 10 second pause, same block
		{Text: "First, tokens.", Start: 15, Duration: 3},
		// next five-minute block
		{Text: "Moving on.", Start: 305, Duration: 2},
	}

	got := FormatTranscript(segments)

	if !strings.Contains(got, "[00:00:00 - 00:05:00]") {
		t.Errorf("missing first block header in %q", got)
	}
	if !strings.Contains(got, "[00:05:00 - 00:10:00]") {
		t.Errorf("missing second block header in %q", got)
	}
	if !strings.Contains(got, "- Welcome back. Today we cover chunking.\n") {
		t.Errorf("consecutive captions should share a bullet, got %q", got)
	}
	if !strings.Contains(got, "- First, tokens.\n") {
		t.Errorf("pause should start a new bullet, got %q", got)
	}
	if !strings.Contains(got, "- Moving on.\n") {
		t.Errorf("missing second block bullet in %q", got)
	}
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, fileutil.DefaultSanitizer(), false, logger.Nop())

	path, err := w.WriteSummary(context.Background(), "How Compilers Work", "detailed", "## Main Topics\n\n- parsing\n")
	if err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# How Compilers Work\n\n") {
		t.Errorf("summary missing title header: %q", content)
	}
	if !strings.Contains(content, "- parsing") {
		t.Errorf("summary body missing: %q", content)
	}
	if filepath.Base(path) != "How Compilers Work - detailed summary.md" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}
}

func TestWriteSummaryVersionsExisting(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, fileutil.DefaultSanitizer(), false, logger.Nop())

	first, err := w.WriteSummary(context.Background(), "Video", "basic", "one")
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.WriteSummary(context.Background(), "Video", "basic", "two")
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatalf("second write reused path %q", first)
	}
	if filepath.Base(second) != "Video - basic summary (1).md" {
		t.Errorf("versioned name = %q", filepath.Base(second))
	}
	data, _ := os.ReadFile(first)
	if !strings.Contains(string(data), "one") {
		t.Error("first summary was overwritten")
	}
}

func TestWriteTranscript(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, fileutil.DefaultSanitizer(), false, logger.Nop())

	segments := []transcript.Segment{{Text: "Hello.", Start: 0, Duration: 1}}
	path, err := w.WriteTranscript(context.Background(), "My Video: Part 1", segments)
	if err != nil {
		t.Fatalf("WriteTranscript() error = %v", err)
	}

	if strings.ContainsRune(filepath.Base(path), ':') {
		t.Errorf("file name should be sanitized: %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "- Hello.") {
		t.Errorf("transcript body missing: %q", string(data))
	}
	if !strings.Contains(string(data), "Duration: 00:00:01") {
		t.Errorf("transcript header missing duration: %q", string(data))
	}
}
