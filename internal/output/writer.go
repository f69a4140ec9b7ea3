package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrocyte/Youtube-Summerator/internal/fileutil"
	"github.com/astrocyte/Youtube-Summerator/internal/logger"
	"github.com/astrocyte/Youtube-Summerator/internal/transcript"
)

// Writer renders finished summaries and transcripts into the output
// directory. Existing files are never overwritten; a versioned name is
// picked instead.
type Writer struct {
	dir        string
	sanitizer  fileutil.Sanitizer
	exportDocx bool
	logger     logger.Logger
}

func NewWriter(dir string, sanitizer fileutil.Sanitizer, exportDocx bool, log logger.Logger) *Writer {
	return &Writer{
		dir:        dir,
		sanitizer:  sanitizer,
		exportDocx: exportDocx,
		logger:     log,
	}
}

// WriteSummary writes the markdown summary, and a docx rendition when
// enabled, returning the markdown path.
func (w *Writer) WriteSummary(ctx context.Context, title, depth, summaryText string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	stem := w.sanitizer.Sanitize(fmt.Sprintf("%s - %s summary", title, depth))
	content := fmt.Sprintf("# %s\n\n%s\n", title, strings.TrimSpace(summaryText))

	path := fileutil.NextAvailableName(filepath.Join(w.dir, stem+".md"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	w.logger.Info(ctx, "Summary written to %s", path)

	if w.exportDocx {
		docxPath := fileutil.NextAvailableName(filepath.Join(w.dir, stem+".docx"))
		if err := markdownToDocx(title, summaryText, docxPath); err != nil {
			w.logger.Warn(ctx, "Docx export failed: %v", err)
		} else {
			w.logger.Info(ctx, "Docx written to %s", docxPath)
		}
	}

	return path, nil
}

// WriteTranscript writes the timestamped transcript as a text file and
// returns its path.
func (w *Writer) WriteTranscript(ctx context.Context, title string, segments []transcript.Segment) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	stem := w.sanitizer.Sanitize(title + " - transcript")
	path := fileutil.NextAvailableName(filepath.Join(w.dir, stem+".txt"))

	content := fmt.Sprintf("%s\nDuration: %s\n\n%s",
		title, formatTimestamp(transcript.TotalDuration(segments)), FormatTranscript(segments))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	w.logger.Info(ctx, "Transcript written to %s", path)
	return path, nil
}
