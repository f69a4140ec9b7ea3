package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/astrocyte/Youtube-Summerator/internal/logger"
	"github.com/astrocyte/Youtube-Summerator/internal/transcript"
)

const metadataFileName = "cache_metadata.json"

// Entry records when a cached artifact was written and how large it is,
// for age-based eviction.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Size      int       `json:"size"`
}

// Cache persists transcripts and rendered summaries under a cache root,
// with a JSON metadata index for eviction. Writes are last-writer-wins;
// the pipeline runs one job per process so no cross-process locking is
// attempted.
type Cache struct {
	mu            sync.Mutex
	root          string
	transcriptDir string
	summaryDir    string
	metadataPath  string
	metadata      map[string]Entry
	logger        logger.Logger
}

// New initialises a cache rooted at dir, creating the transcript and
// summary subdirectories and loading any existing metadata index.
func New(dir string, log logger.Logger) (*Cache, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("cache directory is empty")
	}

	c := &Cache{
		root:          dir,
		transcriptDir: filepath.Join(dir, "transcripts"),
		summaryDir:    filepath.Join(dir, "summaries"),
		metadataPath:  filepath.Join(dir, metadataFileName),
		metadata:      make(map[string]Entry),
		logger:        log,
	}

	for _, d := range []string{c.transcriptDir, c.summaryDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	if data, err := os.ReadFile(c.metadataPath); err == nil {
		if err := json.Unmarshal(data, &c.metadata); err != nil {
			// A corrupt index is rebuilt from scratch rather than failing
			// the whole pipeline.
			c.metadata = make(map[string]Entry)
		}
	}

	return c, nil
}

func transcriptKey(videoID string) string {
	return "transcript/" + videoID
}

func summaryKey(videoID, depth, model string) string {
	return "summary/" + videoID + "/" + depth + "/" + model
}

func (c *Cache) transcriptPath(videoID string) string {
	return filepath.Join(c.transcriptDir, sanitizeComponent(videoID)+".json")
}

func (c *Cache) summaryPath(videoID, depth, model string) string {
	name := fmt.Sprintf("%s_%s_%s.md",
		sanitizeComponent(videoID), sanitizeComponent(depth), sanitizeComponent(model))
	return filepath.Join(c.summaryDir, name)
}

// sanitizeComponent keeps cache file names flat regardless of what the
// key components contain.
func sanitizeComponent(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, s)
}

// GetTranscript returns the cached segment list for a video, if present.
func (c *Cache) GetTranscript(videoID string) ([]transcript.Segment, bool, error) {
	data, err := os.ReadFile(c.transcriptPath(videoID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cached transcript: %w", err)
	}

	var segments []transcript.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, false, fmt.Errorf("decode cached transcript: %w", err)
	}
	return segments, true, nil
}

// PutTranscript stores the segment list and updates the metadata index.
func (c *Cache) PutTranscript(videoID string, segments []transcript.Segment) error {
	data, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := writeFileAtomic(c.transcriptPath(videoID), data, 0o644); err != nil {
		return err
	}
	c.record(transcriptKey(videoID), len(data))
	return nil
}

// GetSummary returns the cached summary for (video, depth, model).
func (c *Cache) GetSummary(videoID, depth, model string) (string, bool, error) {
	data, err := os.ReadFile(c.summaryPath(videoID, depth, model))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read cached summary: %w", err)
	}
	return string(data), true, nil
}

// PutSummary stores a rendered summary and updates the metadata index.
func (c *Cache) PutSummary(videoID, depth, model, text string) error {
	if err := writeFileAtomic(c.summaryPath(videoID, depth, model), []byte(text), 0o644); err != nil {
		return err
	}
	c.record(summaryKey(videoID, depth, model), len(text))
	return nil
}

func (c *Cache) record(key string, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata[key] = Entry{Timestamp: time.Now().UTC(), Size: size}
	c.saveMetadataLocked()
}

// Cleanup removes entries older than maxAgeDays along with their files
// and returns the number of entries evicted.
func (c *Cache) Cleanup(maxAgeDays int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -maxAgeDays)
	removed := 0

	for key, entry := range c.metadata {
		if !entry.Timestamp.Before(cutoff) {
			continue
		}
		if path, ok := c.pathForKey(key); ok {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) && c.logger != nil {
				c.logger.Warn(context.Background(), "Failed to remove stale cache file %s: %v", path, err)
			}
		}
		delete(c.metadata, key)
		removed++
	}

	if removed > 0 {
		c.saveMetadataLocked()
	}
	return removed
}

// pathForKey resolves a metadata key back to its backing file.
func (c *Cache) pathForKey(key string) (string, bool) {
	if id, ok := strings.CutPrefix(key, "transcript/"); ok {
		return c.transcriptPath(id), true
	}
	if rest, ok := strings.CutPrefix(key, "summary/"); ok {
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) == 3 {
			return c.summaryPath(parts[0], parts[1], parts[2]), true
		}
	}
	return "", false
}

func (c *Cache) saveMetadataLocked() {
	data, err := json.MarshalIndent(c.metadata, "", "  ")
	if err != nil {
		return
	}
	if err := writeFileAtomic(c.metadataPath, data, 0o644); err != nil && c.logger != nil {
		c.logger.Warn(context.Background(), "Failed to save cache metadata: %v", err)
	}
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "cache-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
