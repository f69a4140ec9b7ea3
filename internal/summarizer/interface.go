package summarizer

import (
	"context"
	"errors"

	"github.com/astrocyte/Youtube-Summerator/internal/summary"
	"github.com/astrocyte/Youtube-Summerator/internal/transcript"
)

// ErrAllChunksFailed is returned when no chunk produced a summary, so
// there is nothing to reduce.
var ErrAllChunksFailed = errors.New("all chunks failed to summarize")

// Progress is a snapshot of a running job, delivered after each chunk.
type Progress struct {
	CurrentChunk int
	TotalChunks  int
	ETASeconds   float64
}

// ProgressFunc receives progress snapshots. It is called from the job's
// goroutine, so it must be fast.
type ProgressFunc func(Progress)

// Result is the outcome of one summarization job.
type Result struct {
	JobID        string
	VideoID      string
	Title        string
	Summary      string
	Depth        summary.Depth
	Model        string
	ChunkCount   int
	FailedChunks int
	FromCache    bool
	Segments     []transcript.Segment
}

// Summarizer runs the full pipeline for one video: transcript, chunking,
// per-chunk summarization and the final reduce. SummarizeText runs the
// same map-reduce over caller-supplied text, skipping transcript fetch
// and caching.
type Summarizer interface {
	SummarizeVideo(ctx context.Context, input string, depth summary.Depth, model string, onProgress ProgressFunc) (*Result, error)
	SummarizeText(ctx context.Context, text string, depth summary.Depth, model string, onProgress ProgressFunc) (*Result, error)
}
