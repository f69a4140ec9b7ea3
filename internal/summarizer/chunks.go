package summarizer

import (
	"context"
	"time"

	"github.com/astrocyte/Youtube-Summerator/internal/chunker"
	"github.com/astrocyte/Youtube-Summerator/internal/summary"
	"github.com/astrocyte/Youtube-Summerator/internal/textgen"
	"github.com/astrocyte/Youtube-Summerator/pkg/retry"
)

// adaptiveDelayTokenDivisor scales the pause between chunk requests with
// chunk size, so bigger requests give the API more breathing room.
const adaptiveDelayTokenDivisor = 500

// summarizeChunks runs the map phase: each chunk is summarized in order,
// with retries, and a failed chunk is skipped rather than aborting the
// run. Only cancellation and credential failures propagate.
func (s *implSummarizer) summarizeChunks(ctx context.Context, jobID string, chunks []chunker.Chunk, depth summary.Depth, model string, onProgress ProgressFunc) ([]string, int, error) {
	tracker := newProgressTracker(len(chunks), s.now)
	summaries := make([]string, 0, len(chunks))
	failed := 0

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		text, err := s.summarizeChunk(ctx, chunk, depth, model, i, len(chunks))
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			// A credential failure would fail every remaining chunk the
			// same way, so it aborts the run instead of being skipped.
			if textgen.IsAuth(err) {
				return nil, 0, err
			}
			failed++
			s.logger.Warn(ctx, "[%s] Chunk %d/%d failed: %v", jobID, i+1, len(chunks), err)
		} else {
			summaries = append(summaries, text)
			s.logger.Debug(ctx, "[%s] Chunk %d/%d summarized", jobID, i+1, len(chunks))
		}

		if onProgress != nil {
			onProgress(tracker.step())
		}

		if i < len(chunks)-1 {
			delay := s.adaptiveDelay(chunk.TokenCount)
			s.logger.Debug(ctx, "[%s] Waiting %s before next chunk", jobID, delay)
			if err := s.sleep(ctx, delay); err != nil {
				return nil, 0, err
			}
		}
	}

	return summaries, failed, nil
}

func (s *implSummarizer) summarizeChunk(ctx context.Context, chunk chunker.Chunk, depth summary.Depth, model string, index, total int) (string, error) {
	req := textgen.Request{
		Model:       model,
		System:      summary.SystemInstruction(depth),
		Prompt:      summary.ChunkPrompt(depth, chunk.Text, index, total),
		MaxTokens:   s.cfg.Summary.MaxTokensPerChunk,
		Temperature: *s.cfg.Summary.Temperature,
		Timeout:     time.Duration(s.cfg.Summary.TimeoutSeconds) * time.Second,
	}

	return retry.DoValue(ctx, s.retryPolicy(), func() (string, error) {
		return s.generator.Generate(ctx, req)
	})
}

// adaptiveDelay scales with chunk size and clamps to the configured
// bounds.
func (s *implSummarizer) adaptiveDelay(chunkTokens int) time.Duration {
	seconds := chunkTokens / adaptiveDelayTokenDivisor
	if min := *s.cfg.Summary.AdaptiveDelayMinSecs; seconds < min {
		seconds = min
	}
	if seconds > s.cfg.Summary.AdaptiveDelayMaxSecs {
		seconds = s.cfg.Summary.AdaptiveDelayMaxSecs
	}
	return time.Duration(seconds) * time.Second
}
