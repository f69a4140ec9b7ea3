package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/astrocyte/Youtube-Summerator/internal/chunker"
	"github.com/astrocyte/Youtube-Summerator/internal/summary"
	"github.com/astrocyte/Youtube-Summerator/internal/token"
	"github.com/astrocyte/Youtube-Summerator/internal/transcript"
	"github.com/astrocyte/Youtube-Summerator/internal/video"
	"github.com/astrocyte/Youtube-Summerator/pkg/retry"
)

// SummarizeVideo runs the pipeline for one video reference (URL or bare
// id). Cached summaries short-circuit the whole run; cached transcripts
// skip the fetch. A chunk that fails all its retries is skipped and the
// reduce runs over the chunks that succeeded; only a run with zero
// successful chunks fails.
func (s *implSummarizer) SummarizeVideo(ctx context.Context, input string, depth summary.Depth, model string, onProgress ProgressFunc) (*Result, error) {
	if _, err := summary.ParseDepth(string(depth)); err != nil {
		return nil, err
	}
	if model == "" {
		model = s.cfg.Summary.DefaultModel
	}

	videoID, err := video.ExtractID(input)
	if err != nil {
		return nil, err
	}

	jobID := uuid.NewString()
	s.logger.Info(ctx, "[%s] Summarizing %s (depth=%s, model=%s)", jobID, videoID, depth, model)

	if text, ok, err := s.store.GetSummary(videoID, depth.String(), model); err != nil {
		return nil, err
	} else if ok {
		s.logger.Info(ctx, "[%s] Using cached summary", jobID)
		return &Result{
			JobID:     jobID,
			VideoID:   videoID,
			Title:     s.transcripts.FetchTitle(ctx, videoID),
			Summary:   text,
			Depth:     depth,
			Model:     model,
			FromCache: true,
		}, nil
	}

	title := s.transcripts.FetchTitle(ctx, videoID)

	segments, err := s.loadTranscript(ctx, jobID, videoID)
	if err != nil {
		return nil, err
	}

	fullText := transcript.FullText(segments)
	if strings.TrimSpace(fullText) == "" {
		return nil, transcript.ErrNotAvailable
	}

	finalSummary, chunkCount, failed, err := s.mapReduce(ctx, jobID, fullText, depth, model, onProgress)
	if err != nil {
		return nil, err
	}

	if err := s.store.PutSummary(videoID, depth.String(), model, finalSummary); err != nil {
		s.logger.Warn(ctx, "[%s] Could not cache summary: %v", jobID, err)
	}

	s.logger.Info(ctx, "[%s] Done", jobID)
	return &Result{
		JobID:        jobID,
		VideoID:      videoID,
		Title:        title,
		Summary:      finalSummary,
		Depth:        depth,
		Model:        model,
		ChunkCount:   chunkCount,
		FailedChunks: failed,
		Segments:     segments,
	}, nil
}

// SummarizeText runs the map-reduce over raw text. Nothing is fetched or
// cached; the caller owns the text's lifecycle.
func (s *implSummarizer) SummarizeText(ctx context.Context, text string, depth summary.Depth, model string, onProgress ProgressFunc) (*Result, error) {
	if _, err := summary.ParseDepth(string(depth)); err != nil {
		return nil, err
	}
	if model == "" {
		model = s.cfg.Summary.DefaultModel
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("nothing to summarize: empty text")
	}

	jobID := uuid.NewString()
	s.logger.Info(ctx, "[%s] Summarizing raw text (depth=%s, model=%s)", jobID, depth, model)

	finalSummary, chunkCount, failed, err := s.mapReduce(ctx, jobID, text, depth, model, onProgress)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "[%s] Done", jobID)
	return &Result{
		JobID:        jobID,
		Summary:      finalSummary,
		Depth:        depth,
		Model:        model,
		ChunkCount:   chunkCount,
		FailedChunks: failed,
	}, nil
}

// mapReduce chunks the text, summarizes each chunk and reduces the
// survivors into the final summary.
func (s *implSummarizer) mapReduce(ctx context.Context, jobID, text string, depth summary.Depth, model string, onProgress ProgressFunc) (string, int, int, error) {
	totalTokens := s.counter.Count(text, model)
	limits := chunker.LimitsFor(
		token.ContextWindow(model),
		s.cfg.Chunking.ReservedTokens,
		s.cfg.Chunking.ChunkSizeRatio,
		s.cfg.Chunking.ChunkOverlapRatio,
	)
	chunks := s.chunker.Split(text, model, limits)
	s.logger.Info(ctx, "[%s] Input is %d tokens, split into %d chunks (budget %d)",
		jobID, totalTokens, len(chunks), limits.MaxChunkTokens)

	chunkSummaries, failed, err := s.summarizeChunks(ctx, jobID, chunks, depth, model, onProgress)
	if err != nil {
		return "", 0, 0, err
	}
	if len(chunkSummaries) == 0 {
		return "", 0, 0, fmt.Errorf("%w: %d chunks", ErrAllChunksFailed, len(chunks))
	}
	if failed > 0 {
		s.logger.Warn(ctx, "[%s] %d of %d chunks failed, summary covers the rest", jobID, failed, len(chunks))
	}

	finalSummary := chunkSummaries[0]
	if len(chunkSummaries) > 1 {
		finalSummary, err = s.reduce(ctx, jobID, chunkSummaries, depth, model)
		if err != nil {
			return "", 0, 0, err
		}
	}

	return finalSummary, len(chunks), failed, nil
}

// loadTranscript serves the transcript from cache when possible,
// otherwise fetches it with retries and caches the result. A video with
// no captions is not retried.
func (s *implSummarizer) loadTranscript(ctx context.Context, jobID, videoID string) ([]transcript.Segment, error) {
	if segments, ok, err := s.store.GetTranscript(videoID); err != nil {
		return nil, err
	} else if ok {
		s.logger.Debug(ctx, "[%s] Using cached transcript", jobID)
		return segments, nil
	}

	policy := s.retryPolicy()
	policy.Classify = func(err error) retry.Kind {
		if errors.Is(err, transcript.ErrNotAvailable) {
			return retry.KindFatal
		}
		return classifyGeneration(err)
	}

	segments, err := retry.DoValue(ctx, policy, func() ([]transcript.Segment, error) {
		return s.transcripts.Fetch(ctx, videoID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}

	if err := s.store.PutTranscript(videoID, segments); err != nil {
		s.logger.Warn(ctx, "[%s] Could not cache transcript: %v", jobID, err)
	}
	return segments, nil
}
