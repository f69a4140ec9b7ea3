package summarizer

import (
	"context"
	"fmt"
	"time"

	"github.com/astrocyte/Youtube-Summerator/internal/summary"
	"github.com/astrocyte/Youtube-Summerator/internal/textgen"
	"github.com/astrocyte/Youtube-Summerator/pkg/retry"
)

// reduce combines the chunk summaries into the final summary with a
// single generation call, retried under the same policy as the map
// phase.
func (s *implSummarizer) reduce(ctx context.Context, jobID string, chunkSummaries []string, depth summary.Depth, model string) (string, error) {
	s.logger.Info(ctx, "[%s] Reducing %d chunk summaries", jobID, len(chunkSummaries))

	req := textgen.Request{
		Model:       model,
		System:      summary.SystemInstruction(depth),
		Prompt:      summary.ReducePrompt(chunkSummaries),
		MaxTokens:   s.cfg.Summary.MaxTokensFinal,
		Temperature: *s.cfg.Summary.Temperature,
		Timeout:     time.Duration(s.cfg.Summary.TimeoutSeconds) * time.Second,
	}

	text, err := retry.DoValue(ctx, s.retryPolicy(), func() (string, error) {
		return s.generator.Generate(ctx, req)
	})
	if err != nil {
		return "", fmt.Errorf("reduce summaries: %w", err)
	}
	return text, nil
}
