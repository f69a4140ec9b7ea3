package summarizer

import (
	"context"
	"time"

	"github.com/astrocyte/Youtube-Summerator/internal/cache"
	"github.com/astrocyte/Youtube-Summerator/internal/chunker"
	"github.com/astrocyte/Youtube-Summerator/internal/config"
	"github.com/astrocyte/Youtube-Summerator/internal/logger"
	"github.com/astrocyte/Youtube-Summerator/internal/textgen"
	"github.com/astrocyte/Youtube-Summerator/internal/token"
	"github.com/astrocyte/Youtube-Summerator/internal/transcript"
	"github.com/astrocyte/Youtube-Summerator/pkg/retry"
)

type implSummarizer struct {
	cfg         *config.Config
	logger      logger.Logger
	counter     token.Counter
	chunker     *chunker.Chunker
	generator   textgen.Client
	transcripts transcript.Client
	store       *cache.Cache

	sleep func(context.Context, time.Duration) error
	now   func() time.Time
}

// New wires the pipeline together. All collaborators are injected so
// tests can substitute fakes.
func New(
	cfg *config.Config,
	counter token.Counter,
	generator textgen.Client,
	transcripts transcript.Client,
	store *cache.Cache,
	log logger.Logger,
) Summarizer {
	return &implSummarizer{
		cfg:         cfg,
		logger:      log,
		counter:     counter,
		chunker:     chunker.New(counter),
		generator:   generator,
		transcripts: transcripts,
		store:       store,
		sleep:       retry.SleepWithContext,
		now:         time.Now,
	}
}

func (s *implSummarizer) retryPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries: s.cfg.Retry.MaxRetries,
		BaseDelay:  time.Duration(s.cfg.Retry.BaseDelaySeconds * float64(time.Second)),
		MaxDelay:   time.Duration(s.cfg.Retry.MaxDelaySeconds * float64(time.Second)),
		Classify:   classifyGeneration,
		Sleep:      s.sleep,
	}
}

// classifyGeneration anchors the retry taxonomy to textgen's error
// helpers, so sentinel-wrapped failures classify the same way as raw
// backend messages. Credential failures are never retried.
func classifyGeneration(err error) retry.Kind {
	switch {
	case textgen.IsAuth(err):
		return retry.KindFatal
	case textgen.IsRateLimited(err):
		return retry.KindRateLimited
	}
	return retry.KindTransient
}
