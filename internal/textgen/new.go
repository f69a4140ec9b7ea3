package textgen

import (
	"sync"

	"github.com/astrocyte/Youtube-Summerator/internal/logger"
)

type implClient struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
}

// New creates a Client backed by the Gemini API, rotating through the
// supplied API keys when one is rate limited.
func New(apiKeys []string, log logger.Logger) Client {
	return &implClient{
		apiKeys: apiKeys,
		logger:  log,
	}
}
