package textgen

import (
	"context"
	"time"
)

// Request describes one text-generation call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client defines the interface to a text-generation backend
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}
