package token

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// defaultContextWindow is assumed for models missing from the profile table.
const defaultContextWindow = 4096

// contextWindows maps model identifiers to their context window in tokens.
var contextWindows = map[string]int{
	"gpt-3.5-turbo":     4096,
	"gpt-3.5-turbo-16k": 16385,
	"gpt-4":             8192,
	"gpt-4-turbo":       128000,
	"gpt-4o":            128000,
	"gpt-4o-mini":       128000,
	"gemini-2.0-flash":  1048576,
	"gemini-2.5-flash":  1048576,
	"gemini-2.5-pro":    1048576,
}

// ContextWindow returns the context window size for a model identifier.
// Unrecognized models get the conservative default, never an error.
func ContextWindow(model string) int {
	if window, ok := contextWindows[model]; ok {
		return window
	}
	return defaultContextWindow
}

// Counter counts tokens for a text under a named model's tokenization scheme.
// Implementations must be deterministic and pure in (text, model).
type Counter interface {
	Count(text, model string) int
}

type implCounter struct {
	mu        sync.Mutex
	encodings map[string]*tiktoken.Tiktoken
}

// New creates a Counter backed by BPE encodings where the model is
// recognized, falling back to the heuristic estimate otherwise.
func New() Counter {
	return &implCounter{
		encodings: make(map[string]*tiktoken.Tiktoken),
	}
}

func (c *implCounter) Count(text, model string) int {
	if text == "" {
		return 0
	}

	enc := c.encoding(model)
	if enc == nil {
		return Estimate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func (c *implCounter) encoding(model string) *tiktoken.Tiktoken {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enc, ok := c.encodings[model]; ok {
		return enc
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc = nil // unknown model, remember the miss
	}
	c.encodings[model] = enc
	return enc
}

// Estimate approximates a token count as one token per four characters,
// with a floor of one token for non-empty text.
func Estimate(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// EstimateCounter is a Counter that always uses the heuristic estimate.
// It keeps tests hermetic and serves as the offline fallback.
type EstimateCounter struct{}

func (EstimateCounter) Count(text, model string) int {
	return Estimate(text)
}
