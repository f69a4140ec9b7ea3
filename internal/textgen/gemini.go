package textgen

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generate sends one generation request to Gemini. A rate-limited key is
// rotated out and the call is repeated with the next key; once every key
// has been tried the last rate-limit error is returned for the caller's
// retry controller to back off on.
func (c *implClient) Generate(ctx context.Context, req Request) (string, error) {
	if len(c.apiKeys) == 0 {
		return "", fmt.Errorf("%w: no API keys configured", ErrAuth)
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	attempts := len(c.apiKeys)
	var lastErr error

	for range attempts {
		keyIndex, key := c.activeKey()

		text, err := c.generateWithKey(ctx, key, req)
		if err == nil {
			return text, nil
		}

		if IsRateLimited(err) {
			c.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
			c.rotateKey()
			lastErr = fmt.Errorf("%w: %v", ErrRateLimited, err)
			continue
		}
		if IsAuth(err) {
			return "", fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *implClient) generateWithKey(ctx context.Context, key string, req Request) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	cfg.Temperature = genai.Ptr(float32(req.Temperature))

	result, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		if text != "" {
			return text, nil
		}
	}

	return "", ErrEmptyResponse
}

func (c *implClient) activeKey() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

func (c *implClient) rotateKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}
