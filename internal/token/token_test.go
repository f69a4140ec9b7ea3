package token

import "testing"

func TestContextWindow(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"gpt-4", 8192},
		{"gpt-3.5-turbo-16k", 16385},
		{"gpt-4-turbo", 128000},
		{"gemini-2.5-flash", 1048576},
		{"some-unknown-model", 4096},
		{"", 4096},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := ContextWindow(tt.model); got != tt.want {
				t.Errorf("ContextWindow(%q) = %d, want %d", tt.model, got, tt.want)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short text floors to one", "hi", 1},
		{"four chars per token", "abcdefgh", 2},
		{"longer text", "The quick brown fox jumps over the lazy dog.", 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateCounterDeterministic(t *testing.T) {
	c := EstimateCounter{}
	text := "One sentence. Another sentence follows it."

	first := c.Count(text, "any-model")
	for i := 0; i < 5; i++ {
		if got := c.Count(text, "any-model"); got != first {
			t.Fatalf("Count not deterministic: %d != %d", got, first)
		}
	}
	if first <= 0 {
		t.Errorf("Count = %d, want positive", first)
	}
}
