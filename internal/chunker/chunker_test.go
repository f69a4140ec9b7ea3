package chunker

import (
	"fmt"
	"strings"
	"testing"
)

// wordCounter counts whitespace-separated words. Joining sentences with
// single spaces keeps counts exactly additive, so chunk accounting can be
// asserted without a live BPE dictionary.
type wordCounter struct{}

func (wordCounter) Count(text, model string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// makeTranscript builds n sentences of wordsPer words each.
func makeTranscript(n, wordsPer int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		for w := 0; w < wordsPer-1; w++ {
			fmt.Fprintf(&b, "word%d ", w)
		}
		fmt.Fprintf(&b, "sentence%d.", i)
		if i < n-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "single sentence without trailing space",
			text: "Just one sentence.",
			want: []string{"Just one sentence."},
		},
		{
			name: "period exclamation question",
			text: "First one. Second one! Third one? Fourth one.",
			want: []string{"First one.", "Second one!", "Third one?", "Fourth one."},
		},
		{
			name: "punctuation runs stay attached",
			text: "Wait... Really?! Yes.",
			want: []string{"Wait...", "Really?!", "Yes."},
		},
		{
			name: "no split without following whitespace",
			text: "Version 2.5 is out. It works.",
			want: []string{"Version 2.5 is out.", "It works."},
		},
		{
			name: "newlines count as whitespace",
			text: "Line one.\nLine two.",
			want: []string{"Line one.", "Line two."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitSentences() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		name        string
		window      int
		reserved    int
		sizeRatio   float64
		overlap     float64
		wantMax     int
		wantOverlap int
	}{
		{"ratio bound wins", 16000, 1000, 0.4, 0.1, 6400, 640},
		{"reserved bound wins", 4096, 1000, 0.9, 0.1, 3096, 309},
		{"large window", 128000, 1000, 0.4, 0.1, 51200, 5120},
		{"floor to at least one", 100, 100, 0.0, 0.1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := LimitsFor(tt.window, tt.reserved, tt.sizeRatio, tt.overlap)
			if limits.MaxChunkTokens != tt.wantMax {
				t.Errorf("MaxChunkTokens = %d, want %d", limits.MaxChunkTokens, tt.wantMax)
			}
			if limits.OverlapTokens != tt.wantOverlap {
				t.Errorf("OverlapTokens = %d, want %d", limits.OverlapTokens, tt.wantOverlap)
			}
		})
	}
}

func TestSplitEmptyInput(t *testing.T) {
	c := New(wordCounter{})
	if chunks := c.Split("", "m", Limits{MaxChunkTokens: 100, OverlapTokens: 10}); chunks != nil {
		t.Errorf("Split(empty) = %v, want nil", chunks)
	}
}

func TestSplitSingleChunkWhenUnderBudget(t *testing.T) {
	c := New(wordCounter{})
	text := makeTranscript(10, 10) // 100 tokens

	chunks := c.Split(text, "m", Limits{MaxChunkTokens: 100, OverlapTokens: 10})
	if len(chunks) != 1 {
		t.Fatalf("chunk count = %d, want 1", len(chunks))
	}
	if chunks[0].TokenCount != 100 {
		t.Errorf("TokenCount = %d, want 100", chunks[0].TokenCount)
	}
	if chunks[0].Text != text {
		t.Errorf("single chunk text differs from input")
	}
}

func TestSplitScenarioTwoChunks(t *testing.T) {
	// 9000-token transcript against a 16000-token context window:
	// maxChunkTokens = min(15000, 6400) = 6400, overlap = 640.
	c := New(wordCounter{})
	limits := LimitsFor(16000, 1000, 0.4, 0.1)
	text := makeTranscript(900, 10) // 9000 tokens

	chunks := c.Split(text, "m", limits)
	if len(chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.TokenCount > limits.MaxChunkTokens {
			t.Errorf("chunk %d TokenCount = %d, exceeds budget %d", i, chunk.TokenCount, limits.MaxChunkTokens)
		}
	}

	// Overlap region should carry close to the full overlap budget.
	prev := SplitSentences(chunks[0].Text)
	cur := SplitSentences(chunks[1].Text)
	overlap := overlapLength(prev, cur)
	overlapTokens := 0
	for _, s := range cur[:overlap] {
		overlapTokens += (wordCounter{}).Count(s, "m")
	}
	if overlapTokens > 640 {
		t.Errorf("overlap tokens = %d, exceeds budget 640", overlapTokens)
	}
	if overlapTokens < 600 {
		t.Errorf("overlap tokens = %d, expected close to 640", overlapTokens)
	}
}

func TestSplitOversizedSentence(t *testing.T) {
	// A single 1500-token sentence against an 800-token budget must come
	// through as exactly one chunk, uncut.
	c := New(wordCounter{})
	var b strings.Builder
	for i := 0; i < 1499; i++ {
		fmt.Fprintf(&b, "w%d ", i)
	}
	b.WriteString("end.")
	sentence := b.String()

	chunks := c.Split(sentence, "m", Limits{MaxChunkTokens: 800, OverlapTokens: 80})
	if len(chunks) != 1 {
		t.Fatalf("chunk count = %d, want 1", len(chunks))
	}
	if chunks[0].Text != sentence {
		t.Error("oversized sentence was cut")
	}
	if chunks[0].TokenCount != 1500 {
		t.Errorf("TokenCount = %d, want 1500", chunks[0].TokenCount)
	}
}

func TestSplitOversizedSentenceAmongOthers(t *testing.T) {
	c := New(wordCounter{})
	var b strings.Builder
	b.WriteString("Short opener here now. ")
	for i := 0; i < 49; i++ {
		fmt.Fprintf(&b, "w%d ", i)
	}
	b.WriteString("giant.")
	b.WriteString(" Short closer here now.")

	chunks := c.Split(b.String(), "m", Limits{MaxChunkTokens: 20, OverlapTokens: 2})
	for _, chunk := range chunks {
		sentences := SplitSentences(chunk.Text)
		if chunk.TokenCount > 20 && len(sentences) > 1 {
			t.Errorf("oversized chunk holds %d sentences, want the single giant one", len(sentences))
		}
	}
}

func TestSplitReconstruction(t *testing.T) {
	// Removing overlap regions must reproduce the original sentence
	// sequence with nothing dropped or duplicated.
	c := New(wordCounter{})
	text := makeTranscript(137, 7)
	limits := Limits{MaxChunkTokens: 120, OverlapTokens: 21}

	chunks := c.Split(text, "m", limits)
	if len(chunks) < 2 {
		t.Fatalf("want multiple chunks, got %d", len(chunks))
	}

	var rebuilt []string
	var prev []string
	for _, chunk := range chunks {
		cur := SplitSentences(chunk.Text)
		skip := overlapLength(prev, cur)
		rebuilt = append(rebuilt, cur[skip:]...)
		prev = cur
	}

	original := SplitSentences(text)
	if len(rebuilt) != len(original) {
		t.Fatalf("rebuilt %d sentences, want %d", len(rebuilt), len(original))
	}
	for i := range original {
		if rebuilt[i] != original[i] {
			t.Fatalf("sentence %d = %q, want %q", i, rebuilt[i], original[i])
		}
	}
}

func TestSplitChunkStartsWithPreviousTail(t *testing.T) {
	c := New(wordCounter{})
	text := makeTranscript(60, 10)
	chunks := c.Split(text, "m", Limits{MaxChunkTokens: 200, OverlapTokens: 30})
	if len(chunks) < 2 {
		t.Fatalf("want multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := SplitSentences(chunks[i-1].Text)
		cur := SplitSentences(chunks[i].Text)
		if overlapLength(prev, cur) == 0 {
			t.Errorf("chunk %d does not begin with trailing sentences of chunk %d", i, i-1)
		}
	}
}

// overlapLength returns the longest k such that the last k sentences of
// prev equal the first k sentences of cur.
func overlapLength(prev, cur []string) int {
	max := len(prev)
	if len(cur) < max {
		max = len(cur)
	}
	for k := max; k > 0; k-- {
		match := true
		for i := 0; i < k; i++ {
			if prev[len(prev)-k+i] != cur[i] {
				match = false
				break
			}
		}
		if match {
			return k
		}
	}
	return 0
}
