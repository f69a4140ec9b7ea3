package chunker

import (
	"math"
	"strings"

	"github.com/astrocyte/Youtube-Summerator/internal/token"
)

// Chunk is a bounded contiguous slice of the transcript used as a unit of
// independent summarization. TokenCount is the count of Text under the
// model the split was performed for.
type Chunk struct {
	Text       string
	TokenCount int
}

// Limits bounds a single chunk and the verbatim overlap carried between
// consecutive chunks.
type Limits struct {
	MaxChunkTokens int
	OverlapTokens  int
}

// LimitsFor derives chunking limits from a model context window.
// The chunk budget is the smaller of (window - reserved) and
// floor(window * sizeRatio); the overlap budget is a fraction of that.
func LimitsFor(contextWindow, reservedTokens int, sizeRatio, overlapRatio float64) Limits {
	maxChunk := contextWindow - reservedTokens
	if scaled := int(math.Floor(float64(contextWindow) * sizeRatio)); scaled < maxChunk {
		maxChunk = scaled
	}
	if maxChunk < 1 {
		maxChunk = 1
	}
	return Limits{
		MaxChunkTokens: maxChunk,
		OverlapTokens:  int(math.Floor(float64(maxChunk) * overlapRatio)),
	}
}

type Chunker struct {
	counter token.Counter
}

// New creates a Chunker using the supplied token counter.
func New(counter token.Counter) *Chunker {
	return &Chunker{counter: counter}
}

// Split converts one long text into ordered, overlapping chunks.
//
// Boundaries fall on sentence boundaries. A chunk closes when the next
// sentence would push it past the token budget; the following chunk is
// seeded with trailing sentences from the closed chunk, selected greedily
// from the end until the next sentence would exceed the overlap budget.
// A single sentence larger than the budget becomes its own oversized
// chunk, uncut. Empty input yields no chunks.
func (c *Chunker) Split(text, model string, limits Limits) []Chunk {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []Chunk
	var current []string
	currentTokens := 0

	for _, sentence := range sentences {
		n := c.counter.Count(sentence, model)

		if currentTokens+n > limits.MaxChunkTokens && len(current) > 0 {
			chunks = append(chunks, c.emit(current, model))

			overlap := c.selectOverlap(current, model, limits.OverlapTokens)
			current = current[:0:0]
			current = append(current, overlap...)
			currentTokens = 0
			for _, s := range current {
				currentTokens += c.counter.Count(s, model)
			}
		}

		current = append(current, sentence)
		currentTokens += n
	}

	if len(current) > 0 {
		chunks = append(chunks, c.emit(current, model))
	}

	return chunks
}

// selectOverlap picks trailing sentences whose accumulated token count
// stays within the overlap budget, preserving their original order.
func (c *Chunker) selectOverlap(sentences []string, model string, overlapBudget int) []string {
	count := 0
	tokens := 0
	for i := len(sentences) - 1; i >= 0; i-- {
		n := c.counter.Count(sentences[i], model)
		if tokens+n > overlapBudget {
			break
		}
		count++
		tokens += n
	}
	if count == 0 {
		return nil
	}
	return sentences[len(sentences)-count:]
}

func (c *Chunker) emit(sentences []string, model string) Chunk {
	text := strings.Join(sentences, " ")
	return Chunk{
		Text:       text,
		TokenCount: c.counter.Count(text, model),
	}
}
