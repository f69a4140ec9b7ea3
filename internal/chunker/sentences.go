package chunker

import (
	"strings"
	"unicode"
)

// SplitSentences splits text into sentences on `.`, `!` or `?` followed by
// whitespace. The separating whitespace is dropped; sentences keep their
// terminal punctuation. Runs of punctuation ("...", "?!") stay attached to
// the sentence they end.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		b.WriteRune(r)

		if isTerminator(r) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, b.String())
			b.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}

	if tail := strings.TrimSpace(b.String()); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
