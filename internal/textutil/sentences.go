package textutil

import (
	"regexp"
	"strings"
)

// sentenceBoundary matches terminal punctuation followed by a whitespace run.
// Only the whitespace is consumed by a split; the punctuation stays with the
// sentence it ends.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// SplitSentences trims text and splits it after every '.', '!' or '?' that is
// followed by whitespace. Empty pieces are dropped, so blank input yields nil.
// Abbreviations and decimals are not special-cased.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation byte; keep it, drop the whitespace.
		if piece := text[start : loc[0]+1]; piece != "" {
			sentences = append(sentences, piece)
		}
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// GroupSentences joins consecutive sentences with a single space, size
// sentences per group. The final group holds the remainder.
func GroupSentences(sentences []string, size int) []string {
	if len(sentences) == 0 {
		return nil
	}
	if size <= 0 {
		size = 1
	}
	groups := make([]string, 0, (len(sentences)+size-1)/size)
	for i := 0; i < len(sentences); i += size {
		end := min(i+size, len(sentences))
		groups = append(groups, strings.Join(sentences[i:end], " "))
	}
	return groups
}
