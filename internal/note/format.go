package note

import (
	"strings"

	"voxnote/internal/textutil"
)

// SentencesPerParagraph is the paragraph size used by FormatTranscript.
const SentencesPerParagraph = 3

// FormatTranscript regroups text into paragraphs of three sentences separated
// by blank lines. Input without any sentence is returned unchanged.
func FormatTranscript(text string) string {
	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return text
	}
	return strings.Join(textutil.GroupSentences(sentences, SentencesPerParagraph), "\n\n")
}
