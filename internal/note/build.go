package note

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout renders note timestamps at minute precision.
const TimestampLayout = "2006-01-02 15:04"

// Build renders the note for audioPath stamped with the current local time.
func Build(audioPath, text, language string) string {
	return BuildAt(audioPath, text, language, time.Now())
}

// BuildAt renders the note document. The layout is consumed by the vault and
// must stay byte-for-byte stable.
func BuildAt(audioPath, text, language string, at time.Time) string {
	stamp := at.Local().Format(TimestampLayout)
	name := filepath.Base(audioPath)

	var b strings.Builder
	b.Grow(len(text) + 320)

	b.WriteString("---\n")
	b.WriteString("date: " + stamp + "\n")
	b.WriteString("type: inbox\n")
	b.WriteString("source: voice\n")
	b.WriteString("status: unprocessed\n")
	b.WriteString("language: " + language + "\n")
	b.WriteString("audio: \"[[" + name + "]]\"\n")
	b.WriteString("tags:\n")
	b.WriteString("  - review\n")
	b.WriteString("---\n\n")

	b.WriteString("# Voice note " + stamp + "\n\n")

	b.WriteString("> [!note] Source\n")
	b.WriteString("> [[" + name + "]]\n\n")

	b.WriteString("## Transcript\n\n")
	b.WriteString(FormatTranscript(text))
	b.WriteString("\n\n")

	b.WriteString("## Action\n\n")
	b.WriteString("- [ ] Process by: \n")

	return b.String()
}
