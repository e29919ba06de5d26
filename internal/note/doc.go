// Package note turns a single audio recording into a Markdown vault note.
//
// Pipeline.Process applies the skip rules (unsupported extension, existing
// note), transcribes through a Transcriber, and writes the note next to the
// audio file. Build and FormatTranscript are pure and usable on their own.
package note
