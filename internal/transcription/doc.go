// Package transcription exposes the speech-to-text gateway used by the note
// pipeline. The engine handle is opened on first use and shared afterwards.
package transcription
