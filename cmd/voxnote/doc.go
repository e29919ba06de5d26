// Command voxnote transcribes a voice recording with WhisperX and writes a
// Markdown note next to it.
//
// Usage:
//
//	voxnote <audio> [--model small] [--language auto]
//	voxnote transcribe <audio>
//	voxnote history [--limit N]
//	voxnote doctor
//	voxnote config init|validate
//
// Exit status is 0 when the file was processed or skipped, 2 when the audio
// file does not exist, and 1 for any other failure.
package main
