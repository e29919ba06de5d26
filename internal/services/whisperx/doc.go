// Package whisperx runs the WhisperX speech-to-text CLI through uvx and reads
// back its JSON transcript.
//
// Each Transcribe call writes into a private temporary directory that is
// removed afterwards, so concurrent calls never share output files. Tests
// replace process execution with WithCommandRunner.
package whisperx
