// Package services defines shared utilities consumed by the note pipeline and
// the external transcription integration.
//
// Key responsibilities:
//   - Context helpers that stamp the audio path and correlation identifiers
//     for logging.
//   - Structured error markers plus the Wrap helper so the CLI can map
//     failures onto distinct exit codes (caller error vs runtime failure).
//
// Use these helpers when wiring new components so error classification and
// log shape stay uniform.
package services
