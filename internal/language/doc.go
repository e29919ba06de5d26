// Package language normalizes the language preference passed to the
// transcription engine and the codes it reports back.
//
// It owns the "auto" sentinel, maps ISO 639-2 codes and English words onto
// ISO 639-1 hints, and falls back to golang.org/x/text for tags outside the
// built-in table.
package language
