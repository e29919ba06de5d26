package note

import (
	"path/filepath"
	"strings"
)

// Extension is appended to the audio stem to form the note path.
const Extension = ".md"

var supportedExtensions = map[string]struct{}{
	".m4a":  {},
	".mp3":  {},
	".wav":  {},
	".ogg":  {},
	".opus": {},
	".webm": {},
	".flac": {},
}

// IsSupported reports whether path has an audio extension voxnote handles.
// The comparison is case-insensitive and needs no filesystem access.
func IsSupported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// SupportedExtensions lists the accepted audio extensions in a stable order.
func SupportedExtensions() []string {
	return []string{".m4a", ".mp3", ".wav", ".ogg", ".opus", ".webm", ".flac"}
}

// NotePath returns the sibling note path for audioPath: same directory, same
// stem, extension replaced with .md.
func NotePath(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + Extension
}
