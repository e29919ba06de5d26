package services

import "context"

type contextKey string

const (
	audioPathKey contextKey = "audio_path"
	requestIDKey contextKey = "request_id"
)

// WithAudioPath annotates context with the audio file being processed.
func WithAudioPath(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, audioPathKey, path)
}

// AudioPathFromContext returns the audio path if present.
func AudioPathFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(audioPathKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
