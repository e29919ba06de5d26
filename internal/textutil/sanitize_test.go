package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Voice Memo 12", "voice_memo_12"},
		{"rec-2024_01", "rec-2024_01"},
		{"  ", "unknown"},
		{"***", "unknown"},
		{"Ünïcode", "n_code"},
	}
	for _, tc := range tests {
		if got := SanitizeToken(tc.in); got != tc.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
