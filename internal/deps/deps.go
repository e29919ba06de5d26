package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"voxnote/internal/config"
	"voxnote/internal/services/whisperx"
)

// Requirement defines an external dependency voxnote relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Requirements lists the external binaries the configured transcription
// engine needs: the runner that launches WhisperX and ffmpeg, which WhisperX
// uses to decode audio.
func Requirements(cfg *config.Config) []Requirement {
	runner := whisperx.UVXCommand
	if cfg != nil && strings.TrimSpace(cfg.Transcription.Runner) != "" {
		runner = strings.TrimSpace(cfg.Transcription.Runner)
	}
	return []Requirement{
		{
			Name:        "WhisperX runner",
			Command:     runner,
			Description: "Launches whisperx for transcription",
		},
		{
			Name:        "FFmpeg",
			Command:     whisperx.FFmpegCommand,
			Description: "Decodes audio for whisperx",
		},
	}
}

// Missing returns the required dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
