package orchestration

import "errors"

var (
	// ErrCaptureUnavailable is reported when no transcription client is
	// configured or capture could not be started.
	ErrCaptureUnavailable = errors.New("capture unavailable")
	// ErrNoSpeechDetected is reported when transcription ended on a no-match
	// or an empty result.
	ErrNoSpeechDetected = errors.New("no speech detected")
	// ErrCaptureFailed wraps an error reported by the transcription client.
	ErrCaptureFailed = errors.New("capture failed")
	// ErrCaptureEnded is reported when capture ended, timed out or was
	// cancelled before any result arrived.
	ErrCaptureEnded = errors.New("capture ended without a result")

	ErrCompletionUnavailable = errors.New("no completion client configured")
)

const (
	stageCapture    = "capture"
	stageCompletion = "completion"
	stageSynthesis  = "synthesis"
	stagePlayback   = "playback"

	outcomeCompleted = "completed"
)
