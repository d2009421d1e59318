package orchestration

import (
	"context"
	"time"

	"github.com/koscakluka/ema-voiceturn/core/audio"
	"github.com/koscakluka/ema-voiceturn/core/conversations"
	"github.com/koscakluka/ema-voiceturn/core/events"
	"github.com/koscakluka/ema-voiceturn/core/speechtotext"
	"github.com/koscakluka/ema-voiceturn/core/texttospeech"
)

const (
	DefaultListenTimeout     = 15 * time.Second
	DefaultNoSpeechTimeout   = 8 * time.Second
	DefaultCompletionTimeout = 30 * time.Second
	DefaultSynthesisTimeout  = 30 * time.Second
)

type OrchestratorOption func(*Orchestrator)

type SpeechToText interface {
	Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	SendAudio(audio []byte) error
}

func WithSpeechToTextClient(client SpeechToText) OrchestratorOption {
	return func(o *Orchestrator) { o.speechToText.set(client) }
}

type AudioInput interface {
	EncodingInfo() audio.EncodingInfo
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
}

func WithAudioInput(client AudioInput) OrchestratorOption {
	return func(o *Orchestrator) { o.audioInput.set(client) }
}

// Completer produces one reply for the transcript. The transcript already
// contains the newest user turn.
type Completer interface {
	Complete(ctx context.Context, systemDirective string, transcript []conversations.Turn) (string, error)
}

func WithCompletionClient(client Completer) OrchestratorOption {
	return func(o *Orchestrator) { o.llm.set(client) }
}

type TextToSpeech interface {
	Synthesize(ctx context.Context, text string, opts ...texttospeech.TextToSpeechOption) ([]byte, error)
}

func WithTextToSpeechClient(client TextToSpeech) OrchestratorOption {
	return func(o *Orchestrator) { o.textToSpeech.set(client) }
}

// AudioOutput is a single-slot playback sink: audio handed to it replaces
// whatever is still playing once the buffer is cleared.
type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer()
}

func WithAudioOutput(client AudioOutput) OrchestratorOption {
	return func(o *Orchestrator) { o.audioOutput.set(client) }
}

func WithSystemDirective(directive string) OrchestratorOption {
	return func(o *Orchestrator) {
		if directive != "" {
			o.systemDirective = directive
		}
	}
}

func WithLocale(locale string) OrchestratorOption {
	return func(o *Orchestrator) {
		if locale != "" {
			o.locale = locale
		}
	}
}

// WithListenTimeout bounds how long a turn waits for a transcription
// outcome. Zero or negative values keep the default.
func WithListenTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.listenTimeout = timeout
		}
	}
}

// WithNoSpeechTimeout is passed to the transcription client, which reports
// no speech when nothing was said within it. Zero or negative values keep
// the default.
func WithNoSpeechTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.speechToText.noSpeechTimeout = timeout
		}
	}
}

func WithCompletionTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.llm.timeout = timeout
		}
	}
}

func WithSynthesisTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.textToSpeech.timeout = timeout
		}
	}
}

// EventHandler receives every event of every turn on the turn's goroutine.
// Events of one turn arrive in order. TurnEnded arrives while the turn still
// holds the orchestrator, so it precedes every event of the next turn; only
// the final change to idle may interleave with the next turn's first event.
// It should not block.
type EventHandler func(event events.Event)

func WithEventHandler(handler EventHandler) OrchestratorOption {
	return func(o *Orchestrator) {
		if handler != nil {
			o.emitEvent = eventEmitter(handler)
		}
	}
}
