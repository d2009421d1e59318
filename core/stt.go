package orchestration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/koscakluka/ema-voiceturn/core/audio"
	"github.com/koscakluka/ema-voiceturn/core/speechtotext"
)

type speechToText struct {
	// client stores the configured speech-to-text implementation.
	client SpeechToText

	noSpeechTimeout time.Duration
}

func (s *speechToText) set(client SpeechToText) {
	if s != nil {
		s.client = client
	}
}

func (s *speechToText) isConfigured() bool {
	return s != nil && s.client != nil
}

// start begins transcription for one capture session. It returns once the
// client accepted the request; the outcome arrives on the session.
func (s *speechToText) start(ctx context.Context, session *captureSession, locale string, encodingInfo audio.EncodingInfo) error {
	if !s.isConfigured() {
		return ErrCaptureUnavailable
	}

	opts := append(session.transcriptionOptions(),
		speechtotext.WithLocale(locale),
		speechtotext.WithEncodingInfo(encodingInfo),
	)
	if s.noSpeechTimeout > 0 {
		opts = append(opts, speechtotext.WithNoSpeechTimeout(s.noSpeechTimeout))
	}
	if err := panicSafeNamedWorker("transcription", func(ctx context.Context) error {
		return s.client.Transcribe(ctx, opts...)
	})(ctx); err != nil {
		return fmt.Errorf("%w: failed to start transcribing: %w", ErrCaptureUnavailable, err)
	}
	return nil
}

func (s *speechToText) SendAudio(audio []byte) error {
	if !s.isConfigured() {
		return nil
	}

	return s.client.SendAudio(audio)
}

// captureOutcome is what one listening stage produced: a transcript or one
// of the capture errors.
type captureOutcome struct {
	transcript string
	err        error
}

// captureSession collapses the transcription callbacks of one turn into a
// single outcome. The first outcome wins and later ones are dropped. ended
// closes when the client signals its own end.
type captureSession struct {
	outcome     chan captureOutcome
	deliverOnce sync.Once

	ended   chan struct{}
	endOnce sync.Once
}

func newCaptureSession() *captureSession {
	return &captureSession{
		outcome: make(chan captureOutcome, 1),
		ended:   make(chan struct{}),
	}
}

func (c *captureSession) transcriptionOptions() []speechtotext.TranscriptionOption {
	return []speechtotext.TranscriptionOption{
		speechtotext.WithResultCallback(c.onResult),
		speechtotext.WithNoMatchCallback(func() { c.deliver(captureOutcome{err: ErrNoSpeechDetected}) }),
		speechtotext.WithErrorCallback(func(err error) {
			c.deliver(captureOutcome{err: fmt.Errorf("%w: %w", ErrCaptureFailed, err)})
		}),
		speechtotext.WithEndCallback(c.onEnd),
	}
}

func (c *captureSession) onResult(transcript string) {
	if strings.TrimSpace(transcript) == "" {
		c.deliver(captureOutcome{err: ErrNoSpeechDetected})
		return
	}
	c.deliver(captureOutcome{transcript: transcript})
}

func (c *captureSession) onEnd() {
	c.deliver(captureOutcome{err: ErrCaptureEnded})
	c.endOnce.Do(func() { close(c.ended) })
}

func (c *captureSession) deliver(outcome captureOutcome) {
	delivered := false
	c.deliverOnce.Do(func() {
		c.outcome <- outcome
		delivered = true
	})
	if !delivered && outcome.transcript != "" {
		logger.Debug("ignoring transcription result after the first", "transcript", outcome.transcript)
	}
}
