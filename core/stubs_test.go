package orchestration

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/koscakluka/ema-voiceturn/core/audio"
	"github.com/koscakluka/ema-voiceturn/core/conversations"
	"github.com/koscakluka/ema-voiceturn/core/events"
	"github.com/koscakluka/ema-voiceturn/core/speechtotext"
	"github.com/koscakluka/ema-voiceturn/core/texttospeech"
)

type speechToTextStub struct {
	startErr error
	script   func(ctx context.Context, options speechtotext.TranscriptionOptions)

	calls   atomic.Int32
	audio   atomic.Int32
	mu      sync.Mutex
	options speechtotext.TranscriptionOptions
}

func (s *speechToTextStub) Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error {
	s.calls.Add(1)
	if s.startErr != nil {
		return s.startErr
	}

	options := speechtotext.NewTranscriptionOptions(opts...)
	s.mu.Lock()
	s.options = options
	s.mu.Unlock()

	if s.script != nil {
		go s.script(ctx, options)
	}
	return nil
}

func (s *speechToTextStub) SendAudio([]byte) error {
	s.audio.Add(1)
	return nil
}

func (s *speechToTextStub) lastOptions() speechtotext.TranscriptionOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

// says reports each transcript in order and then ends, the way a client that
// keeps listening past the first utterance would.
func says(transcripts ...string) func(context.Context, speechtotext.TranscriptionOptions) {
	return func(_ context.Context, options speechtotext.TranscriptionOptions) {
		for _, transcript := range transcripts {
			options.ResultCallback(transcript)
		}
		options.EndCallback()
	}
}

func hearsNothing(_ context.Context, options speechtotext.TranscriptionOptions) {
	options.NoMatchCallback()
	options.EndCallback()
}

// listensUntilCancelled never reports an outcome and ends once its context
// is cancelled.
func listensUntilCancelled(ctx context.Context, options speechtotext.TranscriptionOptions) {
	<-ctx.Done()
	options.EndCallback()
}

type completerStub struct {
	reply string
	err   error
	block bool
	panic bool

	calls atomic.Int32
	mu    sync.Mutex
	got   []conversations.Turn
	dir   string
}

func (c *completerStub) Complete(ctx context.Context, systemDirective string, transcript []conversations.Turn) (string, error) {
	c.calls.Add(1)
	c.mu.Lock()
	c.got = transcript
	c.dir = systemDirective
	c.mu.Unlock()

	if c.panic {
		panic("completion exploded")
	}
	if c.block {
		select {}
	}
	return c.reply, c.err
}

func (c *completerStub) received() (string, []conversations.Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir, c.got
}

type synthesizerStub struct {
	speech []byte
	err    error

	calls    atomic.Int32
	mu       sync.Mutex
	text     string
	encoding audio.EncodingInfo
}

func (s *synthesizerStub) Synthesize(_ context.Context, text string, opts ...texttospeech.TextToSpeechOption) ([]byte, error) {
	s.calls.Add(1)
	options := texttospeech.NewTextToSpeechOptions(opts...)
	s.mu.Lock()
	s.text = text
	s.encoding = options.EncodingInfo
	s.mu.Unlock()
	return s.speech, s.err
}

type audioOutputStub struct {
	sendErr error

	mu    sync.Mutex
	calls []string
	sent  [][]byte
}

func (a *audioOutputStub) EncodingInfo() audio.EncodingInfo { return audio.GetSpeechEncodingInfo() }

func (a *audioOutputStub) SendAudio(speech []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, "send")
	a.sent = append(a.sent, speech)
	return a.sendErr
}

func (a *audioOutputStub) ClearBuffer() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, "clear")
}

func (a *audioOutputStub) recorded() ([]string, [][]byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...), append([][]byte(nil), a.sent...)
}

type audioInputStub struct {
	startErr error

	starts atomic.Int32
	stops  atomic.Int32
}

func (a *audioInputStub) EncodingInfo() audio.EncodingInfo { return audio.GetDefaultEncodingInfo() }

func (a *audioInputStub) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	a.starts.Add(1)
	if a.startErr != nil {
		return a.startErr
	}
	onAudio([]byte{0, 1})
	return nil
}

func (a *audioInputStub) StopCapture() error {
	a.stops.Add(1)
	return nil
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) handle(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) failures() []events.TurnFailed {
	r.mu.Lock()
	defer r.mu.Unlock()

	var failures []events.TurnFailed
	for _, event := range r.events {
		if failed, ok := event.(events.TurnFailed); ok {
			failures = append(failures, failed)
		}
	}
	return failures
}

func (r *eventRecorder) kinds() []events.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := make([]events.Kind, 0, len(r.events))
	for _, event := range r.events {
		kinds = append(kinds, event.Kind())
	}
	return kinds
}

func waitForTurn(t *testing.T, o *Orchestrator) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		o.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for voice turn, state %s", o.State())
	}
}

func waitUntil(t *testing.T, what string, done func() bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for !done() {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func waitForState(t *testing.T, o *Orchestrator, state TurnState) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for o.State() != state {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for state %s, still %s", state, o.State())
		case <-time.After(5 * time.Millisecond):
		}
	}
}
