package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/koscakluka/ema-voiceturn/core/conversations"
	"github.com/koscakluka/ema-voiceturn/core/events"
	"github.com/koscakluka/ema-voiceturn/core/speechtotext"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Orchestrator runs voice turns: listen, record the utterance, ask for a
// reply, record it, synthesize it and hand it to playback. At most one turn
// is in flight at a time.
type Orchestrator struct {
	mu     sync.Mutex
	state  TurnState
	closed bool

	closeCtx    context.Context
	closeCancel context.CancelFunc
	closeOnce   sync.Once
	turns       sync.WaitGroup
	captures    sync.WaitGroup

	conversation *conversations.Store

	speechToText speechToText
	audioInput   audioInput
	llm          llm
	textToSpeech textToSpeech
	audioOutput  audioOutput

	systemDirective string
	locale          string
	listenTimeout   time.Duration

	emitEvent eventEmitter
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	closeCtx, closeCancel := context.WithCancel(context.Background())

	o := &Orchestrator{
		state:           TurnStateIdle,
		closeCtx:        closeCtx,
		closeCancel:     closeCancel,
		conversation:    conversations.NewStore(),
		speechToText:    speechToText{noSpeechTimeout: DefaultNoSpeechTimeout},
		llm:             llm{timeout: DefaultCompletionTimeout},
		textToSpeech:    textToSpeech{timeout: DefaultSynthesisTimeout},
		systemDirective: DefaultSystemDirective,
		locale:          speechtotext.DefaultLocale,
		listenTimeout:   DefaultListenTimeout,
		emitEvent:       noopEventEmitter,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// BeginVoiceTurn starts a voice turn when the orchestrator is idle and
// reports whether it did. While a turn is in flight the call changes
// nothing. Failures of the turn are handled internally and always bring the
// orchestrator back to idle.
func (o *Orchestrator) BeginVoiceTurn(ctx context.Context) bool {
	o.mu.Lock()
	if o.closed || o.state != TurnStateIdle {
		o.mu.Unlock()
		return false
	}
	o.state = TurnStateListening
	o.turns.Add(1)
	o.mu.Unlock()

	turnID := uuid.NewString()
	o.emitEvent.emit(events.NewTurnStateChanged(turnID, TurnStateIdle.String(), TurnStateListening.String()))

	turnCtx, cancel := context.WithCancel(ctx)
	stopOnClose := context.AfterFunc(o.closeCtx, cancel)
	go func() {
		defer o.turns.Done()
		defer stopOnClose()
		defer cancel()

		o.runVoiceTurn(turnCtx, turnID)
	}()

	return true
}

func (o *Orchestrator) runVoiceTurn(ctx context.Context, turnID string) {
	ctx, span := tracer.Start(ctx, "voice turn", trace.WithAttributes(attribute.String("turn.id", turnID)))
	defer span.End()

	stage, err := o.processVoiceTurn(ctx, turnID)
	outcome := outcomeCompleted
	if err != nil {
		outcome = stage
		o.reportFailure(ctx, turnID, stage, err)
	}

	turnCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	o.emitEvent.emit(events.NewTurnEnded(turnID, outcome))
	o.transition(turnID, TurnStateIdle)
}

// processVoiceTurn walks the pipeline and returns the stage that failed, if
// any.
func (o *Orchestrator) processVoiceTurn(ctx context.Context, turnID string) (string, error) {
	transcript, err := o.listen(ctx)
	if err != nil {
		return stageCapture, err
	}

	o.transition(turnID, TurnStateTranscribed)
	o.conversation.Append(conversations.NewUserTurn(transcript))
	o.emitEvent.emit(events.NewUserTranscriptFinal(transcript))

	o.transition(turnID, TurnStateCompleting)
	reply, err := o.llm.complete(ctx, o.systemDirective, o.conversation.Snapshot())
	if err != nil {
		return stageCompletion, fmt.Errorf("failed to generate reply: %w", err)
	}
	o.conversation.Append(conversations.NewAssistantTurn(reply))
	o.emitEvent.emit(events.NewAssistantResponseFinal(reply))

	if !o.textToSpeech.isConfigured() || !o.audioOutput.isConfigured() {
		logger.Debug("no speech output configured, reply is text only", "turn_id", turnID)
		return "", nil
	}

	o.transition(turnID, TurnStateSynthesizing)
	speech, err := o.textToSpeech.synthesize(ctx, reply, o.audioOutput.EncodingInfo())
	if err != nil {
		return stageSynthesis, fmt.Errorf("failed to synthesize reply: %w", err)
	}
	o.emitEvent.emit(events.NewAssistantSpeechGenerated(speech))

	o.transition(turnID, TurnStatePlaying)
	if err := o.audioOutput.play(ctx, speech); err != nil {
		return stagePlayback, fmt.Errorf("failed to start playback: %w", err)
	}
	o.emitEvent.emit(events.NewAssistantPlaybackStarted())

	return "", nil
}

// listen captures one utterance. Capture keeps running after the outcome
// until the transcription client ends on its own; it is released early only
// when the turn is cancelled or the listen timeout passes.
func (o *Orchestrator) listen(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "listen")
	defer span.End()

	if !o.speechToText.isConfigured() {
		return "", ErrCaptureUnavailable
	}

	captureCtx, cancelCapture := context.WithCancel(context.WithoutCancel(ctx))
	stopOnClose := context.AfterFunc(o.closeCtx, cancelCapture)

	session := newCaptureSession()
	if err := o.speechToText.start(captureCtx, session, o.locale, o.audioInput.EncodingInfo()); err != nil {
		stopOnClose()
		cancelCapture()
		return "", err
	}

	if err := o.audioInput.start(captureCtx, session, o.forwardAudio); err != nil {
		stopOnClose()
		cancelCapture()
		return "", err
	}

	o.captures.Add(1)
	go func() {
		defer o.captures.Done()
		defer stopOnClose()

		select {
		case <-session.ended:
		case <-captureCtx.Done():
		}
		cancelCapture()
		if err := o.audioInput.release(session); err != nil {
			logger.Warn("failed to stop capture", "error", err)
		}
	}()

	timer := time.NewTimer(o.listenTimeout)
	defer timer.Stop()

	select {
	case outcome := <-session.outcome:
		if outcome.err != nil {
			return "", outcome.err
		}
		span.SetAttributes(attribute.Int("transcript.length", len(outcome.transcript)))
		return outcome.transcript, nil
	case <-timer.C:
		cancelCapture()
		return "", fmt.Errorf("%w: no outcome within %s", ErrCaptureEnded, o.listenTimeout)
	case <-ctx.Done():
		cancelCapture()
		return "", fmt.Errorf("%w: %w", ErrCaptureEnded, context.Cause(ctx))
	}
}

func (o *Orchestrator) forwardAudio(audio []byte) {
	if err := o.speechToText.SendAudio(audio); err != nil {
		logger.Debug("failed to forward captured audio", "error", err)
	}
}

func (o *Orchestrator) transition(turnID string, next TurnState) {
	o.mu.Lock()
	previous := o.state
	o.state = next
	o.mu.Unlock()

	if previous != next {
		o.emitEvent.emit(events.NewTurnStateChanged(turnID, previous.String(), next.String()))
	}
}

func (o *Orchestrator) reportFailure(ctx context.Context, turnID, stage string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	failureCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))

	level := logger.Warn
	if errors.Is(err, ErrNoSpeechDetected) || errors.Is(err, ErrCaptureEnded) {
		level = logger.Info
	}
	level("voice turn failed", "turn_id", turnID, "stage", stage, "error", err)

	o.emitEvent.emit(events.NewTurnFailed(turnID, stage, err))
}

func (o *Orchestrator) State() TurnState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) IsListening() bool     { return o.State().IsListening() }
func (o *Orchestrator) IsAwaitingReply() bool { return o.State().IsAwaitingReply() }

// Transcript returns an independent copy of the conversation so far.
func (o *Orchestrator) Transcript() []conversations.Turn {
	return o.conversation.Snapshot()
}

// Conversation exposes the recorded turns read-only.
func (o *Orchestrator) Conversation() conversations.ReadOnlyV0 {
	return o.conversation
}

func (o *Orchestrator) Snapshot() SessionState {
	state := o.State()
	return SessionState{
		State:         state,
		Listening:     state.IsListening(),
		AwaitingReply: state.IsAwaitingReply(),
		Transcript:    o.conversation.Snapshot(),
	}
}

// Wait blocks until no voice turn is in flight.
func (o *Orchestrator) Wait() {
	o.turns.Wait()
}

// Close cancels the turn in flight, releases capture and waits for both.
// Later calls to BeginVoiceTurn return false.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.mu.Lock()
		o.closed = true
		o.mu.Unlock()

		o.closeCancel()
		o.turns.Wait()
		o.captures.Wait()
	})
}
