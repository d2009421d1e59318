package orchestration

import (
	"context"
	"strings"
	"time"

	"github.com/koscakluka/ema-voiceturn/core/conversations"
	"github.com/koscakluka/ema-voiceturn/core/upstream"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type llm struct {
	client  Completer
	timeout time.Duration
}

func (l *llm) set(client Completer) {
	if l != nil {
		l.client = client
	}
}

// complete makes exactly one completion request for the transcript.
func (l *llm) complete(ctx context.Context, systemDirective string, transcript []conversations.Turn) (string, error) {
	ctx, span := tracer.Start(ctx, "generate reply")
	defer span.End()
	span.SetAttributes(attribute.Int("conversation.turns", len(transcript)))

	reply, err := l.call(ctx, systemDirective, transcript)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return reply, nil
}

func (l *llm) call(ctx context.Context, systemDirective string, transcript []conversations.Turn) (string, error) {
	if l.client == nil {
		return "", ErrCompletionUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	reply, err := callUntilDone(ctx, "completion", func(ctx context.Context) (string, error) {
		return l.client.Complete(ctx, systemDirective, transcript)
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", upstream.NewMalformedError(upstream.CapabilityCompletion, "empty reply")
	}
	return reply, nil
}
