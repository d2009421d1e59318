package orchestration

import (
	"context"
	"time"

	"github.com/koscakluka/ema-voiceturn/core/audio"
	"github.com/koscakluka/ema-voiceturn/core/texttospeech"
	"github.com/koscakluka/ema-voiceturn/core/upstream"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type textToSpeech struct {
	client  TextToSpeech
	timeout time.Duration
}

func (t *textToSpeech) set(client TextToSpeech) {
	if t != nil {
		t.client = client
	}
}

func (t *textToSpeech) isConfigured() bool { return t != nil && t.client != nil }

func (t *textToSpeech) synthesize(ctx context.Context, text string, encodingInfo audio.EncodingInfo) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "synthesize reply")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	speech, err := callUntilDone(ctx, "synthesis", func(ctx context.Context) ([]byte, error) {
		return t.client.Synthesize(ctx, text, texttospeech.WithEncodingInfo(encodingInfo))
	})
	if err == nil && len(speech) == 0 {
		err = upstream.NewMalformedError(upstream.CapabilitySynthesis, "empty audio")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("tts.audio_bytes", len(speech)))
	return speech, nil
}
