package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/koscakluka/ema-voiceturn/core/audio"
	"github.com/koscakluka/ema-voiceturn/core/texttospeech"
	"github.com/koscakluka/ema-voiceturn/core/upstream"
	"github.com/koscakluka/ema-voiceturn/internal/openaiclient"
	goopenai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultModel = goopenai.TTSModel1
	DefaultVoice = goopenai.VoiceShimmer
)

// SpeechClient synthesizes replies with the audio speech endpoint. Audio is
// requested as raw pcm so it can be handed to the playback sink as is.
type SpeechClient struct {
	client *goopenai.Client
	model  goopenai.SpeechModel
	voice  goopenai.SpeechVoice
}

type SpeechClientOptions struct {
	Model      string
	Voice      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewSpeechClient(apiKey string, options SpeechClientOptions) (*SpeechClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key not provided")
	}

	client := &SpeechClient{
		client: openaiclient.New(apiKey, options.BaseURL, options.HTTPClient),
		model:  DefaultModel,
		voice:  DefaultVoice,
	}
	if options.Model != "" {
		client.model = goopenai.SpeechModel(options.Model)
	}
	if options.Voice != "" {
		client.voice = goopenai.SpeechVoice(options.Voice)
	}
	return client, nil
}

func (c *SpeechClient) Synthesize(ctx context.Context, text string, opts ...texttospeech.TextToSpeechOption) ([]byte, error) {
	options := texttospeech.NewTextToSpeechOptions(opts...)
	if options.EncodingInfo != audio.GetSpeechEncodingInfo() {
		return nil, fmt.Errorf("unsupported encoding %s@%d, only %s@%d is produced",
			options.EncodingInfo.Format.Name(), options.EncodingInfo.SampleRate,
			audio.EncodingLinear16.Name(), audio.SpeechSampleRate)
	}

	ctx, span := tracer.Start(ctx, "synthesize")
	defer span.End()
	span.SetAttributes(
		attribute.String("tts.model", string(c.model)),
		attribute.String("tts.voice", string(c.voice)),
		attribute.Int("tts.text_length", len(text)),
	)

	resp, err := c.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          c.model,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: goopenai.SpeechResponseFormatPcm,
	})
	if err != nil {
		err = openaiclient.ToUpstreamError(upstream.CapabilitySynthesis, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Close()

	speech, err := io.ReadAll(resp)
	if err != nil {
		err = upstream.Wrap(upstream.CapabilitySynthesis, fmt.Errorf("error reading response body: %w", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(speech) == 0 {
		err := upstream.NewMalformedError(upstream.CapabilitySynthesis, "empty audio")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("tts.audio_bytes", len(speech)))
	return speech, nil
}
