package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/koscakluka/ema-voiceturn/core/texttospeech"
	"github.com/koscakluka/ema-voiceturn/core/upstream"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type websocketMessage struct {
	Type string `json:"type"`
}

type speakMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var (
	flushMsg = websocketMessage{Type: "Flush"}
	closeMsg = websocketMessage{Type: "Close"}
)

// Synthesize sends text as a single Speak message, flushes, and collects
// the audio until Deepgram confirms the flush.
func (c *TextToSpeechClient) Synthesize(ctx context.Context, text string, opts ...texttospeech.TextToSpeechOption) (speech []byte, err error) {
	options := texttospeech.NewTextToSpeechOptions(opts...)

	ctx, span := tracer.Start(ctx, "synthesize")
	defer span.End()
	span.SetAttributes(
		attribute.String("tts.voice", string(c.voice)),
		attribute.Int("tts.text_length", len(text)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	conn, err := c.connectWebsocket(ctx, options)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := conn.WriteJSON(speakMessage{Type: "Speak", Text: text}); err != nil {
		return nil, c.connectionError(ctx, fmt.Errorf("failed to send text to deepgram through websocket: %w", err))
	}
	if err := conn.WriteJSON(flushMsg); err != nil {
		return nil, c.connectionError(ctx, fmt.Errorf("failed to flush deepgram buffer: %w", err))
	}

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, c.connectionError(ctx, err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			speech = append(speech, msg...)
		case websocket.TextMessage:
			var parsedMsg websocketMessage
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				logger.Debug("failed to unmarshal deepgram message", "error", err)
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				if err := conn.WriteJSON(closeMsg); err != nil {
					logger.Debug("failed to close deepgram speak stream", "error", err)
				}
				if len(speech) == 0 {
					return nil, upstream.NewMalformedError(upstream.CapabilitySynthesis, "empty audio")
				}
				span.SetAttributes(attribute.Int("tts.audio_bytes", len(speech)))
				return speech, nil
			case "Warning":
				logger.Warn("deepgram speak warning", "message", string(msg))
			case "Error":
				return nil, upstream.NewStatusError(upstream.CapabilitySynthesis, 0, strings.TrimSpace(string(msg)))
			}
		}
	}
}

func (c *TextToSpeechClient) connectWebsocket(ctx context.Context, options texttospeech.TextToSpeechOptions) (*websocket.Conn, error) {
	speakUrl, err := url.Parse(c.speakURL)
	if err != nil {
		return nil, fmt.Errorf("invalid speak url: %w", err)
	}

	urlValues := speakUrl.Query()
	urlValues.Set("encoding", options.EncodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(options.EncodingInfo.SampleRate))
	urlValues.Set("model", string(c.voice))
	urlValues.Set("container", "none")
	speakUrl.RawQuery = urlValues.Encode()

	conn, resp, err := c.dialer.DialContext(ctx, speakUrl.String(),
		http.Header{"Authorization": {"token " + c.apiKey}})
	if err != nil {
		if resp != nil {
			return nil, upstream.NewStatusError(upstream.CapabilitySynthesis, resp.StatusCode, err.Error())
		}
		return nil, upstream.Wrap(upstream.CapabilitySynthesis,
			fmt.Errorf("failed to open socket connection to deepgram: %w", err))
	}

	return conn, nil
}

func (c *TextToSpeechClient) connectionError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(ctxErr, err)
	}
	return upstream.Wrap(upstream.CapabilitySynthesis, err)
}
