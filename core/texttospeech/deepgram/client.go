package deepgram

import (
	"fmt"
	"slices"

	"github.com/gorilla/websocket"
)

const defaultSpeakURL = "wss://api.deepgram.com/v1/speak"

// TextToSpeechClient synthesizes whole replies over the Deepgram speak
// websocket, one connection per reply.
type TextToSpeechClient struct {
	apiKey   string
	speakURL string
	voice    deepgramVoice
	dialer   *websocket.Dialer
}

type ClientOption func(*TextToSpeechClient)

func WithSpeakURL(speakURL string) ClientOption {
	return func(c *TextToSpeechClient) { c.speakURL = speakURL }
}

func NewTextToSpeechClient(apiKey string, voice string, opts ...ClientOption) (*TextToSpeechClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not provided")
	}

	client := &TextToSpeechClient{
		apiKey:   apiKey,
		speakURL: defaultSpeakURL,
		voice:    defaultVoice,
		dialer:   websocket.DefaultDialer,
	}
	if voice != "" {
		if !slices.Contains(availableVoices, deepgramVoice(voice)) {
			return nil, fmt.Errorf("invalid voice %q", voice)
		}
		client.voice = deepgramVoice(voice)
	}

	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *TextToSpeechClient) SetVoice(voice deepgramVoice) {
	c.voice = voice
}
