package deepgram

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	defaultListenURL = "wss://api.deepgram.com/v1/listen"
	defaultModel     = "nova-2"
)

// TranscriptionClient transcribes one utterance per Transcribe call using the
// Deepgram live streaming API.
type TranscriptionClient struct {
	apiKey    string
	listenURL string
	model     string
	dialer    *websocket.Dialer

	connMu sync.Mutex
	conn   *websocket.Conn
}

type ClientOption func(*TranscriptionClient)

// WithListenURL overrides the websocket endpoint, mostly useful for tests.
func WithListenURL(listenURL string) ClientOption {
	return func(c *TranscriptionClient) { c.listenURL = listenURL }
}

func WithModel(model string) ClientOption {
	return func(c *TranscriptionClient) {
		if model != "" {
			c.model = model
		}
	}
}

func NewTranscriptionClient(apiKey string, opts ...ClientOption) (*TranscriptionClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not provided")
	}

	client := &TranscriptionClient{
		apiKey:    apiKey,
		listenURL: defaultListenURL,
		model:     defaultModel,
		dialer:    websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (s *TranscriptionClient) Close() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
