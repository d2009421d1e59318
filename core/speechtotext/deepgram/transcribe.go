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
	"sync"
	"time"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"
	"github.com/koscakluka/ema-voiceturn/core/speechtotext"
	"github.com/koscakluka/ema-voiceturn/core/upstream"
)

// Transcribe opens a live transcription session and returns once the
// connection is established. Results arrive through the callbacks in opts;
// the session closes itself after the first utterance.
func (s *TranscriptionClient) Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error {
	options := speechtotext.NewTranscriptionOptions(opts...)

	encoding, err := convertEncoding(options.EncodingInfo)
	if err != nil {
		return fmt.Errorf("invalid encoding: %w", err)
	}

	conn, err := s.connectWebsocket(ctx, connectionOptions{
		sampleRate: encoding.SampleRate,
		encoding:   encoding.Format.Name(),
		language:   toDeepgramLanguage(options.Locale),
	})
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}

	s.connMu.Lock()
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = conn
	s.connMu.Unlock()

	session := &transcriptionSession{client: s, conn: conn, options: options}
	go session.readAndProcessMessages(ctx)

	return nil
}

type connectionOptions struct {
	sampleRate int
	encoding   string
	language   string
}

func (s *TranscriptionClient) connectWebsocket(ctx context.Context, options connectionOptions) (*websocket.Conn, error) {
	listenUrl, err := url.Parse(s.listenURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listen url: %w", err)
	}
	queryParams := listenUrl.Query()
	queryParams.Set("encoding", options.encoding)
	queryParams.Set("sample_rate", strconv.Itoa(options.sampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", s.model)
	queryParams.Set("language", options.language)
	queryParams.Set("smart_format", "true")
	queryParams.Set("interim_results", "true")
	queryParams.Set("utterance_end_ms", "1000")
	queryParams.Set("endpointing", "300")
	queryParams.Set("vad_events", "true")

	listenUrl.RawQuery = queryParams.Encode()
	conn, resp, err := s.dialer.DialContext(ctx, listenUrl.String(),
		http.Header{"Authorization": {"Token " + s.apiKey}})
	if err != nil {
		if resp != nil {
			return nil, upstream.NewStatusError(upstream.CapabilityTranscription, resp.StatusCode, err.Error())
		}
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

func (s *TranscriptionClient) SendAudio(audio []byte) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("no open transcription session")
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
		return fmt.Errorf("failed to write to deepgram client: %w", err)
	}
	return nil
}

// StopStream asks Deepgram to flush what it has and close the session.
func (s *TranscriptionClient) StopStream() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return nil
	}
	return writeCloseStream(s.conn)
}

func writeCloseStream(conn *websocket.Conn) error {
	if err := conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		return fmt.Errorf("failed to close deepgram stream through websocket: %w", err)
	}
	return nil
}

// closeGracePeriod is how long the server gets to close the stream on its own
// once the outcome has been reported.
const closeGracePeriod = 3 * time.Second

type transcriptionSession struct {
	client  *TranscriptionClient
	conn    *websocket.Conn
	options speechtotext.TranscriptionOptions

	accumulatedTranscript string
	unendedSegment        bool
	speechDetected        bool

	reportOnce sync.Once
	reported   bool
	mu         sync.Mutex
}

func (s *transcriptionSession) readAndProcessMessages(ctx context.Context) {
	defer s.options.EndCallback()
	defer s.release()

	stopWatching := make(chan struct{})
	defer close(stopWatching)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.conn.Close()
		case <-stopWatching:
		}
	}()

	if s.options.NoSpeechTimeout > 0 {
		timer := time.AfterFunc(s.options.NoSpeechTimeout, func() {
			s.mu.Lock()
			detected := s.speechDetected
			s.mu.Unlock()
			if !detected {
				s.report(s.options.NoMatchCallback)
			}
		})
		defer timer.Stop()
	}

	for {
		msgType, msg, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) && !s.hasReported() {
				readErr := upstream.Wrap(upstream.CapabilityTranscription, err)
				logger.Warn("failed to read deepgram websocket message", "error", err)
				s.report(func() { s.options.ErrorCallback(readErr) })
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			s.processMessage(msg)
		}
	}
}

func (s *transcriptionSession) release() {
	_ = s.conn.Close()

	s.client.connMu.Lock()
	defer s.client.connMu.Unlock()
	if s.client.conn == s.conn {
		s.client.conn = nil
	}
}

func (s *transcriptionSession) processMessage(msg []byte) {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		logger.Warn("failed to unmarshal deepgram message", "error", err)
		return
	}

	switch api.TypeResponse(parsedMsg.Type) {
	case api.TypeMessageResponse:
		var msgResp api.MessageResponse
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			logger.Warn("failed to unmarshal deepgram message", "error", err)
			return
		}

		transcript := ""
		if len(msgResp.Channel.Alternatives) > 0 {
			transcript = strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript)
		}
		if transcript != "" {
			s.markSpeechDetected()
		}
		if msgResp.IsFinal {
			if transcript != "" {
				s.accumulatedTranscript = strings.TrimSpace(s.accumulatedTranscript + " " + transcript)
			}
			if msgResp.SpeechFinal {
				s.onSpeechEnded()
			}
		}

	case api.TypeUtteranceEndResponse:
		if s.unendedSegment || s.accumulatedTranscript != "" {
			s.onSpeechEnded()
		}

	case api.TypeSpeechStartedResponse:
		s.unendedSegment = true
		s.markSpeechDetected()
	}
}

func (s *transcriptionSession) markSpeechDetected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speechDetected = true
}

func (s *transcriptionSession) onSpeechEnded() {
	s.unendedSegment = false
	transcript := s.accumulatedTranscript
	s.accumulatedTranscript = ""

	if transcript == "" {
		s.report(s.options.NoMatchCallback)
		return
	}
	s.report(func() { s.options.ResultCallback(transcript) })
}

// report delivers the single outcome of the session and asks Deepgram to end
// the stream. Anything reported afterwards is dropped.
func (s *transcriptionSession) report(deliver func()) {
	s.reportOnce.Do(func() {
		s.mu.Lock()
		s.reported = true
		s.mu.Unlock()

		deliver()

		s.client.connMu.Lock()
		defer s.client.connMu.Unlock()
		if err := writeCloseStream(s.conn); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
			logger.Debug("failed to request deepgram stream close", "error", err)
		}
		time.AfterFunc(closeGracePeriod, func() { _ = s.conn.Close() })
	})
}

func (s *transcriptionSession) hasReported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reported
}
