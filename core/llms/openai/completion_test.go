package openai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/koscakluka/ema-voiceturn/core/conversations"
	"github.com/koscakluka/ema-voiceturn/core/llms"
	"github.com/koscakluka/ema-voiceturn/core/upstream"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("key", llms.WithBaseURL(srv.URL+"/v1"), llms.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestCompleteSendsDirectiveAndTranscript(t *testing.T) {
	var received chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("unexpected authorization header %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"오늘은 맑고 따뜻해요!"}}]}`))
	})

	reply, err := client.Complete(t.Context(), "directive", []conversations.Turn{
		conversations.NewUserTurn("오늘 날씨 어때요?"),
	})
	if err != nil {
		t.Fatalf("expected completion to succeed, got %v", err)
	}
	if reply != "오늘은 맑고 따뜻해요!" {
		t.Fatalf("unexpected reply %q", reply)
	}

	if received.Model != DefaultModel {
		t.Fatalf("expected default model %q, got %q", DefaultModel, received.Model)
	}
	if len(received.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(received.Messages))
	}
	if received.Messages[0].Role != "system" || received.Messages[0].Content != "directive" {
		t.Fatalf("unexpected system message %+v", received.Messages[0])
	}
	if received.Messages[1].Role != "user" || received.Messages[1].Content != "오늘 날씨 어때요?" {
		t.Fatalf("unexpected user message %+v", received.Messages[1])
	}
}

func TestCompleteFailures(t *testing.T) {
	cases := []struct {
		name       string
		handler    http.HandlerFunc
		statusCode int
	}{
		{"status_500", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("oops"))
		}, http.StatusInternalServerError},
		{"api_error", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		}, http.StatusUnauthorized},
		{"bad_json", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("not-json"))
		}, 0},
		{"empty_choices", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}, 0},
		{"empty_content", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  "}}]}`))
		}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)

			_, err := client.Complete(t.Context(), "", []conversations.Turn{conversations.NewUserTurn("hi")})
			if err == nil {
				t.Fatalf("expected error; got nil")
			}
			upstreamErr, ok := upstream.As(err)
			if !ok {
				t.Fatalf("expected upstream error, got %v", err)
			}
			if upstreamErr.Capability != upstream.CapabilityCompletion {
				t.Fatalf("unexpected capability %q", upstreamErr.Capability)
			}
			if upstreamErr.StatusCode != tc.statusCode {
				t.Fatalf("expected status %d, got %d", tc.statusCode, upstreamErr.StatusCode)
			}
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatalf("expected error without api key")
	}
}
