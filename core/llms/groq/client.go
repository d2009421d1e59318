// Package groq provides a completion client for Groq's OpenAI-compatible
// chat completions endpoint.
package groq

import (
	"fmt"

	"github.com/koscakluka/ema-voiceturn/core/llms"
	"github.com/koscakluka/ema-voiceturn/core/llms/openai"
)

const (
	BaseURL      = "https://api.groq.com/openai/v1"
	DefaultModel = "llama-3.3-70b-versatile"
)

func NewClient(apiKey string, opts ...llms.ClientOption) (*openai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq api key not provided")
	}

	defaults := []llms.ClientOption{llms.WithBaseURL(BaseURL), llms.WithModel(DefaultModel)}
	return openai.NewClient(apiKey, append(defaults, opts...)...)
}
