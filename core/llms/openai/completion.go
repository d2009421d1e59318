package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/koscakluka/ema-voiceturn/core/conversations"
	"github.com/koscakluka/ema-voiceturn/core/llms"
	"github.com/koscakluka/ema-voiceturn/core/upstream"
	"github.com/koscakluka/ema-voiceturn/internal/openaiclient"
	goopenai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultModel = goopenai.GPT4

// Client requests replies from the chat completions endpoint.
type Client struct {
	client *goopenai.Client
	model  string
}

func NewClient(apiKey string, opts ...llms.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key not provided")
	}

	options := llms.NewClientOptions(llms.ClientOptions{
		Model:   DefaultModel,
		BaseURL: openaiclient.DefaultBaseURL,
	}, opts...)

	return &Client{
		client: openaiclient.New(apiKey, options.BaseURL, options.HTTPClient),
		model:  options.Model,
	}, nil
}

func (c *Client) Model() string { return c.model }

// Complete sends the directive and transcript and returns the first choice.
func (c *Client) Complete(ctx context.Context, systemDirective string, transcript []conversations.Turn) (string, error) {
	ctx, span := tracer.Start(ctx, "complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.transcript_length", len(transcript)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toChatMessages(llms.ToMessages(systemDirective, transcript)),
	})
	if err != nil {
		err = openaiclient.ToUpstreamError(upstream.CapabilityCompletion, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	if len(resp.Choices) == 0 {
		err := upstream.NewMalformedError(upstream.CapabilityCompletion, "no choices returned")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	reply := resp.Choices[0].Message.Content
	if strings.TrimSpace(reply) == "" {
		err := upstream.NewMalformedError(upstream.CapabilityCompletion, "empty reply")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return reply, nil
}

func toChatMessages(messages []llms.Message) []goopenai.ChatCompletionMessage {
	chatMessages := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		chatMessages = append(chatMessages, goopenai.ChatCompletionMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}
	return chatMessages
}
