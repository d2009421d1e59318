// Package openaiclient builds go-openai clients with instrumented transports
// and maps their failures to upstream errors.
package openaiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/koscakluka/ema-voiceturn/core/upstream"
	goopenai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// New returns a go-openai client. A nil httpClient gets an otelhttp
// instrumented default.
func New(apiKey, baseURL string, httpClient *http.Client) *goopenai.Client {
	config := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	config.HTTPClient = httpClient

	return goopenai.NewClientWithConfig(config)
}

func NewHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
	)}
}

// ToUpstreamError tags err with the capability that produced it, keeping the
// HTTP status when the service answered.
func ToUpstreamError(capability upstream.Capability, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := upstream.As(err); ok {
		return err
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &upstream.Error{Capability: capability, StatusCode: apiErr.HTTPStatusCode, Reason: apiErr.Message, Err: err}
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &upstream.Error{Capability: capability, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}

	return upstream.Wrap(capability, err)
}
