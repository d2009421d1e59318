package llms

import "net/http"

// ClientOptions configures completion clients talking to OpenAI-compatible
// chat completion endpoints.
type ClientOptions struct {
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

type ClientOption func(*ClientOptions)

func NewClientOptions(defaults ClientOptions, opts ...ClientOption) ClientOptions {
	options := defaults
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func WithModel(model string) ClientOption {
	return func(o *ClientOptions) {
		if model != "" {
			o.Model = model
		}
	}
}

// WithBaseURL points the client at a different API root, e.g. a proxy or a
// test server. The URL must include the version path (".../v1").
func WithBaseURL(baseURL string) ClientOption {
	return func(o *ClientOptions) {
		if baseURL != "" {
			o.BaseURL = baseURL
		}
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *ClientOptions) {
		if client != nil {
			o.HTTPClient = client
		}
	}
}
