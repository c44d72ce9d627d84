package httpclient

import (
	"net/http"
)

// Client is an instrumented HTTP client with fluent request building.
//
// Create a Client using New():
//
//	client := httpclient.New(
//	    httpclient.WithBaseURL("https://api.semantria.com/json"),
//	    httpclient.WithServiceName("semantria"),
//	)
//
//	resp, err := client.Request("GetStatus").Get(ctx, "/status")
type Client struct {
	// httpClient is the underlying HTTP client with the transport chain.
	httpClient *http.Client

	// config holds all client configuration.
	config *internalConfig
}

// HTTP returns the underlying *http.Client for advanced use cases.
func (c *Client) HTTP() *http.Client {
	return c.httpClient
}

// Request creates a new RequestBuilder for the given operation name.
//
// The operation name is recorded on the request span as
// "http.client.operation" and appears in debug logs.
func (c *Client) Request(operationName string) *RequestBuilder {
	return &RequestBuilder{
		client:        c,
		operationName: operationName,
		headers:       make(http.Header),
	}
}

// New creates a Client.
//
// The transport chain, outermost first, is:
//
//	otel (spans, metrics) -> rate limit (optional) -> network or mock
//
// There is no retry layer; every call is a single attempt.
func New(opts ...Option) *Client {
	cfg := newConfig(opts...)

	limited := newRateLimitTransport(cfg.buildTransport(), cfg)
	instrumented := newOtelTransport(limited, cfg)

	return &Client{
		httpClient: &http.Client{
			Transport: instrumented,
			Timeout:   cfg.httpConfig.Timeout,
		},
		config: cfg,
	}
}

// NewWithTransport creates a Client using a custom base transport with
// instrumentation wrapped around it. Any MockTransport option is ignored.
func NewWithTransport(base http.RoundTripper, opts ...Option) *Client {
	cfg := newConfig(opts...)

	limited := newRateLimitTransport(base, cfg)

	return &Client{
		httpClient: &http.Client{
			Transport: newOtelTransport(limited, cfg),
			Timeout:   cfg.httpConfig.Timeout,
		},
		config: cfg,
	}
}
