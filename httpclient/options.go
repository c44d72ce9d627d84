package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// scope is the instrumentation scope name for OpenTelemetry.
	scope = "github.com/kroma-labs/semantria-go/httpclient"
)

// =============================================================================
// Config - HTTP Transport Configuration
// =============================================================================

// Config holds the HTTP transport parameters.
// Start from DefaultConfig() and override what you need.
//
// Example:
//
//	cfg := httpclient.DefaultConfig()
//	cfg.Timeout = 60 * time.Second // large batches take a while to upload
//
//	client := httpclient.New(httpclient.WithConfig(cfg))
type Config struct {
	// Timeout bounds the whole request lifecycle, including reading the
	// response body. Zero means no timeout.
	//
	// Default: 30s
	Timeout time.Duration

	// MaxIdleConns caps idle keep-alive connections across all hosts.
	//
	// Default: 20
	MaxIdleConns int

	// MaxIdleConnsPerHost caps idle connections per host. A session only
	// ever talks to one host, so this is usually the setting that matters.
	//
	// Default: 10
	MaxIdleConnsPerHost int

	// MaxConnsPerHost caps idle plus active connections per host.
	// Zero means unlimited.
	//
	// Default: 50
	MaxConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays pooled.
	//
	// Default: 90s
	IdleConnTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake.
	//
	// Default: 10s
	TLSHandshakeTimeout time.Duration

	// ResponseHeaderTimeout bounds the wait for response headers after the
	// request is written. Zero falls back to Timeout.
	//
	// Default: 0
	ResponseHeaderTimeout time.Duration

	// DialTimeout bounds TCP connection establishment.
	//
	// Default: 5s
	DialTimeout time.Duration

	// KeepAlive is the TCP keep-alive probe interval.
	//
	// Default: 30s
	KeepAlive time.Duration

	// DisableCompression turns off transparent gzip.
	//
	// Default: false
	DisableCompression bool
}

// DefaultConfig returns settings suited to a single long-lived API session.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,

		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 0, // Uses overall Timeout

		DialTimeout: 5 * time.Second,
		KeepAlive:   30 * time.Second,
	}
}

// LowLatencyConfig fails fast. Use it for status polling loops where a slow
// answer is as useless as no answer.
func LowLatencyConfig() Config {
	cfg := DefaultConfig()
	cfg.Timeout = 5 * time.Second
	cfg.TLSHandshakeTimeout = 5 * time.Second
	cfg.ResponseHeaderTimeout = 3 * time.Second
	cfg.DialTimeout = 2 * time.Second
	cfg.KeepAlive = 15 * time.Second
	return cfg
}

// ConservativeConfig keeps the connection footprint small, e.g. for
// serverless handlers that create a session per invocation.
func ConservativeConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxIdleConns = 4
	cfg.MaxIdleConnsPerHost = 2
	cfg.MaxConnsPerHost = 4
	cfg.IdleConnTimeout = 30 * time.Second
	return cfg
}

// =============================================================================
// Internal Configuration
// =============================================================================

// internalConfig holds transport, observability and request defaults.
type internalConfig struct {
	httpConfig Config

	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *metrics

	// ServiceName is added as "http.client.name" on spans and metrics.
	ServiceName string

	// BaseURL is prepended to every request path.
	BaseURL string

	// DefaultHeaders are applied to all requests before per-request headers.
	DefaultHeaders http.Header

	// Signer runs on every fully built request right before dispatch.
	Signer RequestSigner

	Debug        bool
	GenerateCurl bool
	Logger       zerolog.Logger

	RateLimit RateLimitConfig

	// MockTransport replaces the network transport entirely.
	MockTransport *MockTransport

	TLSConfig *tls.Config
	ProxyURL  *url.URL
}

// newConfig creates a config with defaults and applies options.
func newConfig(opts ...Option) *internalConfig {
	cfg := &internalConfig{
		httpConfig:     DefaultConfig(),
		TracerProvider: otel.GetTracerProvider(),
		MeterProvider:  otel.GetMeterProvider(),
		DefaultHeaders: make(http.Header),
		Logger:         zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.Tracer = cfg.TracerProvider.Tracer(scope)
	cfg.Meter = cfg.MeterProvider.Meter(scope)

	// Instruments are best effort; a nil *metrics records nothing.
	cfg.Metrics, _ = newMetrics(cfg.Meter)

	return cfg
}

// buildTransport creates the network transport. A mock transport, when set,
// short-circuits the network.
func (cfg *internalConfig) buildTransport() http.RoundTripper {
	if cfg.MockTransport != nil {
		return cfg.MockTransport
	}

	hc := cfg.httpConfig

	dialer := &net.Dialer{
		Timeout:   hc.DialTimeout,
		KeepAlive: hc.KeepAlive,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          hc.MaxIdleConns,
		MaxIdleConnsPerHost:   hc.MaxIdleConnsPerHost,
		MaxConnsPerHost:       hc.MaxConnsPerHost,
		IdleConnTimeout:       hc.IdleConnTimeout,
		TLSHandshakeTimeout:   hc.TLSHandshakeTimeout,
		ResponseHeaderTimeout: hc.ResponseHeaderTimeout,
		DisableCompression:    hc.DisableCompression,
		TLSClientConfig:       cfg.TLSConfig,
		Proxy:                 http.ProxyFromEnvironment,
	}

	if cfg.ProxyURL != nil {
		transport.Proxy = http.ProxyURL(cfg.ProxyURL)
	}

	return transport
}

// baseAttributes returns common attributes for all spans and metrics.
func (cfg *internalConfig) baseAttributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 1)
	if cfg.ServiceName != "" {
		attrs = append(attrs, attribute.String("http.client.name", cfg.ServiceName))
	}
	return attrs
}

// =============================================================================
// Options
// =============================================================================

// RequestSigner mutates a fully built request before it is sent, typically
// to add authentication query parameters or headers.
type RequestSigner func(req *http.Request) error

// Option configures the HTTP client.
type Option func(*internalConfig)

// WithConfig sets the HTTP transport configuration.
func WithConfig(c Config) Option {
	return func(cfg *internalConfig) {
		cfg.httpConfig = c
	}
}

// WithBaseURL sets the URL every request path is resolved against.
func WithBaseURL(baseURL string) Option {
	return func(cfg *internalConfig) {
		cfg.BaseURL = baseURL
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(cfg *internalConfig) {
		cfg.DefaultHeaders.Set(key, value)
	}
}

// WithSigner installs a RequestSigner. Only the last signer set is used.
func WithSigner(s RequestSigner) Option {
	return func(cfg *internalConfig) {
		cfg.Signer = s
	}
}

// WithServiceName sets the "http.client.name" attribute on spans and metrics.
func WithServiceName(name string) Option {
	return func(cfg *internalConfig) {
		cfg.ServiceName = name
	}
}

// WithTracerProvider sets a custom OpenTelemetry TracerProvider.
// If not called, the global provider from otel.GetTracerProvider() is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *internalConfig) {
		cfg.TracerProvider = tp
	}
}

// WithMeterProvider sets a custom OpenTelemetry MeterProvider.
// If not called, the global provider from otel.GetMeterProvider() is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *internalConfig) {
		cfg.MeterProvider = mp
	}
}

// WithDebug logs every request and response at debug level.
//
// Credentials are redacted from logged URLs.
func WithDebug(enabled bool) Option {
	return func(cfg *internalConfig) {
		cfg.Debug = enabled
	}
}

// WithGenerateCurl attaches an equivalent cURL command to every Response.
func WithGenerateCurl(enabled bool) Option {
	return func(cfg *internalConfig) {
		cfg.GenerateCurl = enabled
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *internalConfig) {
		cfg.Logger = logger
	}
}

// WithRateLimit enables client-side rate limiting.
//
// Example - stay within a 60 calls/minute subscription:
//
//	client := httpclient.New(
//	    httpclient.WithRateLimit(httpclient.RateLimitConfig{
//	        RequestsPerSecond: 1,
//	        Burst:             5,
//	        WaitOnLimit:       true,
//	    }),
//	)
func WithRateLimit(rl RateLimitConfig) Option {
	return func(cfg *internalConfig) {
		cfg.RateLimit = rl
	}
}

// WithMockTransport routes all requests to mock instead of the network.
func WithMockTransport(mock *MockTransport) Option {
	return func(cfg *internalConfig) {
		cfg.MockTransport = mock
	}
}

// WithTLSConfig sets a custom TLS configuration.
func WithTLSConfig(tlsCfg *tls.Config) Option {
	return func(cfg *internalConfig) {
		cfg.TLSConfig = tlsCfg
	}
}

// WithProxyURL sends all requests through proxyURL instead of the proxy
// named by HTTP_PROXY/HTTPS_PROXY.
func WithProxyURL(proxyURL *url.URL) Option {
	return func(cfg *internalConfig) {
		cfg.ProxyURL = proxyURL
	}
}
