package httpclient

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Compile-time interface check.
var _ http.RoundTripper = (*otelTransport)(nil)

// otelTransport wraps an http.RoundTripper with OpenTelemetry instrumentation.
type otelTransport struct {
	base       http.RoundTripper
	cfg        *internalConfig
	propagator propagation.TextMapPropagator
}

// newOtelTransport creates a new instrumented transport.
func newOtelTransport(base http.RoundTripper, cfg *internalConfig) *otelTransport {
	return &otelTransport{
		base: base,
		cfg:  cfg,
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
}

// RoundTrip implements http.RoundTripper with tracing and metrics.
func (t *otelTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	ctx := req.Context()

	ctx, span := t.cfg.Tracer.Start(ctx, "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(t.requestAttributes(req)...),
	)
	defer span.End()

	// The propagator writes headers, so work on a clone per RoundTripper rules.
	req = req.Clone(ctx)
	t.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	baseAttrs := t.cfg.baseAttributes()
	defer t.cfg.Metrics.startRequest(ctx, baseAttrs)()

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		errorType := classifyError(err)
		setSpanError(span, err, errorType)
		t.cfg.Metrics.recordBodySizes(ctx, req.ContentLength, 0, baseAttrs)
		t.cfg.Metrics.recordFailure(ctx, errorType, baseAttrs)
		t.cfg.Metrics.recordDuration(ctx, duration, t.metricsAttributes(req, nil, errorType))
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.ContentLength > 0 {
		span.SetAttributes(attribute.Int64("http.response.body.size", resp.ContentLength))
	}
	t.cfg.Metrics.recordBodySizes(ctx, req.ContentLength, resp.ContentLength, baseAttrs)

	// A rejected call counts as a failure under its status code, next to
	// the transport classifications.
	errorType := errorTypeFromStatusCode(resp.StatusCode)
	if errorType != "" {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
		span.SetAttributes(attribute.String("error.type", errorType))
		t.cfg.Metrics.recordFailure(ctx, errorType, baseAttrs)
	}

	t.cfg.Metrics.recordDuration(ctx, duration, t.metricsAttributes(req, resp, errorType))

	return resp, nil
}

// requestAttributes returns span attributes for the request.
//
// The full URL is not recorded; signed query strings carry credentials.
func (t *otelTransport) requestAttributes(req *http.Request) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 8)
	attrs = append(attrs, t.cfg.baseAttributes()...)
	attrs = append(attrs, attribute.String("http.request.method", req.Method))

	if op := operationFromContext(req.Context()); op != "" {
		attrs = append(attrs, attribute.String("http.client.operation", op))
	}

	if req.URL != nil {
		attrs = append(attrs,
			attribute.String("url.scheme", req.URL.Scheme),
			attribute.String("url.path", req.URL.Path),
		)
		attrs = append(attrs, serverAttributes(req)...)
	}

	if req.ContentLength > 0 {
		attrs = append(attrs, attribute.Int64("http.request.body.size", req.ContentLength))
	}
	if ua := req.UserAgent(); ua != "" {
		attrs = append(attrs, attribute.String("user_agent.original", ua))
	}

	return attrs
}

// metricsAttributes returns attributes for the duration histogram.
func (t *otelTransport) metricsAttributes(
	req *http.Request,
	resp *http.Response,
	errorType string,
) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 6)
	attrs = append(attrs, t.cfg.baseAttributes()...)
	attrs = append(attrs, attribute.String("http.request.method", req.Method))

	if op := operationFromContext(req.Context()); op != "" {
		attrs = append(attrs, attribute.String("http.client.operation", op))
	}
	if req.URL != nil {
		attrs = append(attrs, serverAttributes(req)...)
	}
	if resp != nil {
		attrs = append(attrs, attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if errorType != "" {
		attrs = append(attrs, attribute.String("error.type", errorType))
	}

	return attrs
}

// serverAttributes returns server.address and server.port, defaulting the
// port from the scheme.
func serverAttributes(req *http.Request) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 2)

	if host := req.URL.Hostname(); host != "" {
		attrs = append(attrs, attribute.String("server.address", host))
	}

	if port := req.URL.Port(); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			attrs = append(attrs, attribute.Int("server.port", p))
		}
		return attrs
	}

	switch req.URL.Scheme {
	case "http":
		attrs = append(attrs, attribute.Int("server.port", 80))
	case "https":
		attrs = append(attrs, attribute.Int("server.port", 443))
	}
	return attrs
}
