package httpclient

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Bucket boundaries. Queueing calls answer in milliseconds while draining
// processed results can take tens of seconds; a batch of documents makes
// request bodies reach megabytes.
var (
	durationBuckets = []float64{
		0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
	}
	bodySizeBuckets = []float64{
		0, 100, 1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024,
	}
)

// metrics holds the instruments recorded per API call. Every instrument
// except activeRequests carries the operation name, so a dashboard can
// split QueueDocument traffic from GetProcessedDocuments polling.
type metrics struct {
	requestDuration  metric.Float64Histogram
	requestBodySize  metric.Int64Histogram
	responseBodySize metric.Int64Histogram
	activeRequests   metric.Int64UpDownCounter

	// requestErrors counts failed calls by error.type: a transport
	// classification (see ClassifyError) or the HTTP status code.
	requestErrors metric.Int64Counter

	rateLimited metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	m := &metrics{}
	var err error

	if m.requestDuration, err = meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of API calls in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}

	if m.requestBodySize, err = meter.Int64Histogram(
		"http.client.request.body.size",
		metric.WithDescription("Size of encoded request bodies in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(bodySizeBuckets...),
	); err != nil {
		return nil, err
	}

	if m.responseBodySize, err = meter.Int64Histogram(
		"http.client.response.body.size",
		metric.WithDescription("Size of response bodies in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(bodySizeBuckets...),
	); err != nil {
		return nil, err
	}

	if m.activeRequests, err = meter.Int64UpDownCounter(
		"http.client.active_requests",
		metric.WithDescription("Number of API calls in flight"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	if m.requestErrors, err = meter.Int64Counter(
		"http.client.request.error",
		metric.WithDescription("Number of failed API calls by operation and error type"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}

	if m.rateLimited, err = meter.Int64Counter(
		"http.client.rate_limited",
		metric.WithDescription("Number of API calls rejected by the client-side rate limiter"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// withOperationAttr appends http.client.operation taken from ctx.
func withOperationAttr(ctx context.Context, attrs []attribute.KeyValue) []attribute.KeyValue {
	op := operationFromContext(ctx)
	if op == "" {
		return attrs
	}
	out := make([]attribute.KeyValue, 0, len(attrs)+1)
	out = append(out, attrs...)
	return append(out, attribute.String("http.client.operation", op))
}

// recordDuration records how long a call took.
func (m *metrics) recordDuration(ctx context.Context, d time.Duration, attrs []attribute.KeyValue) {
	if m == nil {
		return
	}
	m.requestDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// recordBodySizes records request and response body sizes. Unknown or
// empty sizes are skipped; 202 Accepted replies usually have no body.
func (m *metrics) recordBodySizes(ctx context.Context, request, response int64, attrs []attribute.KeyValue) {
	if m == nil {
		return
	}
	attrs = withOperationAttr(ctx, attrs)
	if request > 0 {
		m.requestBodySize.Record(ctx, request, metric.WithAttributes(attrs...))
	}
	if response > 0 {
		m.responseBodySize.Record(ctx, response, metric.WithAttributes(attrs...))
	}
}

// startRequest marks a call in flight and returns the func that ends it.
func (m *metrics) startRequest(ctx context.Context, attrs []attribute.KeyValue) func() {
	if m == nil {
		return func() {}
	}
	opt := metric.WithAttributes(attrs...)
	m.activeRequests.Add(ctx, 1, opt)
	return func() { m.activeRequests.Add(ctx, -1, opt) }
}

// recordFailure counts a failed call under its operation and error type.
func (m *metrics) recordFailure(ctx context.Context, errorType string, attrs []attribute.KeyValue) {
	if m == nil || errorType == "" {
		return
	}
	kv := make([]attribute.KeyValue, 0, len(attrs)+2)
	kv = append(kv, withOperationAttr(ctx, attrs)...)
	kv = append(kv, attribute.String("error.type", errorType))
	m.requestErrors.Add(ctx, 1, metric.WithAttributes(kv...))
}

// recordRateLimited counts a call turned away by the limiter.
func (m *metrics) recordRateLimited(ctx context.Context) {
	if m == nil {
		return
	}
	m.rateLimited.Add(ctx, 1, metric.WithAttributes(withOperationAttr(ctx, nil)...))
}
