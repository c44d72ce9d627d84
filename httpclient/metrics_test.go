package httpclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewMetrics(t *testing.T) {
	tests := []struct {
		name    string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "given valid meter, then creates all instruments",
			wantErr: assert.NoError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp := sdkmetric.NewMeterProvider()
			defer mp.Shutdown(context.Background())

			meter := mp.Meter("test")
			m, err := newMetrics(meter)

			tt.wantErr(t, err)
			assert.NotNil(t, m)
			assert.NotNil(t, m.requestDuration)
			assert.NotNil(t, m.requestBodySize)
			assert.NotNil(t, m.responseBodySize)
			assert.NotNil(t, m.activeRequests)
			assert.NotNil(t, m.requestErrors)
			assert.NotNil(t, m.rateLimited)
		})
	}
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := newMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := withOperation(context.Background(), "QueueBatch")
	attrs := []attribute.KeyValue{attribute.String("http.client.name", "semantria")}

	m.recordDuration(ctx, 250*time.Millisecond, attrs)
	m.recordBodySizes(ctx, 2048, 512, attrs)
	m.recordBodySizes(ctx, -1, 0, attrs)
	endFirst := m.startRequest(ctx, attrs)
	m.startRequest(ctx, attrs)
	endFirst()
	m.recordFailure(ctx, ErrorTypeTimeout, attrs)
	m.recordFailure(ctx, "", attrs)
	m.recordRateLimited(ctx)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	found := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			found[metric.Name] = metric
		}
	}

	duration, ok := found["http.client.request.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	assert.InDelta(t, 0.25, duration.DataPoints[0].Sum, 0.0001)

	reqSize, ok := found["http.client.request.body.size"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, reqSize.DataPoints, 1)
	assert.Equal(t, uint64(1), reqSize.DataPoints[0].Count)
	assert.Equal(t, int64(2048), reqSize.DataPoints[0].Sum)

	respSize, ok := found["http.client.response.body.size"].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, respSize.DataPoints, 1)
	assert.Equal(t, int64(512), respSize.DataPoints[0].Sum)
	op, _ := respSize.DataPoints[0].Attributes.Value("http.client.operation")
	assert.Equal(t, "QueueBatch", op.AsString())

	assert.Equal(t, int64(1), sumCounter(t, rm, "http.client.active_requests"))
	assert.Equal(t, int64(1), sumCounter(t, rm, "http.client.rate_limited"))

	errs, ok := found["http.client.request.error"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, errs.DataPoints, 1)
	errType, _ := errs.DataPoints[0].Attributes.Value("error.type")
	assert.Equal(t, ErrorTypeTimeout, errType.AsString())
	errOp, _ := errs.DataPoints[0].Attributes.Value("http.client.operation")
	assert.Equal(t, "QueueBatch", errOp.AsString())
}

func TestWithOperationAttr(t *testing.T) {
	t.Parallel()

	base := []attribute.KeyValue{attribute.String("http.client.name", "semantria")}

	tests := []struct {
		name  string
		ctx   context.Context
		wantN int
		want  string
	}{
		{
			name:  "given operation in context, then appends it",
			ctx:   withOperation(context.Background(), "GetStatus"),
			wantN: 2,
			want:  "GetStatus",
		},
		{
			name:  "given no operation, then leaves attributes alone",
			ctx:   context.Background(),
			wantN: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := withOperationAttr(tt.ctx, base)

			require.Len(t, got, tt.wantN)
			assert.Len(t, base, 1)
			if tt.want != "" {
				assert.Equal(t, attribute.String("http.client.operation", tt.want), got[1])
			}
		})
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.recordDuration(ctx, time.Second, nil)
		m.recordBodySizes(ctx, 1, 1, nil)
		m.startRequest(ctx, nil)()
		m.recordFailure(ctx, ErrorTypeUnknown, nil)
		m.recordRateLimited(ctx)
	})
}
