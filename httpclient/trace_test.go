package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestClassifyError(t *testing.T) {
	type args struct {
		err error
	}

	tests := []struct {
		name    string
		args    args
		wantVal string
	}{
		{
			name:    "given nil error, then returns empty",
			args:    args{err: nil},
			wantVal: "",
		},
		{
			name:    "given context cancelled, then returns cancelled",
			args:    args{err: context.Canceled},
			wantVal: ErrorTypeCancelled,
		},
		{
			name:    "given context deadline exceeded, then returns timeout",
			args:    args{err: context.DeadlineExceeded},
			wantVal: ErrorTypeTimeout,
		},
		{
			name:    "given wrapped context cancelled, then returns cancelled",
			args:    args{err: errors.Join(errors.New("request failed"), context.Canceled)},
			wantVal: ErrorTypeCancelled,
		},
		{
			name:    "given rate limited, then returns rate_limited",
			args:    args{err: fmt.Errorf("send: %w", ErrRateLimited)},
			wantVal: ErrorTypeRateLimited,
		},
		{
			name:    "given timeout in message, then returns timeout",
			args:    args{err: errors.New("connection timeout")},
			wantVal: ErrorTypeTimeout,
		},
		{
			name:    "given connection refused, then returns connection_refused",
			args:    args{err: errors.New("connection refused")},
			wantVal: ErrorTypeConnectionRefused,
		},
		{
			name:    "given connection reset, then returns connection_reset",
			args:    args{err: errors.New("connection reset by peer")},
			wantVal: ErrorTypeConnectionReset,
		},
		{
			name:    "given no such host, then returns dns_error",
			args:    args{err: errors.New("no such host")},
			wantVal: ErrorTypeDNSError,
		},
		{
			name:    "given tls error, then returns tls_error",
			args:    args{err: errors.New("tls handshake failed")},
			wantVal: ErrorTypeTLSError,
		},
		{
			name:    "given certificate error, then returns tls_error",
			args:    args{err: errors.New("certificate verify failed")},
			wantVal: ErrorTypeTLSError,
		},
		{
			name:    "given x509 error, then returns tls_error",
			args:    args{err: errors.New("x509: certificate signed by unknown authority")},
			wantVal: ErrorTypeTLSError,
		},
		{
			name:    "given eof error, then returns eof",
			args:    args{err: errors.New("unexpected eof")},
			wantVal: ErrorTypeEOF,
		},
		{
			name:    "given unknown error, then returns unknown",
			args:    args{err: errors.New("some random error")},
			wantVal: ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyError(tt.args.err)

			assert.Equal(t, tt.wantVal, result)
		})
	}
}

func TestClassifyError_NetErrors(t *testing.T) {
	type args struct {
		err error
	}

	tests := []struct {
		name    string
		args    args
		wantVal string
	}{
		{
			name: "given DNS error, then returns dns_error",
			args: args{
				err: &net.DNSError{Err: "no such host", Name: "example.com"},
			},
			wantVal: ErrorTypeDNSError,
		},
		{
			name: "given TLS record header error, then returns tls_error",
			args: args{
				err: &tls.RecordHeaderError{Msg: "tls: first record does not look like TLS"},
			},
			wantVal: ErrorTypeTLSError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyError(tt.args.err)

			assert.Equal(t, tt.wantVal, result)
		})
	}
}

func TestErrorTypeFromStatusCode(t *testing.T) {
	type args struct {
		statusCode int
	}

	tests := []struct {
		name    string
		args    args
		wantVal string
	}{
		{name: "given 200, then returns empty", args: args{statusCode: 200}, wantVal: ""},
		{name: "given 201, then returns empty", args: args{statusCode: 201}, wantVal: ""},
		{name: "given 301, then returns empty", args: args{statusCode: 301}, wantVal: ""},
		{name: "given 400, then returns status code", args: args{statusCode: 400}, wantVal: "400"},
		{name: "given 401, then returns status code", args: args{statusCode: 401}, wantVal: "401"},
		{name: "given 404, then returns status code", args: args{statusCode: 404}, wantVal: "404"},
		{name: "given 500, then returns status code", args: args{statusCode: 500}, wantVal: "500"},
		{name: "given 503, then returns status code", args: args{statusCode: 503}, wantVal: "503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errorTypeFromStatusCode(tt.args.statusCode)

			assert.Equal(t, tt.wantVal, result)
		})
	}
}

func TestSetSpanError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "HTTP GET")
	setSpanError(span, errors.New("connection refused"), ErrorTypeConnectionRefused)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "connection refused", spans[0].Status.Description)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)

	var errorType string
	for _, a := range spans[0].Attributes {
		if a.Key == "error.type" {
			errorType = a.Value.AsString()
		}
	}
	assert.Equal(t, ErrorTypeConnectionRefused, errorType)
}

func TestClassifyError_Exported(t *testing.T) {
	assert.Equal(t, classifyError(context.Canceled), ClassifyError(context.Canceled))
	assert.Empty(t, ClassifyError(nil))
}
