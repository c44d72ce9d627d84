package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"syscall"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Error type classifications for the error.type attribute.
const (
	ErrorTypeTimeout           = "timeout"
	ErrorTypeConnectionRefused = "connection_refused"
	ErrorTypeDNSError          = "dns_error"
	ErrorTypeTLSError          = "tls_error"
	ErrorTypeCancelled         = "cancelled"
	ErrorTypeConnectionReset   = "connection_reset"
	ErrorTypeEOF               = "eof"
	ErrorTypeRateLimited       = "rate_limited"
	ErrorTypeUnknown           = "unknown"
)

// ClassifyError returns an error.type classification for a transport error.
// It returns "" for a nil error.
func ClassifyError(err error) string {
	return classifyError(err)
}

// classifyError returns an error.type classification for the given error.
func classifyError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrRateLimited) {
		return ErrorTypeRateLimited
	}
	if errors.Is(err, context.Canceled) {
		return ErrorTypeCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTypeTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrorTypeDNSError
	}

	var tlsRecordErr *tls.RecordHeaderError
	if errors.As(err, &tlsRecordErr) {
		return ErrorTypeTLSError
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return ErrorTypeTLSError
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return ErrorTypeConnectionRefused
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return ErrorTypeConnectionReset
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrorTypeEOF
	}

	// Wrapped errors from net/http lose their types; fall back to the text.
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"):
		return ErrorTypeTimeout
	case strings.Contains(errStr, "connection refused"):
		return ErrorTypeConnectionRefused
	case strings.Contains(errStr, "connection reset"):
		return ErrorTypeConnectionReset
	case strings.Contains(errStr, "no such host"):
		return ErrorTypeDNSError
	case strings.Contains(errStr, "x509"), strings.Contains(errStr, "certificate"),
		strings.Contains(errStr, "tls"):
		return ErrorTypeTLSError
	case strings.Contains(errStr, "eof"):
		return ErrorTypeEOF
	}

	return ErrorTypeUnknown
}

// errorTypeFromStatusCode returns error.type for HTTP status codes.
// Per OTel semconv, the status code itself is used for 4xx/5xx.
func errorTypeFromStatusCode(statusCode int) string {
	if statusCode >= 400 {
		return strconv.Itoa(statusCode)
	}
	return ""
}

// setSpanError records an error on the span with status and attributes.
func setSpanError(span trace.Span, err error, errorType string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errorType != "" {
		span.SetAttributes(attribute.String("error.type", errorType))
	}
}
