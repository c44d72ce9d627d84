package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const redacted = "***"

// sensitiveQueryParams are masked in logs and cURL output.
var sensitiveQueryParams = map[string]bool{
	"oauth_signature": true,
	"api_key":         true,
	"secret":          true,
}

// sensitiveHeaders are masked in logs and cURL output.
var sensitiveHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// RedactURL returns u as a string with credential-bearing query
// parameters masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for k := range q {
		if sensitiveQueryParams[strings.ToLower(k)] {
			q.Set(k, redacted)
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}

// generateCurlCommand creates a cURL command equivalent for the given request.
//
// Credentials are masked, so the command documents the request shape but
// will not authenticate if replayed.
//
// Example output:
//
//	curl -X POST 'https://api.semantria.com/json/document?oauth_signature=%2A%2A%2A' \
//	  -H 'Content-Type: application/json' \
//	  -d '{"id":"1","text":"It was great"}'
func generateCurlCommand(req *http.Request, body []byte) string {
	parts := []string{"curl"}

	if req.Method != http.MethodGet {
		parts = append(parts, "-X", req.Method)
	}

	parts = append(parts, fmt.Sprintf("'%s'", RedactURL(req.URL)))

	headerKeys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		headerKeys = append(headerKeys, k)
	}
	sort.Strings(headerKeys)

	for _, k := range headerKeys {
		for _, v := range req.Header[k] {
			if sensitiveHeaders[k] {
				v = redacted
			}
			parts = append(parts, "-H", fmt.Sprintf("'%s: %s'", k, v))
		}
	}

	if len(body) > 0 {
		bodyStr := strings.ReplaceAll(string(body), "'", "'\\''")
		parts = append(parts, "-d", fmt.Sprintf("'%s'", bodyStr))
	}

	return strings.Join(parts, " ")
}

// logRequest logs the request details using zerolog.
func logRequest(logger zerolog.Logger, operation string, req *http.Request) {
	logger.Debug().
		Str("operation", operation).
		Str("method", req.Method).
		Str("url", RedactURL(req.URL)).
		Int64("content_length", req.ContentLength).
		Msg("HTTP request")
}

// logResponse logs the response details using zerolog.
func logResponse(
	logger zerolog.Logger,
	operation string,
	resp *http.Response,
	duration time.Duration,
) {
	logger.Debug().
		Str("operation", operation).
		Int("status", resp.StatusCode).
		Str("status_text", resp.Status).
		Dur("duration_ms", duration).
		Int64("content_length", resp.ContentLength).
		Msg("HTTP response")
}
