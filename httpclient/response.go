package httpclient

import (
	"net/http"
	"time"
)

// Response wraps http.Response with the body already read and closed.
//
// Example usage:
//
//	resp, err := client.Request("GetStatus").Get(ctx, "/status")
//	if err != nil {
//	    return err // nothing came back from the server
//	}
//	if !resp.IsSuccess() {
//	    return fmt.Errorf("status %d: %s", resp.StatusCode, resp.String())
//	}
type Response struct {
	// Response embeds the standard http.Response. Its Body has already been
	// drained and closed; use Body() instead.
	*http.Response

	// request is the request that produced this response, after signing.
	request *http.Request

	// body is the full response body.
	body []byte

	// duration is the time from dispatch until the body was read.
	duration time.Duration

	// curlCommand is only populated with WithGenerateCurl(true).
	curlCommand string
}

// Body returns the response body.
func (r *Response) Body() []byte {
	return r.body
}

// String returns the response body as a string.
func (r *Response) String() string {
	return string(r.body)
}

// SentRequest returns the signed request that produced this response.
func (r *Response) SentRequest() *http.Request {
	return r.request
}

// Duration returns the time spent waiting for and reading the response.
func (r *Response) Duration() time.Duration {
	return r.duration
}

// IsSuccess returns true if the response status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the response status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// CurlCommand returns the cURL command equivalent for this request.
//
// This is only populated if WithGenerateCurl(true) was set on the client.
func (r *Response) CurlCommand() string {
	return r.curlCommand
}
