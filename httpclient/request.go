package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestBuilder provides a fluent API for constructing HTTP requests.
//
// Create a RequestBuilder using Client.Request():
//
//	resp, err := client.Request("QueueDocument").
//	    Query("config_id", configID).
//	    Body(payload, "application/json").
//	    Post(ctx, "/document")
type RequestBuilder struct {
	client        *Client
	operationName string
	path          string
	queryParams   url.Values
	headers       http.Header
	body          []byte
	contentType   string
}

// Path sets the request path, resolved against the client's base URL.
func (rb *RequestBuilder) Path(path string) *RequestBuilder {
	rb.path = path
	return rb
}

// Query sets a single query parameter.
func (rb *RequestBuilder) Query(key, value string) *RequestBuilder {
	if rb.queryParams == nil {
		rb.queryParams = make(url.Values)
	}
	rb.queryParams.Set(key, value)
	return rb
}

// Queries sets multiple query parameters.
func (rb *RequestBuilder) Queries(params map[string]string) *RequestBuilder {
	for k, v := range params {
		rb.Query(k, v)
	}
	return rb
}

// Header sets a single request header, overriding client defaults.
func (rb *RequestBuilder) Header(key, value string) *RequestBuilder {
	rb.headers.Set(key, value)
	return rb
}

// Body sets an already encoded request body and its content type.
// Encoding belongs to the caller so that one client can speak several
// wire formats.
func (rb *RequestBuilder) Body(data []byte, contentType string) *RequestBuilder {
	rb.body = data
	rb.contentType = contentType
	return rb
}

// Get executes a GET request.
func (rb *RequestBuilder) Get(ctx context.Context, path ...string) (*Response, error) {
	return rb.Send(ctx, http.MethodGet, path...)
}

// Post executes a POST request.
func (rb *RequestBuilder) Post(ctx context.Context, path ...string) (*Response, error) {
	return rb.Send(ctx, http.MethodPost, path...)
}

// Put executes a PUT request.
func (rb *RequestBuilder) Put(ctx context.Context, path ...string) (*Response, error) {
	return rb.Send(ctx, http.MethodPut, path...)
}

// Delete executes a DELETE request.
func (rb *RequestBuilder) Delete(ctx context.Context, path ...string) (*Response, error) {
	return rb.Send(ctx, http.MethodDelete, path...)
}

// Send executes the request with an arbitrary method.
//
// A returned error always means no response was received; a non-2xx
// response is returned with a nil error and must be checked by the caller.
func (rb *RequestBuilder) Send(ctx context.Context, method string, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	return rb.execute(ctx, method)
}

// execute builds, signs and sends the HTTP request, then reads the body.
func (rb *RequestBuilder) execute(ctx context.Context, method string) (*Response, error) {
	targetURL, err := rb.buildURL()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if rb.body != nil {
		reqBody = bytes.NewReader(rb.body)
	}

	ctx = withOperation(ctx, rb.operationName)
	req, err := http.NewRequestWithContext(ctx, method, targetURL, reqBody)
	if err != nil {
		return nil, err
	}

	for k, v := range rb.client.config.DefaultHeaders {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	for k, v := range rb.headers {
		req.Header[k] = v
	}
	if rb.contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", rb.contentType)
	}

	if signer := rb.client.config.Signer; signer != nil {
		if err := signer(req); err != nil {
			return nil, err
		}
	}

	cfg := rb.client.config
	if cfg.Debug {
		logRequest(cfg.Logger, rb.operationName, req)
	}

	startTime := time.Now()

	httpResp, err := rb.client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	duration := time.Since(startTime)

	if cfg.Debug {
		logResponse(cfg.Logger, rb.operationName, httpResp, duration)
	}

	resp := &Response{
		Response: httpResp,
		request:  req,
		body:     body,
		duration: duration,
	}

	if cfg.GenerateCurl {
		resp.curlCommand = generateCurlCommand(req, rb.body)
	}

	return resp, nil
}

// buildURL joins the base URL and path and appends query parameters.
func (rb *RequestBuilder) buildURL() (string, error) {
	fullURL := rb.path
	if base := rb.client.config.BaseURL; base != "" {
		fullURL = strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rb.path, "/")
	}

	if len(rb.queryParams) == 0 {
		return fullURL, nil
	}

	u, err := url.Parse(fullURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range rb.queryParams {
		for _, vv := range v {
			q.Add(k, vv)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type operationKey struct{}

// withOperation stores the operation name for the instrumented transport.
func withOperation(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey{}, name)
}

// operationFromContext returns the operation name set by withOperation.
func operationFromContext(ctx context.Context) string {
	name, _ := ctx.Value(operationKey{}).(string)
	return name
}
