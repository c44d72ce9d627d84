package httpclient

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"regexp"
	"sync"
)

// MockTransport provides a configurable http.RoundTripper for testing.
// It stubs responses and records every request it receives, body included.
type MockTransport struct {
	mu          sync.RWMutex
	stubs       []stub
	defaultResp *stubResponse
	defaultErr  error
	requests    []*http.Request
	bodies      [][]byte
	requestHook func(*http.Request)
}

type stubResponse struct {
	statusCode  int
	body        []byte
	contentType string
}

type stub struct {
	matcher  func(*http.Request) bool
	response *stubResponse
	err      error
}

// NewMockTransport creates a new MockTransport for testing.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// StubResponse stubs all unmatched requests to return the given response.
func (m *MockTransport) StubResponse(statusCode int, body string) *MockTransport {
	return m.StubResponseType(statusCode, body, "")
}

// StubResponseType is StubResponse with a Content-Type header.
func (m *MockTransport) StubResponseType(statusCode int, body, contentType string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResp = &stubResponse{statusCode: statusCode, body: []byte(body), contentType: contentType}
	return m
}

// StubError stubs all unmatched requests to return the given error.
func (m *MockTransport) StubError(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultErr = err
	return m
}

// StubPath stubs requests matching the path to return the given response.
func (m *MockTransport) StubPath(path string, statusCode int, body string) *MockTransport {
	return m.StubFunc(func(req *http.Request) bool {
		return req.URL.Path == path
	}, statusCode, body)
}

// StubPathRegex stubs requests matching the path regex to return the given response.
func (m *MockTransport) StubPathRegex(pattern string, statusCode int, body string) *MockTransport {
	re := regexp.MustCompile(pattern)
	return m.StubFunc(func(req *http.Request) bool {
		return re.MatchString(req.URL.Path)
	}, statusCode, body)
}

// StubMethod stubs requests with the given method to return the given response.
func (m *MockTransport) StubMethod(method string, statusCode int, body string) *MockTransport {
	return m.StubFunc(func(req *http.Request) bool {
		return req.Method == method
	}, statusCode, body)
}

// StubFunc stubs requests matching the predicate to return the given response.
// Stubs are checked in registration order; the first match wins.
func (m *MockTransport) StubFunc(
	matcher func(*http.Request) bool,
	statusCode int,
	body string,
) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{
		matcher:  matcher,
		response: &stubResponse{statusCode: statusCode, body: []byte(body)},
	})
	return m
}

// StubFuncError stubs requests matching the predicate to return the given error.
func (m *MockTransport) StubFuncError(matcher func(*http.Request) bool, err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{
		matcher: matcher,
		err:     err,
	})
	return m
}

// OnRequest sets a hook that is called for each request before the stub
// lookup. A hook that blocks holds the request in flight.
func (m *MockTransport) OnRequest(fn func(*http.Request)) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestHook = fn
	return m
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.bodies = append(m.bodies, body)
	hook := m.requestHook
	m.mu.Unlock()

	if hook != nil {
		hook(req)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.stubs {
		if s.matcher(req) {
			if s.err != nil {
				return nil, s.err
			}
			return s.response.build(req), nil
		}
	}

	if m.defaultErr != nil {
		return nil, m.defaultErr
	}
	if m.defaultResp != nil {
		return m.defaultResp.build(req), nil
	}

	return nil, errors.New("no stub found for request: " + req.Method + " " + req.URL.Path)
}

// Requests returns all requests made through this transport.
func (m *MockTransport) Requests() []*http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*http.Request{}, m.requests...)
}

// RequestCount returns the number of requests made.
func (m *MockTransport) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// LastRequest returns the most recent request, or nil if none.
func (m *MockTransport) LastRequest() *http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// LastRequestBody returns the body of the most recent request, or nil.
func (m *MockTransport) LastRequestBody() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.bodies) == 0 {
		return nil
	}
	return m.bodies[len(m.bodies)-1]
}

// Reset clears all recorded requests and stubs.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.bodies = nil
	m.stubs = nil
	m.defaultResp = nil
	m.defaultErr = nil
	m.requestHook = nil
}

// build creates a fresh response so that every caller gets a readable body.
func (s *stubResponse) build(req *http.Request) *http.Response {
	header := make(http.Header)
	if s.contentType != "" {
		header.Set("Content-Type", s.contentType)
	}
	return &http.Response{
		Status:        http.StatusText(s.statusCode),
		StatusCode:    s.statusCode,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(s.body)),
		ContentLength: int64(len(s.body)),
		Request:       req,
	}
}
