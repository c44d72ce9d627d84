package semantria

import (
	"net/http"
	"reflect"
)

// Convention is the way a call delivers its outcome.
type Convention int

const (
	// Blocking returns the outcome from Call.Do.
	Blocking Convention = iota
	// Callback hands the outcome to the function passed to Call.Go.
	Callback
	// Deferred settles the Future returned by Call.Async.
	Deferred
)

func (c Convention) String() string {
	switch c {
	case Blocking:
		return "blocking"
	case Callback:
		return "callback"
	case Deferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Descriptor describes one pending HTTP call before dispatch.
//
// Endpoint methods build a fresh Descriptor per call; the OnRequest hook
// receives it and must not modify it.
type Descriptor struct {
	// Operation names the endpoint method, e.g. "QueueDocument".
	Operation string
	Method    string
	// Path is relative to /{format}/, e.g. "document/batch".
	Path string
	// Query holds query parameters. Keys with empty values are not sent.
	Query map[string]string
	// Body is serialized in the session format. Nil means no body.
	Body any
	// XMLRoot and XMLItem name the wrapper and list item elements of an
	// XML body.
	XMLRoot string
	XMLItem string
	// AfterResponseHook triggers Hooks.OnAfterResponse on success.
	AfterResponseHook bool
	// Convention is set when the call is delivered.
	Convention Convention
}

// query returns Query without empty values.
func (d *Descriptor) query() map[string]string {
	q := make(map[string]string, len(d.Query))
	for k, v := range d.Query {
		if v != "" {
			q[k] = v
		}
	}
	return q
}

// isNilBody reports whether v is nil, including a nil slice, map or
// pointer stored in the interface.
func isNilBody(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// RawResponse is a successful HTTP response before parsing.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Result is a parsed successful response.
type Result struct {
	StatusCode int
	Header     http.Header
	// Data is the parsed body: map[string]any, []any, a scalar, or nil for
	// an empty body (e.g. 202 Accepted after queueing).
	Data any
}

// Map returns Data as a map, or nil if it is not one.
func (r *Result) Map() map[string]any {
	m, _ := r.Data.(map[string]any)
	return m
}

// List returns Data as a list, or nil if it is not one.
func (r *Result) List() []any {
	l, _ := r.Data.([]any)
	return l
}
