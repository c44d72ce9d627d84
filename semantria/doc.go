// Package semantria is a client for the Semantria text analytics REST API.
//
// A Session carries the consumer key and secret, the wire format (JSON or
// XML) and optional hooks. Every endpoint method returns a *Call, which is
// delivered in one of three ways:
//
//	// Blocking
//	res, err := session.GetStatus().Do(ctx)
//
//	// Callback, invoked on another goroutine
//	err := session.GetDocument(id, "").Go(ctx, func(res *semantria.Result, err error) {
//	    ...
//	})
//
//	// Deferred
//	future, err := session.GetStatistics().Async(ctx)
//	res, err := future.Wait(ctx)
//
// Requests are signed with two-legged OAuth 1.0 (HMAC-SHA1). Transport
// concerns such as timeouts, tracing, metrics, debug logging and rate
// limiting come from package httpclient and are configured with
// WithHTTPOptions.
//
// # Errors
//
// Every returned error matches exactly one sentinel with errors.Is:
//
//	ErrConfiguration  invalid arguments to New
//	ErrValidation     invalid endpoint arguments, reported before sending
//	ErrNetwork        no response (DNS, connect, timeout, cancellation)
//	ErrAPI            non-2xx response; see *APIError for status and body
//	ErrSerialization  body could not be encoded or decoded
//
// # Hooks
//
// OnRequest runs before every dispatch. OnResponse runs for 2xx responses
// before parsing. OnAfterResponse runs after a successful parse on the
// queueing endpoints and GetDocument. OnError runs exactly once for every
// failed call that was dispatched or failed to encode, before the error is
// delivered. Validation errors do not fire hooks.
package semantria
