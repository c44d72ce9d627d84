package semantria

import (
	"context"
)

// Call is a prepared API call. Endpoint methods return one; nothing is
// sent until it is delivered with Do, Go or Async.
//
// Argument errors found while preparing the call are reported by every
// delivery method synchronously, without any network attempt and without
// firing hooks. Delivering the same Call twice sends two requests.
type Call struct {
	session *Session
	desc    Descriptor
	err     error
}

func (s *Session) newCall(d Descriptor) *Call {
	return &Call{session: s, desc: d}
}

// invalidCall returns a Call that fails every delivery with a
// *ValidationError for field.
func (s *Session) invalidCall(operation, field, reason string) *Call {
	return &Call{
		session: s,
		desc:    Descriptor{Operation: operation},
		err:     &ValidationError{Field: field, Reason: reason},
	}
}

// Descriptor returns a copy of the request the call will send.
func (c *Call) Descriptor() Descriptor {
	return c.desc
}

// Err returns the argument error detected while preparing the call, if any.
func (c *Call) Err() error {
	return c.err
}

func (c *Call) descriptor(conv Convention) *Descriptor {
	d := c.desc
	d.Convention = conv
	return &d
}

// Do sends the call and waits for its outcome.
func (c *Call) Do(ctx context.Context) (*Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.session.execute(ctx, c.descriptor(Blocking))
}

// Go sends the call in the background and hands the outcome to fn.
//
// fn is invoked exactly once, on a separate goroutine, after the request
// completes. It is never invoked when Go returns an error.
func (c *Call) Go(ctx context.Context, fn func(*Result, error)) error {
	if c.err != nil {
		return c.err
	}
	if fn == nil {
		return &ValidationError{Field: "callback", Reason: "is required"}
	}

	d := c.descriptor(Callback)
	go func() {
		fn(c.session.execute(ctx, d))
	}()
	return nil
}

// Async sends the call in the background and returns a Future that
// settles with its outcome.
func (c *Call) Async(ctx context.Context) (*Future, error) {
	if c.err != nil {
		return nil, c.err
	}

	f := newFuture()
	d := c.descriptor(Deferred)
	go func() {
		f.settle(c.session.execute(ctx, d))
	}()
	return f, nil
}

// Future is the pending outcome of Call.Async. It settles exactly once.
type Future struct {
	done chan struct{}
	res  *Result
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) settle(res *Result, err error) {
	f.res, f.err = res, err
	close(f.done)
}

// Done is closed when the Future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the Future settles or ctx is done. Cancelling ctx
// stops the wait, not the request.
func (f *Future) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Settled reports whether the outcome is available.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
