package semantria

// Hooks are observation points in the request pipeline. Nil fields are
// no-ops.
//
// Hooks run on whichever goroutine executes the call: the caller's for
// Call.Do, a background goroutine for Call.Go and Call.Async. They must be
// safe for concurrent use when calls overlap.
type Hooks struct {
	// OnRequest runs before dispatch.
	OnRequest func(d *Descriptor)
	// OnResponse runs when a 2xx response arrives, before parsing.
	OnResponse func(raw *RawResponse)
	// OnAfterResponse runs after a successful parse on endpoints that
	// submit work (queueing documents and collections) and on GetDocument.
	OnAfterResponse func(res *Result)
	// OnError runs once for every failed call, before the error is
	// delivered.
	OnError func(err error)
}

// withDefaults returns a copy of h where every nil hook is a no-op.
func (h Hooks) withDefaults() Hooks {
	if h.OnRequest == nil {
		h.OnRequest = func(*Descriptor) {}
	}
	if h.OnResponse == nil {
		h.OnResponse = func(*RawResponse) {}
	}
	if h.OnAfterResponse == nil {
		h.OnAfterResponse = func(*Result) {}
	}
	if h.OnError == nil {
		h.OnError = func(error) {}
	}
	return h
}
