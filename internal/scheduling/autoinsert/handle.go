package autoinsert

import "sync"

// Handle is the cancellable, pollable run of a single Search (§4.8
// "Output stream" / §5 "Cancellation"). The caller polls periodically; Stop
// requests cancellation but does not block waiting for it to take effect.
type Handle struct {
	mu     sync.Mutex
	result Result
	done   chan struct{}
	cancel chan struct{}
	once   sync.Once
}

// Start launches Search(input, ...) in its own goroutine and returns a
// Handle for polling or cancelling it.
func Start(input Input) *Handle {
	h := &Handle{
		done:   make(chan struct{}),
		cancel: make(chan struct{}),
	}
	go func() {
		res := Search(input, h.cancel)
		h.mu.Lock()
		h.result = res
		h.mu.Unlock()
		close(h.done)
	}()
	return h
}

// Stop requests cancellation; safe to call more than once or after the
// search has already finished.
func (h *Handle) Stop() {
	h.once.Do(func() { close(h.cancel) })
}

// Poll returns the current result and whether the search has finished.
// Before completion, the result's Beginnings field is nil.
func (h *Handle) Poll() (Result, bool) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the search finishes and returns its result.
func (h *Handle) Wait() Result {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result
}
