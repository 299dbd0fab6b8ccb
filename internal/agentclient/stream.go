package agentclient

import (
	"context"
	"strings"
	"sync"
)

// Chunk is one partial-progress event from a response stream. Delta is
// the text that arrived in this event; Text is everything received so far.
type Chunk struct {
	Delta string
	Text  string
}

// StreamHandle exposes an in-flight response stream. Chunks are delivered
// in the order bytes arrived on the wire. The chunk channel closes after
// exactly one terminal condition (end-of-stream, failure or cancellation);
// Err reports it once Done is closed. Nothing is emitted after Cancel.
type StreamHandle struct {
	sessionID string
	chunks    chan Chunk
	done      chan struct{}
	cancel    context.CancelFunc

	mu       sync.Mutex
	received strings.Builder
	err      error
	finished bool
}

func newStreamHandle(sessionID string, cancel context.CancelFunc) *StreamHandle {
	return &StreamHandle{
		sessionID: sessionID,
		chunks:    make(chan Chunk),
		done:      make(chan struct{}),
		cancel:    cancel,
	}
}

// SessionID returns the session id the request was sent with.
func (h *StreamHandle) SessionID() string { return h.sessionID }

// Chunks returns the channel of partial-progress events. It is closed
// when the stream terminates.
func (h *StreamHandle) Chunks() <-chan Chunk { return h.chunks }

// Done is closed once the stream has terminated for any reason.
func (h *StreamHandle) Done() <-chan struct{} { return h.done }

// Err reports the terminal error. It is nil for a completed stream and
// context.Canceled after Cancel. Valid once Done is closed.
func (h *StreamHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Text returns the text received so far.
func (h *StreamHandle) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received.String()
}

// Cancel aborts the underlying request. No further chunk or terminal
// events are delivered after it returns.
func (h *StreamHandle) Cancel() {
	h.cancel()
}

// emit delivers one delta to the consumer, honoring cancellation. It
// reports false when the stream context ended before delivery.
func (h *StreamHandle) emit(ctx context.Context, delta string) bool {
	h.mu.Lock()
	h.received.WriteString(delta)
	text := h.received.String()
	h.mu.Unlock()

	select {
	case h.chunks <- Chunk{Delta: delta, Text: text}:
		return true
	case <-ctx.Done():
		return false
	}
}

// finish records the terminal state and closes the handle exactly once.
func (h *StreamHandle) finish(err error) {
	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		return
	}
	h.finished = true
	h.err = err
	h.mu.Unlock()

	close(h.chunks)
	close(h.done)
	h.cancel()
}
