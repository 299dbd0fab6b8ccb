package domain

import "fmt"

// SessionError wraps a failure from the session provider. It is
// propagated unchanged; the gateway performs no recovery.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session error: %v", e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// TransportError wraps a network or connection failure during send or
// streaming. No retry is performed; retry policy belongs to the caller.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-success HTTP status from the agent endpoint.
// The payload is carried verbatim, not parsed.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("agent returned status %d: %s", e.StatusCode, e.Body)
}

// PolicyError is returned when the chat admission policy blocks a
// conversation before it reaches the agent.
type PolicyError struct {
	Decision string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("conversation blocked by policy (decision: %s)", e.Decision)
}
