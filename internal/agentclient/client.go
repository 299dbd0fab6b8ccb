// Package agentclient provides the HTTP client for streaming conversations
// to the hosted agent endpoint.
package agentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nkzhang905/chatgate/internal/domain"
)

// SessionProvider creates and retrieves the opaque session identifier
// reused for every request in a client session. GetSession returns the
// empty string when no session exists yet.
type SessionProvider interface {
	GetSession(ctx context.Context) (string, error)
	CreateSession(ctx context.Context) error
}

// Client streams conversations to the agent's streamQuery endpoint.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	sessions   SessionProvider
}

// NewClient creates a new agent client. baseURL is the agent endpoint base;
// the streamQuery path is appended per request.
func NewClient(baseURL string, sessions SessionProvider) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // Long timeout for streaming
		},
	}
}

// WithSessions returns a copy of the client bound to a different session
// provider. The underlying HTTP client is shared.
func (c *Client) WithSessions(sessions SessionProvider) *Client {
	clone := *c
	clone.sessions = sessions
	return &clone
}

// WithUserID returns a copy of the client that stamps requests with the
// given user id.
func (c *Client) WithUserID(userID string) *Client {
	clone := *c
	clone.userID = userID
	return &clone
}

// SendConversation turns the newest-first conversation history into a
// single streamQuery request and returns a handle over the response
// stream. A session is created through the provider if none exists;
// the same session id is reused for subsequent calls.
//
// Session failures are returned immediately as *domain.SessionError.
// Transport and server failures surface on the handle as its terminal
// error. The client never retries.
func (c *Client) SendConversation(ctx context.Context, history []domain.ConversationMessage) (*StreamHandle, error) {
	sessionID, err := c.ensureSession(ctx)
	if err != nil {
		return nil, &domain.SessionError{Err: err}
	}

	req := BuildChatRequest(history, sessionID, c.userID)
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	httpReq, err := http.NewRequestWithContext(streamCtx, http.MethodPost, c.baseURL+"/streamQuery", bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	handle := newStreamHandle(sessionID, cancel)
	go c.run(streamCtx, httpReq, handle)
	return handle, nil
}

// ensureSession asks the provider for the current session and creates one
// only when none exists.
func (c *Client) ensureSession(ctx context.Context) (string, error) {
	sessionID, err := c.sessions.GetSession(ctx)
	if err != nil {
		return "", err
	}
	if sessionID != "" {
		return sessionID, nil
	}
	if err := c.sessions.CreateSession(ctx); err != nil {
		return "", err
	}
	sessionID, err = c.sessions.GetSession(ctx)
	if err != nil {
		return "", err
	}
	if sessionID == "" {
		return "", fmt.Errorf("session provider returned no session after creation")
	}
	return sessionID, nil
}

// run executes the request and pumps response bytes into the handle in
// arrival order. Stream content is passed through raw; no framing is
// validated here.
func (c *Client) run(ctx context.Context, req *http.Request, handle *StreamHandle) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			handle.finish(ctx.Err())
			return
		}
		handle.finish(&domain.TransportError{Err: err})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		handle.finish(&domain.ServerError{StatusCode: resp.StatusCode, Body: string(body)})
		return
	}

	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if !handle.emit(ctx, string(buf[:n])) {
				handle.finish(ctx.Err())
				return
			}
		}
		if err != nil {
			if err == io.EOF {
				handle.finish(nil)
				return
			}
			if ctx.Err() != nil {
				handle.finish(ctx.Err())
				return
			}
			handle.finish(&domain.TransportError{Err: err})
			return
		}
	}
}
