// Package session provides session identifier management for the chat
// client. A provider hands out the opaque session id reused across every
// request in a client session and creates one on demand.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nkzhang905/chatgate/internal/domain"
)

// Store is the subset of persistence the scoped provider needs.
type Store interface {
	GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error)
	CreateSession(ctx context.Context, session *domain.Session) error
}

// Scoped is a store-backed provider pinned to one client's session. When
// constructed with a session id it validates and reuses it; otherwise a
// session row is created on the first CreateSession call and reused after.
type Scoped struct {
	store  Store
	userID string

	mu sync.Mutex
	id string
}

// NewScoped creates a provider for the given (possibly empty) session id.
func NewScoped(store Store, sessionID, userID string) *Scoped {
	return &Scoped{store: store, userID: userID, id: sessionID}
}

// GetSession returns the active session id, or "" when none exists yet.
// A caller-supplied id is materialized in the store on first use.
func (p *Scoped) GetSession(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.id == "" {
		return "", nil
	}
	if _, err := p.store.GetOrCreateSession(ctx, p.id, p.userID); err != nil {
		return "", fmt.Errorf("failed to resolve session %s: %w", p.id, err)
	}
	return p.id, nil
}

// CreateSession creates and persists a fresh session id.
func (p *Scoped) CreateSession(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := uuid.New().String()
	err := p.store.CreateSession(ctx, &domain.Session{
		SessionID: id,
		UserID:    p.userID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	p.id = id
	return nil
}

// SessionID returns the current session id without touching the store.
func (p *Scoped) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Memory is an in-process provider with no persistence, the analog of a
// browser's sessionStorage. Useful for library consumers and tests.
type Memory struct {
	mu sync.Mutex
	id string
}

// NewMemory creates an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) GetSession(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, nil
}

func (m *Memory) CreateSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = uuid.New().String()
	return nil
}
