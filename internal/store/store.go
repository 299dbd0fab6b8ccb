// Package store provides persistence for sessions, messages and feedback.
package store

import (
	"context"

	"github.com/nkzhang905/chatgate/internal/domain"
)

// Store is the persistence interface used by the gateway.
type Store interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error)

	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int, before string) ([]domain.Message, error)

	CreateFeedback(ctx context.Context, feedback *domain.Feedback) error
	GetFeedback(ctx context.Context, runID string) ([]domain.Feedback, error)

	Close() error
}
