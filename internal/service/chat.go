package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nkzhang905/chatgate/internal/agentclient"
	"github.com/nkzhang905/chatgate/internal/domain"
	"github.com/nkzhang905/chatgate/internal/policy"
	"github.com/nkzhang905/chatgate/internal/session"
)

const defaultUserID = "default_user"

// Sink receives raw stream deltas in arrival order while a chat turn is
// in flight.
type Sink func(delta string) error

// StreamChat runs one conversation turn against the agent backend. The
// raw response stream is forwarded to sink as it arrives; in parallel the
// service parses the event framing to persist the completed turn and
// broadcast events to the session's WebSocket subscribers.
func (s *Service) StreamChat(ctx context.Context, inv domain.ChatInvocation, sink Sink) (*domain.ChatResult, error) {
	userID := inv.UserID
	if userID == "" {
		userID = defaultUserID
	}

	decision, err := s.policyEngine.Evaluate(ctx, policy.Input{
		SessionID:    inv.SessionID,
		MessageCount: len(inv.Messages),
		Content:      latestHumanText(inv.Messages),
	})
	if err != nil {
		return nil, fmt.Errorf("policy evaluation failed: %w", err)
	}
	if decision != policy.DecisionAllow {
		return nil, &domain.PolicyError{Decision: decision}
	}

	sessions := session.NewScoped(s.store, inv.SessionID, userID)
	client := s.client.WithSessions(sessions).WithUserID(userID)

	handle, err := client.SendConversation(ctx, inv.Messages)
	if err != nil {
		return nil, err
	}
	sessionID := handle.SessionID()

	if text := latestHumanText(inv.Messages); text != "" {
		if err := s.saveMessage(ctx, sessionID, "", domain.MessageTypeHuman, text); err != nil {
			log.Printf("ERROR: failed to save user message: %v", err)
			// Message storage failure must not interrupt the stream.
		}
	}

	var (
		scanner agentclient.EventScanner
		answer  strings.Builder
		runID   string
	)
	consume := func(events []domain.StreamEvent) {
		for _, evt := range events {
			switch evt.Event {
			case domain.StreamEventMetadata:
				if meta, err := agentclient.ParseMetadataEvent(evt.Data); err == nil {
					runID = meta.RunID
				}
			case domain.StreamEventDelta:
				if delta, err := agentclient.ParseDeltaEvent(evt.Data); err == nil {
					answer.WriteString(delta.Content)
				}
			}
			if err := s.hub.BroadcastJSON(sessionID, evt); err != nil {
				log.Printf("ERROR: failed to broadcast event: %v", err)
			}
		}
	}

	for chunk := range handle.Chunks() {
		if err := sink(chunk.Delta); err != nil {
			handle.Cancel()
			return nil, fmt.Errorf("stream consumer failed: %w", err)
		}
		consume(scanner.Push(chunk.Delta))
	}
	consume(scanner.Flush())

	if err := handle.Err(); err != nil {
		return nil, err
	}

	if answer.Len() > 0 {
		if err := s.saveMessage(ctx, sessionID, runID, domain.MessageTypeAI, answer.String()); err != nil {
			log.Printf("ERROR: failed to save agent message: %v", err)
		}
	}

	return &domain.ChatResult{
		SessionID: sessionID,
		RunID:     runID,
		Text:      answer.String(),
	}, nil
}

func (s *Service) saveMessage(ctx context.Context, sessionID, runID, role, content string) error {
	return s.store.CreateMessage(ctx, &domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: sessionID,
		RunID:     runID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// latestHumanText returns the newest human turn, normalized the same way
// the outbound payload is.
func latestHumanText(history []domain.ConversationMessage) string {
	for _, m := range history {
		if m.Role == domain.RoleHuman {
			return agentclient.NormalizeText(m.Text)
		}
	}
	return ""
}
