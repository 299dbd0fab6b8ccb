package agentclient

import (
	"strings"

	"github.com/nkzhang905/chatgate/internal/domain"
)

// BuildChatRequest assembles the streamQuery payload from newest-first
// history. Messages are reversed to chronological order, bot turns with
// no answer text are dropped, whitespace runs collapse to single spaces,
// and roles map human->human, bot->ai.
func BuildChatRequest(history []domain.ConversationMessage, sessionID, userID string) domain.ChatRequest {
	messages := make([]domain.OutboundMessage, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		content := NormalizeText(m.Text)
		if m.Role == domain.RoleBot && content == "" {
			continue
		}
		msgType := domain.MessageTypeHuman
		if m.Role == domain.RoleBot {
			msgType = domain.MessageTypeAI
		}
		messages = append(messages, domain.OutboundMessage{
			Content: content,
			Type:    msgType,
		})
	}

	return domain.ChatRequest{
		Input: domain.ChatRequestInput{
			Input: domain.ChatInput{
				Messages:  messages,
				SessionID: sessionID,
				UserID:    userID,
			},
		},
	}
}

// NormalizeText collapses all whitespace runs to single spaces and trims
// the ends. Normalization is idempotent.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
