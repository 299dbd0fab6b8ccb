package service

import (
	"context"
	"fmt"
	"log"

	"github.com/nkzhang905/chatgate/internal/domain"
)

// RecordFeedback validates, persists and logs feedback for a run.
func (s *Service) RecordFeedback(ctx context.Context, fb *domain.Feedback) error {
	if fb.RunID == "" {
		return fmt.Errorf("run_id is required")
	}
	fb.LogType = domain.FeedbackLogType

	if err := s.store.CreateFeedback(ctx, fb); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	log.Printf("feedback recorded: run_id=%s score=%.1f", fb.RunID, fb.Score)
	return nil
}
