package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nkzhang905/chatgate/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStoreSessionAndMessages(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	session := &domain.Session{
		SessionID: "s1",
		UserID:    "u1",
		CreatedAt: time.Now(),
		Metadata:  json.RawMessage(`{"channel":"web"}`),
	}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	gotSession, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if gotSession == nil || gotSession.UserID != "u1" {
		t.Fatalf("unexpected session: %+v", gotSession)
	}

	missing, err := store.GetSession(ctx, "nope")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown session, got %+v", missing)
	}

	msg := &domain.Message{
		MessageID: "m1",
		SessionID: "s1",
		RunID:     "r1",
		Role:      "human",
		Content:   "hello",
		CreatedAt: time.Now(),
	}
	if err := store.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	messages, err := store.GetMessages(ctx, "s1", 10, "")
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "hello" || messages[0].RunID != "r1" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}

func TestSQLiteStoreGetOrCreateSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	created, err := store.GetOrCreateSession(ctx, "s1", "u1")
	if err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	if created.SessionID != "s1" {
		t.Fatalf("unexpected session: %+v", created)
	}

	again, err := store.GetOrCreateSession(ctx, "s1", "other")
	if err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	if again.UserID != "u1" {
		t.Fatalf("expected existing session to be returned, got %+v", again)
	}
}

func TestSQLiteStoreMessagesOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	if err := store.CreateSession(ctx, &domain.Session{SessionID: "s1", UserID: "u1", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	base := time.Now()
	for i, content := range []string{"first", "second", "third"} {
		msg := &domain.Message{
			MessageID: "m" + string(rune('1'+i)),
			SessionID: "s1",
			Role:      "human",
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.CreateMessage(ctx, msg); err != nil {
			t.Fatalf("CreateMessage failed: %v", err)
		}
	}

	messages, err := store.GetMessages(ctx, "s1", 2, "")
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(messages) != 2 || messages[0].Content != "first" || messages[1].Content != "second" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}

func TestSQLiteStoreFeedback(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	fb := &domain.Feedback{
		RunID: "r1",
		Score: 4,
		Text:  "helpful",
	}
	if err := store.CreateFeedback(ctx, fb); err != nil {
		t.Fatalf("CreateFeedback failed: %v", err)
	}

	entries, err := store.GetFeedback(ctx, "r1")
	if err != nil {
		t.Fatalf("GetFeedback failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Score != 4 || entries[0].Text != "helpful" || entries[0].LogType != domain.FeedbackLogType {
		t.Fatalf("unexpected feedback: %+v", entries[0])
	}
	if entries[0].LoggedAt.IsZero() {
		t.Fatal("expected logged_at to be set")
	}
}
