package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nkzhang905/chatgate/internal/agentclient"
	"github.com/nkzhang905/chatgate/internal/config"
	"github.com/nkzhang905/chatgate/internal/hub"
	"github.com/nkzhang905/chatgate/internal/policy"
	"github.com/nkzhang905/chatgate/internal/service"
	"github.com/nkzhang905/chatgate/internal/session"
	"github.com/nkzhang905/chatgate/internal/store"
)

// newTestHandler wires a handler against an in-memory store and a stub
// agent backend.
func newTestHandler(t *testing.T, agent http.HandlerFunc) (*Handler, *store.SQLiteStore) {
	t.Helper()

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}

	backendURL := "http://127.0.0.1:0"
	if agent != nil {
		backend := httptest.NewServer(agent)
		t.Cleanup(backend.Close)
		backendURL = backend.URL
	}

	cfg := &config.Config{
		BackendURL:      backendURL,
		ChatbotName:     "Test Bot",
		EnvironmentName: "test",
	}
	h := hub.New()
	client := agentclient.NewClient(backendURL, session.NewMemory())
	svc := service.New(st, client, h, engine, cfg)

	return NewHandler(svc, h, cfg), st
}
