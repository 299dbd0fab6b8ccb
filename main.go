package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nkzhang905/chatgate/internal/agentclient"
	"github.com/nkzhang905/chatgate/internal/config"
	"github.com/nkzhang905/chatgate/internal/hub"
	"github.com/nkzhang905/chatgate/internal/policy"
	"github.com/nkzhang905/chatgate/internal/service"
	"github.com/nkzhang905/chatgate/internal/session"
	"github.com/nkzhang905/chatgate/internal/store"
	transport "github.com/nkzhang905/chatgate/internal/transport/http"
)

func main() {
	cfg := config.Load()

	log.Printf("Starting chat gateway...")
	log.Printf("Environment: %s", cfg.EnvironmentName)
	log.Printf("Chatbot: %s", cfg.ChatbotName)
	log.Printf("Agent backend: %s", cfg.BackendURL)
	log.Printf("Database: %s", cfg.DatabaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize agent client
	client := agentclient.NewClient(cfg.BackendURL, session.NewMemory())

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize hub and service
	h := hub.New()
	svc := service.New(db, client, h, policyEngine, cfg)

	// Initialize HTTP server
	server := transport.NewServer(svc, h, cfg)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Gateway started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gateway...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Gateway stopped")
}
