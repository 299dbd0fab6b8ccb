// Package service orchestrates chat turns: session resolution, policy
// admission, agent streaming, persistence and fan-out.
package service

import (
	"github.com/nkzhang905/chatgate/internal/agentclient"
	"github.com/nkzhang905/chatgate/internal/config"
	"github.com/nkzhang905/chatgate/internal/hub"
	"github.com/nkzhang905/chatgate/internal/policy"
	"github.com/nkzhang905/chatgate/internal/store"
)

type Service struct {
	store        store.Store
	client       *agentclient.Client
	hub          *hub.Hub
	policyEngine *policy.Engine
	config       *config.Config
}

func New(st store.Store, client *agentclient.Client, h *hub.Hub, engine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        st,
		client:       client,
		hub:          h,
		policyEngine: engine,
		config:       cfg,
	}
}
