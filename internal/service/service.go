package service

import (
	"github.com/xiaot623/stylist/internal/adapter/llm"
	"github.com/xiaot623/stylist/internal/adapter/vision"
	"github.com/xiaot623/stylist/internal/config"
	"github.com/xiaot623/stylist/internal/policy"
	"github.com/xiaot623/stylist/internal/repository"
	"github.com/xiaot623/stylist/internal/upload"
)

// Service is the chat gateway. It holds no per-request state.
type Service struct {
	store        store.Store
	visionClient vision.VisionClient
	llmClient    llm.LLMClient
	uploads      *upload.Store
	policyEngine *policy.Engine
	config       *config.Config
}

// New builds the service. store may be nil, which disables the event log.
func New(store store.Store, visionClient vision.VisionClient, llmClient llm.LLMClient, uploads *upload.Store, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        store,
		visionClient: visionClient,
		llmClient:    llmClient,
		uploads:      uploads,
		policyEngine: policyEngine,
		config:       cfg,
	}
}
