package llm

import (
	"log/slog"

	"github.com/xiaot623/stylist/internal/config"
)

// NewLLMClient creates a generation client based on cfg.Mode.
// In mock mode it returns a MockClient; otherwise a real Client.
func NewLLMClient(cfg *config.Config) LLMClient {
	if cfg.IsMock() {
		slog.Info("STYLIST_MODE=MOCK detected, using mock generation client")
		return NewMockClient()
	}

	return NewClient(cfg.GenAIBaseURL, cfg.GenAIKey, cfg.GenAIModel, cfg.GenAITimeout())
}
