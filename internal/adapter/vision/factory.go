package vision

import (
	"log/slog"

	"github.com/xiaot623/stylist/internal/config"
)

// NewVisionClient creates a vision client based on cfg.Mode.
// In mock mode it returns a MockClient; otherwise a real Client.
func NewVisionClient(cfg *config.Config) VisionClient {
	if cfg.IsMock() {
		slog.Info("STYLIST_MODE=MOCK detected, using mock vision client")
		return NewMockClient("")
	}

	return NewClient(cfg.VisionEndpoint, cfg.VisionAPIKey, cfg.VisionTimeout())
}
