package service

import (
	"context"
	"log/slog"
	"time"
)

// RunUploadSweeper removes uploads left behind by a crashed process until ctx
// is done. Normal requests delete their own upload before returning.
func (s *Service) RunUploadSweeper(ctx context.Context) {
	interval := s.config.UploadSweepInterval()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepUploads()
		}
	}
}

func (s *Service) sweepUploads() {
	removed, err := s.uploads.Sweep(s.config.UploadMaxAge())
	if err != nil {
		slog.Warn("upload sweep failed", "dir", s.uploads.Dir(), "error", err)
		return
	}
	if removed > 0 {
		slog.Info("removed stale uploads", "count", removed, "dir", s.uploads.Dir())
	}
}
