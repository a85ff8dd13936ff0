// Package store persists collaborator call events.
package store

import (
	"context"

	"github.com/xiaot623/stylist/internal/domain"
)

// Store defines the interface for event persistence.
type Store interface {
	CreateEvent(ctx context.Context, event *domain.Event) error
	GetEvents(ctx context.Context, requestID string, afterTs int64, types []string, limit int) ([]domain.Event, error)

	// Lifecycle
	Close() error
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)
