package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/xiaot623/stylist/internal/domain"
)

// recordEvent records an event to the store. It is a no-op without a store.
func (s *Service) recordEvent(ctx context.Context, requestID string, eventType domain.EventType, payload interface{}) error {
	if s.store == nil {
		return nil
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := &domain.Event{
		EventID:   "evt_" + uuid.New().String()[:8],
		RequestID: requestID,
		Ts:        time.Now().UnixMilli(),
		Type:      eventType,
		Payload:   payloadBytes,
	}

	return s.store.CreateEvent(ctx, event)
}

// record is recordEvent for call sites that only log failures.
func (s *Service) record(ctx context.Context, requestID string, eventType domain.EventType, payload interface{}) {
	if err := s.recordEvent(ctx, requestID, eventType, payload); err != nil {
		slog.Warn("failed to record event", "type", eventType, "request_id", requestID, "error", err)
	}
}

// GetRequestEvents returns the call events of one chat request.
func (s *Service) GetRequestEvents(ctx context.Context, requestID string, types []string, limit int) ([]domain.Event, error) {
	if s.store == nil {
		return nil, domain.ErrEventLogDisabled
	}
	events, err := s.store.GetEvents(ctx, requestID, 0, types, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

// EventLogEnabled reports whether call events are persisted.
func (s *Service) EventLogEnabled() bool {
	return s.store != nil
}
