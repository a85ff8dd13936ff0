// Package domain defines the core domain models for the stylist gateway.
package domain

// EventType represents the type of a call event.
type EventType string

const (
	EventTypeChatReceived EventType = "chat_received"
	EventTypeChatDone     EventType = "chat_done"
	EventTypeChatFailed   EventType = "chat_failed"

	// Collaborator call events
	EventTypeVisionCallDone     EventType = "vision_call_done"
	EventTypeSubjectDecision    EventType = "subject_decision"
	EventTypeGenerationCallDone EventType = "generation_call_done"
	EventTypeFallbackReturned   EventType = "fallback_returned"
)

// InputKind tells which branch of the chat flow a request took.
type InputKind string

const (
	InputKindText  InputKind = "text"
	InputKindImage InputKind = "image"
)
