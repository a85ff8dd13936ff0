package domain

import "encoding/json"

// Event is a collaborator call record for one chat request.
type Event struct {
	EventID   string          `json:"event_id"`
	RequestID string          `json:"request_id"`
	Ts        int64           `json:"ts"` // Unix milliseconds
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// ChatReceivedPayload is the payload for chat_received.
type ChatReceivedPayload struct {
	Kind      InputKind `json:"kind"`
	ImageName string    `json:"image_name,omitempty"`
}

// VisionCallDonePayload is the payload for vision_call_done.
type VisionCallDonePayload struct {
	LatencyMs int64  `json:"latency_ms"`
	TagCount  int    `json:"tag_count"`
	Error     string `json:"error,omitempty"`
}

// SubjectDecisionPayload is the payload for subject_decision.
type SubjectDecisionPayload struct {
	Relevant bool     `json:"relevant"`
	Tags     []string `json:"tags"`
}

// GenerationCallDonePayload is the payload for generation_call_done.
type GenerationCallDonePayload struct {
	Model            string `json:"model,omitempty"`
	LatencyMs        int64  `json:"latency_ms"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
	TotalTokens      int    `json:"total_tokens,omitempty"`
	Error            string `json:"error,omitempty"`
}

// FallbackReturnedPayload is the payload for fallback_returned.
type FallbackReturnedPayload struct {
	Cause string `json:"cause"`
}

// ChatFailedPayload is the payload for chat_failed.
type ChatFailedPayload struct {
	Error string `json:"error"`
}
