// Package llm provides an abstraction for the text generation API client.
package llm

import "context"

// LLMClient defines the interface for text generation.
type LLMClient interface {
	// GenerateContent sends a prompt and returns the completion (non-streaming).
	GenerateContent(ctx context.Context, req *GenerateContentRequest) (*GenerateContentResponse, error)

	// Model returns the model name requests are sent to.
	Model() string
}

// Ensure Client implements LLMClient interface.
var _ LLMClient = (*Client)(nil)
