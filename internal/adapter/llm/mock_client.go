package llm

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of LLMClient for offline runs.
type MockClient struct{}

// NewMockClient creates a new mock generation client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// Model returns the mock model name.
func (m *MockClient) Model() string {
	return "mock-gemini"
}

// GenerateContent returns a canned reply quoting the prompt.
func (m *MockClient) GenerateContent(ctx context.Context, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var prompt string
	for i := len(req.Contents) - 1; i >= 0 && prompt == ""; i-- {
		if req.Contents[i].Role == "user" && len(req.Contents[i].Parts) > 0 {
			prompt = req.Contents[i].Parts[0].Text
		}
	}

	text := "[MOCK] This is a mock response from the generation client."
	if prompt != "" {
		text = fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(prompt, 100))
	}

	return &GenerateContentResponse{
		Candidates: []Candidate{
			{
				Content:      &Content{Role: "model", Parts: []Part{{Text: text}}},
				FinishReason: "STOP",
			},
		},
		UsageMetadata: &UsageMetadata{
			PromptTokenCount:     len(prompt) / 4,
			CandidatesTokenCount: len(text) / 4,
			TotalTokenCount:      (len(prompt) + len(text)) / 4,
		},
		ModelVersion: m.Model(),
	}, nil
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
