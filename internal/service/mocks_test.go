package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xiaot623/stylist/internal/adapter/llm"
	"github.com/xiaot623/stylist/internal/adapter/vision"
)

type mockVision struct {
	mock.Mock
}

func (m *mockVision) Analyze(ctx context.Context, image []byte) (*vision.AnalyzeResponse, error) {
	args := m.Called(ctx, image)
	resp, _ := args.Get(0).(*vision.AnalyzeResponse)
	return resp, args.Error(1)
}

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) GenerateContent(ctx context.Context, req *llm.GenerateContentRequest) (*llm.GenerateContentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*llm.GenerateContentResponse)
	return resp, args.Error(1)
}

func (m *mockLLM) Model() string {
	return "test-model"
}

func textReply(text string) *llm.GenerateContentResponse {
	return &llm.GenerateContentResponse{
		Candidates: []llm.Candidate{{
			Content:      &llm.Content{Role: "model", Parts: []llm.Part{{Text: text}}},
			FinishReason: "STOP",
		}},
		UsageMetadata: &llm.UsageMetadata{PromptTokenCount: 3, CandidatesTokenCount: 5, TotalTokenCount: 8},
	}
}

func visionReply(caption string, tags ...string) *vision.AnalyzeResponse {
	resp := &vision.AnalyzeResponse{Tags: []vision.Tag{}}
	for _, name := range tags {
		resp.Tags = append(resp.Tags, vision.Tag{Name: name, Confidence: 0.9})
	}
	if caption != "" {
		resp.Description = &vision.Description{Captions: []vision.Caption{{Text: caption, Confidence: 0.8}}}
	}
	return resp
}

// promptOf extracts the single user prompt from a generation request.
func promptOf(req *llm.GenerateContentRequest) string {
	if req == nil || len(req.Contents) == 0 || len(req.Contents[0].Parts) == 0 {
		return ""
	}
	return req.Contents[0].Parts[0].Text
}
