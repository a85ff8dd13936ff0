package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xiaot623/stylist/internal/adapter/llm"
	"github.com/xiaot623/stylist/internal/domain"
)

// HandleChat runs one chat request. An image, when present, takes precedence
// over UserInput. Every image-path failure is masked into the fallback
// message; text-path failures are returned to the caller.
func (s *Service) HandleChat(ctx context.Context, requestID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if requestID == "" {
		requestID = "chat_" + uuid.New().String()[:8]
	}

	s.record(ctx, requestID, domain.EventTypeChatReceived, domain.ChatReceivedPayload{
		Kind:      req.Kind(),
		ImageName: req.ImageName,
	})

	var (
		text string
		err  error
	)
	if req.Image != nil {
		text, err = s.handleImage(ctx, requestID, req.Image)
	} else {
		text, err = s.handleText(ctx, requestID, req.UserInput)
	}
	if err != nil {
		s.record(ctx, requestID, domain.EventTypeChatFailed, domain.ChatFailedPayload{Error: err.Error()})
		return nil, err
	}

	s.record(ctx, requestID, domain.EventTypeChatDone, struct{}{})
	return &domain.ChatResponse{Response: text}, nil
}

func (s *Service) handleText(ctx context.Context, requestID, userInput string) (string, error) {
	if strings.TrimSpace(userInput) == "" {
		return "", domain.ErrEmptyInput
	}
	text, err := s.generate(ctx, requestID, userInput)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return text, nil
}

func (s *Service) handleImage(ctx context.Context, requestID string, image io.Reader) (string, error) {
	file, err := s.uploads.Save(image)
	if err != nil {
		return "", fmt.Errorf("persist upload: %w", err)
	}
	defer func() {
		if err := s.uploads.Release(file); err != nil {
			slog.Error("failed to release upload", "request_id", requestID, "path", file.Path, "error", err)
		}
	}()

	text, err := s.adviseOnOutfit(ctx, requestID, file)
	if err != nil {
		cause := "collaborator_failure"
		if errors.Is(err, domain.ErrNoSubjectDetected) {
			cause = "no_subject"
		}
		slog.Warn("image analysis failed, returning fallback", "request_id", requestID, "cause", cause, "error", err)
		s.record(ctx, requestID, domain.EventTypeFallbackReturned, domain.FallbackReturnedPayload{Cause: cause})
		return domain.FallbackMessage, nil
	}
	return text, nil
}

func (s *Service) adviseOnOutfit(ctx context.Context, requestID string, file *domain.UploadedFile) (string, error) {
	data, err := s.uploads.Read(file)
	if err != nil {
		return "", err
	}

	result, err := s.analyze(ctx, requestID, data)
	if err != nil {
		return "", err
	}

	return s.generate(ctx, requestID, BuildOutfitPrompt(*result))
}

// analyze calls the vision collaborator and applies the subject policy.
func (s *Service) analyze(ctx context.Context, requestID string, image []byte) (*domain.AnalysisResult, error) {
	startTime := time.Now()
	resp, err := s.visionClient.Analyze(ctx, image)
	latencyMs := time.Since(startTime).Milliseconds()
	if err != nil {
		s.record(ctx, requestID, domain.EventTypeVisionCallDone, domain.VisionCallDonePayload{
			LatencyMs: latencyMs,
			Error:     err.Error(),
		})
		return nil, fmt.Errorf("%w: vision: %w", domain.ErrCollaborator, err)
	}

	result := resp.Result()
	s.record(ctx, requestID, domain.EventTypeVisionCallDone, domain.VisionCallDonePayload{
		LatencyMs: latencyMs,
		TagCount:  len(result.Tags),
	})

	relevant, err := s.policyEngine.Relevant(ctx, result.Tags)
	if err != nil {
		return nil, fmt.Errorf("subject policy: %w", err)
	}
	s.record(ctx, requestID, domain.EventTypeSubjectDecision, domain.SubjectDecisionPayload{
		Relevant: relevant,
		Tags:     result.Tags,
	})
	if !relevant {
		return nil, domain.ErrNoSubjectDetected
	}

	return &result, nil
}

// generate sends prompt to the generation collaborator as-is.
func (s *Service) generate(ctx context.Context, requestID, prompt string) (string, error) {
	startTime := time.Now()
	resp, err := s.llmClient.GenerateContent(ctx, llm.NewTextRequest(prompt))
	payload := domain.GenerationCallDonePayload{
		Model:     s.llmClient.Model(),
		LatencyMs: time.Since(startTime).Milliseconds(),
	}
	if err != nil {
		payload.Error = err.Error()
		s.record(ctx, requestID, domain.EventTypeGenerationCallDone, payload)
		return "", fmt.Errorf("%w: generation: %w", domain.ErrCollaborator, err)
	}

	if resp.UsageMetadata != nil {
		payload.PromptTokens = resp.UsageMetadata.PromptTokenCount
		payload.CompletionTokens = resp.UsageMetadata.CandidatesTokenCount
		payload.TotalTokens = resp.UsageMetadata.TotalTokenCount
	}

	text, err := resp.Text()
	if err != nil {
		payload.Error = err.Error()
		s.record(ctx, requestID, domain.EventTypeGenerationCallDone, payload)
		return "", fmt.Errorf("%w: generation: %w", domain.ErrCollaborator, err)
	}

	s.record(ctx, requestID, domain.EventTypeGenerationCallDone, payload)
	return text, nil
}
