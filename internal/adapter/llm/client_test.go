package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xiaot623/stylist/internal/config"
)

func TestClientGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "secret" {
			t.Fatalf("unexpected api key header: %q", got)
		}
		var req GenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Fatalf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Hi "},{"text":"there!"}]},"finishReason":"STOP","index":0}],"usageMetadata":{"promptTokenCount":1,"candidatesTokenCount":2,"totalTokenCount":3}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "secret", "gemini-1.5-flash", time.Second)
	resp, err := client.GenerateContent(context.Background(), NewTextRequest("hello"))
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	text, err := resp.Text()
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != "Hi there!" {
		t.Fatalf("unexpected text: %q", text)
	}
	if resp.UsageMetadata == nil || resp.UsageMetadata.TotalTokenCount != 3 {
		t.Fatalf("unexpected usage: %+v", resp.UsageMetadata)
	}
}

func TestClientGenerateContentError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", "gemini-1.5-flash", time.Second)
	_, err := client.GenerateContent(context.Background(), NewTextRequest("hello"))
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestClientGenerateContentPlainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "bad")
	}))
	defer server.Close()

	client := NewClient(server.URL, "", "m", time.Second)
	if _, err := client.GenerateContent(context.Background(), NewTextRequest("hello")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestResponseTextBlocked(t *testing.T) {
	resp := &GenerateContentResponse{PromptFeedback: &PromptFeedback{BlockReason: "SAFETY"}}
	_, err := resp.Text()
	if !errors.Is(err, ErrNoCandidates) || !strings.Contains(err.Error(), "SAFETY") {
		t.Fatalf("expected blocked error, got %v", err)
	}

	resp = &GenerateContentResponse{Candidates: []Candidate{{FinishReason: "SAFETY"}}}
	if _, err := resp.Text(); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestResponseTextKeepsMarkup(t *testing.T) {
	html := `Try these: <a target="_blank" href="https://shop.example/boots">boots</a>`
	resp := &GenerateContentResponse{Candidates: []Candidate{{Content: &Content{Parts: []Part{{Text: html}}}}}}
	text, err := resp.Text()
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != html {
		t.Fatalf("markup altered: %q", text)
	}
}

func TestNewLLMClientMockMode(t *testing.T) {
	client := NewLLMClient(&config.Config{Mode: config.ModeMock})
	if _, ok := client.(*MockClient); !ok {
		t.Fatalf("expected MockClient, got %T", client)
	}

	client = NewLLMClient(&config.Config{GenAIBaseURL: "http://x", GenAIModel: "gemini-1.5-flash"})
	if client.Model() != "gemini-1.5-flash" {
		t.Fatalf("unexpected model: %s", client.Model())
	}
}

func TestMockClientGenerateContent(t *testing.T) {
	resp, err := NewMockClient().GenerateContent(context.Background(), NewTextRequest("hello"))
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	text, _ := resp.Text()
	if !strings.Contains(text, `"hello"`) {
		t.Fatalf("unexpected mock text: %q", text)
	}
}
