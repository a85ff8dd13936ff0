package vision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xiaot623/stylist/internal/config"
)

func TestClientAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.URL.Query().Get("visualFeatures"); got != "Tags,Description" {
			t.Fatalf("endpoint query not preserved: %q", got)
		}
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "secret" {
			t.Fatalf("unexpected key header: %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/octet-stream" {
			t.Fatalf("unexpected content type: %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "\x89PNG-bytes" {
			t.Fatalf("unexpected body: %q", body)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"tags":[{"name":"person","confidence":0.99},{"name":"jacket","confidence":0.8}],"description":{"tags":["man"],"captions":[{"text":"a man in a jacket","confidence":0.7}]},"requestId":"r1"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/vision/v3.2/analyze?visualFeatures=Tags,Description", "secret", time.Second)
	resp, err := client.Analyze(context.Background(), []byte("\x89PNG-bytes"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	result := resp.Result()
	if len(result.Tags) != 2 || result.Tags[0] != "person" || result.Tags[1] != "jacket" {
		t.Fatalf("unexpected tags: %+v", result.Tags)
	}
	if result.Description != "a man in a jacket" {
		t.Fatalf("unexpected description: %q", result.Description)
	}
}

func TestClientAnalyzeWithoutCaption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tags":[{"name":"car","confidence":0.9}],"description":{"captions":[]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 0)
	resp, err := client.Analyze(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if resp.Caption() != "" {
		t.Fatalf("expected empty caption, got %q", resp.Caption())
	}
}

func TestClientAnalyzeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", time.Second)
	_, err := client.Analyze(context.Background(), []byte("x"))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestClientAnalyzeMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"description":{"captions":[{"text":"something"}]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", time.Second)
	_, err := client.Analyze(context.Background(), []byte("x"))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestClientAnalyzeEmptyTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tags":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", time.Second)
	resp, err := client.Analyze(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("empty tag list should not be an error: %v", err)
	}
	if len(resp.TagNames()) != 0 {
		t.Fatalf("expected no tags, got %v", resp.TagNames())
	}
}

func TestClientAnalyzeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "k", time.Second)
	if _, err := client.Analyze(context.Background(), []byte("x")); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestNewVisionClientMockMode(t *testing.T) {
	client := NewVisionClient(&config.Config{Mode: config.ModeMock})
	if _, ok := client.(*MockClient); !ok {
		t.Fatalf("expected MockClient, got %T", client)
	}

	client = NewVisionClient(&config.Config{VisionEndpoint: "http://x", VisionAPIKey: "k"})
	if _, ok := client.(*Client); !ok {
		t.Fatalf("expected Client, got %T", client)
	}
}

func TestMockClientAnalyze(t *testing.T) {
	resp, err := NewMockClient("a red car", "car", "tree").Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	result := resp.Result()
	if len(result.Tags) != 2 || result.Tags[0] != "car" || result.Description != "a red car" {
		t.Fatalf("unexpected result: %+v", result)
	}
}
