package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xiaot623/stylist/internal/domain"
)

// ErrMalformedResponse is returned when a 200 body lacks the tags array.
var ErrMalformedResponse = errors.New("vision response has no tags")

// Client is the image analysis API client.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new vision client. endpoint is the full analyze URL,
// query string included. A zero timeout means the call is never cut short.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Tag is a single semantic tag.
type Tag struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Caption is a generated sentence describing the image.
type Caption struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Description holds the captions block.
type Description struct {
	Tags     []string  `json:"tags"`
	Captions []Caption `json:"captions"`
}

// AnalyzeResponse is the analyze payload.
type AnalyzeResponse struct {
	Tags        []Tag        `json:"tags"`
	Description *Description `json:"description,omitempty"`
	RequestID   string       `json:"requestId,omitempty"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// APIError represents the error details.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TagNames returns the tag names in response order.
func (r *AnalyzeResponse) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		names = append(names, t.Name)
	}
	return names
}

// Caption returns the first caption text, or "" when there is none.
func (r *AnalyzeResponse) Caption() string {
	if r.Description == nil || len(r.Description.Captions) == 0 {
		return ""
	}
	return r.Description.Captions[0].Text
}

// Result converts the payload to the domain analysis result.
func (r *AnalyzeResponse) Result() domain.AnalysisResult {
	return domain.AnalysisResult{
		Tags:        r.TagNames(),
		Description: r.Caption(),
	}
}

// Analyze posts the image bytes and decodes the tags and captions.
func (c *Client) Analyze(ctx context.Context, image []byte) (*AnalyzeResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return nil, fmt.Errorf("vision API error [%d]: %s (code: %s)", resp.StatusCode, errResp.Error.Message, errResp.Error.Code)
		}
		return nil, fmt.Errorf("vision API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result AnalyzeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if result.Tags == nil {
		return nil, ErrMalformedResponse
	}

	return &result, nil
}
