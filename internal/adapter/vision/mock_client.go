package vision

import "context"

// MockClient is a mock implementation of VisionClient for offline runs.
type MockClient struct {
	tags    []string
	caption string
}

// NewMockClient creates a mock that tags every image with the given names.
// With no tags it reports a person in a shirt.
func NewMockClient(caption string, tags ...string) *MockClient {
	if len(tags) == 0 {
		tags = []string{"person", "shirt"}
	}
	if caption == "" {
		caption = "a person wearing a shirt"
	}
	return &MockClient{tags: tags, caption: caption}
}

// Ensure MockClient implements VisionClient interface.
var _ VisionClient = (*MockClient)(nil)

// Analyze returns the configured tags regardless of input.
func (m *MockClient) Analyze(ctx context.Context, image []byte) (*AnalyzeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tags := make([]Tag, 0, len(m.tags))
	for _, name := range m.tags {
		tags = append(tags, Tag{Name: name, Confidence: 0.99})
	}
	return &AnalyzeResponse{
		Tags: tags,
		Description: &Description{
			Captions: []Caption{{Text: m.caption, Confidence: 0.9}},
		},
		RequestID: "mock",
	}, nil
}
