// Package vision provides an abstraction for the image-tagging API client.
package vision

import "context"

// VisionClient defines the interface for image analysis.
type VisionClient interface {
	// Analyze sends raw image bytes and returns the tags and captions found.
	Analyze(ctx context.Context, image []byte) (*AnalyzeResponse, error)
}

// Ensure Client implements VisionClient interface.
var _ VisionClient = (*Client)(nil)
