package domain

import (
	"io"
	"time"
)

const (
	// FallbackMessage is returned for every failure on the image path.
	FallbackMessage = "The uploaded image does not contain a person or clothing. Please upload a suitable image."
	// GenericFailureMessage is the only detail a client sees on a 500.
	GenericFailureMessage = "Failed to process the request."
	// NoResponseMessage stands in for an empty reply on the client.
	NoResponseMessage = "No response available."
)

// SubjectKeywords are the vision tags that make an image worth styling advice.
var SubjectKeywords = []string{"person", "clothing", "dress", "shirt", "pants", "jacket"}

// ChatRequest is one call to the gateway. Image takes precedence over UserInput.
type ChatRequest struct {
	UserInput string
	Image     io.Reader
	ImageName string
}

// Kind reports which branch the request will take.
func (r *ChatRequest) Kind() InputKind {
	if r.Image != nil {
		return InputKindImage
	}
	return InputKindText
}

// ChatResponse is the 200 envelope.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the non-200 envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TextRequest is the JSON body of the text path.
type TextRequest struct {
	UserInput string `json:"userInput" form:"userInput"`
}

// AnalysisResult is what the vision call yields for one image.
type AnalysisResult struct {
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// UploadedFile is an upload persisted for the duration of one request.
type UploadedFile struct {
	ID        string
	Path      string
	Size      int64
	CreatedAt time.Time
}
