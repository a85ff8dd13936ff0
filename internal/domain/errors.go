package domain

import "errors"

var (
	ErrNoSubjectDetected = errors.New("no person or clothing detected in the image")
	ErrEmptyInput        = errors.New("userInput is required")
	ErrCollaborator      = errors.New("collaborator call failed")
	ErrEventLogDisabled  = errors.New("event log disabled")
)
