package pipeline

import "errors"

var (
	// ErrTopicRequired indicates the trimmed topic was empty.
	ErrTopicRequired = errors.New("Topic is required")
	// ErrNotAuthenticated indicates the run was requested without a token bundle.
	ErrNotAuthenticated = errors.New("Not authenticated")
)

// fallbackMessage is reported when a stage fails with an error that has no text.
const fallbackMessage = "Failed to generate short"
