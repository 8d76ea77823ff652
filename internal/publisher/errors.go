package publisher

import "errors"

var (
	// ErrPublish indicates the hosting provider rejected the submission or the media could not be read.
	ErrPublish = errors.New("publish failed")
	// ErrMissingCredentials indicates no token bundle accompanied the publish request.
	ErrMissingCredentials = errors.New("missing publishing credentials")
)
