package domain

import "errors"

// Domain errors.
var (
	// ErrMissingURL is returned when a request carries no URL.
	ErrMissingURL = errors.New("url is required")

	// ErrNoMediaFile is returned when a fetch produces no usable file.
	ErrNoMediaFile = errors.New("no media file produced")

	// ErrMissingCredentials is returned when platform upload credentials are unset.
	ErrMissingCredentials = errors.New("missing platform credentials")

	// ErrTokenRejected is returned when the platform refuses the refresh-token exchange.
	ErrTokenRejected = errors.New("platform rejected credentials")

	// ErrUploadIncomplete is returned when the chunked transfer stops advancing.
	ErrUploadIncomplete = errors.New("upload did not complete")

	// ErrInvalidVisibility is returned for an unknown privacy value.
	ErrInvalidVisibility = errors.New("invalid visibility")
)

// StageError wraps an error with the pipeline stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
