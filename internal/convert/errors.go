// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "errors"

// LocalFailureMessage is shown to users for every document-level failure
// of the local path. The underlying cause is available through errors.Is
// and errors.As.
const LocalFailureMessage = "Failed to process PDF locally. It might be password protected or corrupted."

var (
	// ErrEngineInit reports that the recognition engine could not start.
	ErrEngineInit = errors.New("starting recognition engine")

	// ErrRecognition reports that the engine failed on a page. Unlike a
	// render failure it aborts the document.
	ErrRecognition = errors.New("recognizing page")
)

// Error is a document-level conversion failure.
type Error struct {
	Cause error
}

func (e *Error) Error() string { return LocalFailureMessage }

func (e *Error) Unwrap() error { return e.Cause }

// Detail returns the message of the underlying cause, for logs.
func (e *Error) Detail() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

func documentError(cause error) error {
	var e *Error
	if errors.As(cause, &e) {
		return e
	}
	return &Error{Cause: cause}
}
