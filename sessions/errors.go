package sessions

import "errors"

// Kind classifies a failed exchange or generation.
type Kind int

const (
	// KindInvalidParameter is a malformed or unsupported flag value,
	// detected before any network call.
	KindInvalidParameter Kind = iota
	// KindGenerationEmpty is a generation call that succeeded but
	// returned no usable media, typically a policy rejection.
	KindGenerationEmpty
	// KindDownloadFailed is a missing result locator or a non-success
	// transport response while fetching generated media.
	KindDownloadFailed
	// KindStreamOrAPI is any other failure surfaced by the model or
	// network layer.
	KindStreamOrAPI
)

// Error is a classified session failure. None of these are retried.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidParameter(message string) *Error {
	return &Error{Kind: KindInvalidParameter, Message: message}
}

func generationEmpty(message string) *Error {
	return &Error{Kind: KindGenerationEmpty, Message: message}
}

func downloadFailed(message string, err error) *Error {
	return &Error{Kind: KindDownloadFailed, Message: message, Err: err}
}

// classify wraps any failure into a session Error. Already-classified
// errors pass through; everything else becomes a stream/API error whose
// message is taken from the failure itself.
func classify(err error) *Error {
	var sessionErr *Error
	if errors.As(err, &sessionErr) {
		return sessionErr
	}

	message := "An unexpected error occurred. Please try again."
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &Error{Kind: KindStreamOrAPI, Message: message, Err: err}
}
