package ai

import "errors"

// ErrInvalidJSON is the cause reported when neither parse attempt succeeds.
var ErrInvalidJSON = errors.New("Model did not return valid JSON")

// GenerationError wraps every failure of the generation step: transport,
// authorization, non-2xx status or an unparseable completion.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return e.Provider + " Error: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
