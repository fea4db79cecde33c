package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyCompletion is wrapped by the RemoteServiceError returned when the
// provider answers 2xx but with no usable text.
var ErrEmptyCompletion = errors.New("the model did not return any text")

// ConfigurationError reports that the client cannot call the provider at
// all, typically because no API key is set.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// RemoteServiceError reports a failed round trip: a non-2xx status, an
// unreadable body, an empty completion or a transport failure. StatusCode
// is zero when no HTTP response was received.
type RemoteServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteServiceError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("LLM provider error (%d): %s", e.StatusCode, e.Message)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Message
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// IsAuth reports whether the provider rejected the credentials.
func (e *RemoteServiceError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited reports whether the provider throttled the request.
func (e *RemoteServiceError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}
