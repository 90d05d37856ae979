package assets

import (
	"errors"
	"fmt"
)

// ConfigurationError reports that the credential record cannot be used to
// build a client. It is raised before any network call.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ErrMissingConfig is returned by the first operation on a Client whose
// credential source is incomplete.
var ErrMissingConfig = &ConfigurationError{
	Message: "missing required configuration. Run: jira-assets config",
}

// ValidationError reports malformed local input, such as a non-numeric id.
// It is raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RemoteError is a failed request: a non-2xx status, a transport failure
// (StatusCode 0) or a body that is not the expected JSON.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
