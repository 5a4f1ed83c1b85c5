package errs

import "strings"

// FieldError is a field-level validation error.
//
//	{ "field": "username", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type rendered to API clients.
//
// Message is serialized as `error`. Override marks messages that are safe
// to show end users verbatim.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"error"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
