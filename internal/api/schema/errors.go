package schema

var emptyMap = map[string]interface{}{}

var (
	ErrInternal = &Error{
		Type:    "generic.internal",
		Message: "An internal error occurred.",
		Details: emptyMap,
	}
	ErrNotFound = &Error{
		Type:    "generic.notFound",
		Message: "Resource not found.",
		Details: emptyMap,
	}
	ErrMethodNotAllowed = &Error{
		Type:    "generic.methodNotAllowed",
		Message: "Method not allowed.",
		Details: emptyMap,
	}
	ErrBadForm = &Error{
		Type:    "validation.form.unparseable",
		Message: "The submitted form data could not be parsed.",
		Details: emptyMap,
	}
	ErrProviderUnavailable = &Error{
		Type:    "message.provider.unavailable",
		Message: "The messaging provider could not be reached.",
		Details: emptyMap,
	}
)

// ErrorResponse represents the response structure sent by the web console whenever errors occurred
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []*Error `json:"errors"`
}

// Error represents a single error present in the ErrorResponse
type Error struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}
