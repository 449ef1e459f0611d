package api

// APIError is a request-terminating failure with a fixed HTTP status
// and response body. Message strings are contractual; see package doc.
type APIError struct {
	Status   int      `json:"-"`
	Message  string   `json:"error"`
	Required []string `json:"required,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// NewNoTokenError reports a request that carried no bearer credential.
func NewNoTokenError() *APIError {
	return &APIError{Status: 401, Message: "Access Denied: No Token Provided"}
}

// NewInvalidTokenError reports a bearer token that failed verification.
func NewInvalidTokenError() *APIError {
	return &APIError{Status: 403, Message: "Access Denied: Invalid Token"}
}

// NewUnauthenticatedError reports that the permission gate was reached
// without a principal.
func NewUnauthenticatedError() *APIError {
	return &APIError{Status: 401, Message: "User not authenticated"}
}

// NewForbiddenError reports a permission mismatch. It echoes the
// permissions that would have sufficed, never the caller's own set.
func NewForbiddenError(required []string) *APIError {
	return &APIError{
		Status:   403,
		Message:  "Forbidden: You do not have permission to perform this action",
		Required: required,
	}
}

// NewInvalidAPIKeyError reports a missing or mismatched API key.
func NewInvalidAPIKeyError() *APIError {
	return &APIError{Status: 401, Message: "Access Denied: Invalid API Key"}
}

// NewNotFoundError reports an absent resource on an unguarded read.
func NewNotFoundError(resource string) *APIError {
	return &APIError{Status: 404, Message: resource + " not found"}
}

// NewNotFoundOrUnauthorizedError reports the collapsed guard outcome:
// the resource is absent or owned by someone else, deliberately
// indistinguishable so non-owners cannot probe existence.
func NewNotFoundOrUnauthorizedError(resource string) *APIError {
	return &APIError{Status: 404, Message: resource + " not found or unauthorized"}
}

// NewConflictError reports a unique-constraint rejection, such as a
// duplicate like.
func NewConflictError(message string) *APIError {
	return &APIError{Status: 409, Message: message}
}

// NewBadRequestError reports malformed request input.
func NewBadRequestError(message string) *APIError {
	return &APIError{Status: 400, Message: message}
}

// NewServerError reports an unrecoverable internal failure. The body
// carries no detail so storage and query internals never leak.
func NewServerError() *APIError {
	return &APIError{Status: 500, Message: "Internal server error"}
}
