package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProjectNotFound is returned when a referenced project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDocumentNotFound is returned when a referenced document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrForbidden is returned when an authenticated user is not authorized for the action.
	ErrForbidden = errors.New("permission denied")
	// ErrInvalidCredentials is returned when login or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a bearer token is missing, malformed or expired.
	ErrInvalidToken = errors.New("could not validate credentials")
	// ErrUserAlreadyExists is returned when registering a login that is taken.
	ErrUserAlreadyExists = errors.New("user already registered")
	// ErrAlreadyParticipant is returned when inviting a user who already participates.
	ErrAlreadyParticipant = errors.New("user is already a participant")
	// ErrOwnerSelfInvite is returned when a project owner invites themselves.
	ErrOwnerSelfInvite = errors.New("owner cannot invite themselves")
	// ErrNoFiles is returned when an upload request carries no files.
	ErrNoFiles = errors.New("no files provided")
	// ErrStorage is returned when an object store operation fails.
	ErrStorage = errors.New("object storage operation failed")
	// ErrPartialFailure is returned when a blob was deleted but its metadata
	// row could not be removed. The two stores have diverged and an operator
	// has to reconcile them; it must never be reported as a plain ErrStorage.
	ErrPartialFailure = errors.New("file deleted from storage but metadata removal failed, manual follow-up required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrProjectNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProjectNotFound.Error(), "PROJECT_NOT_FOUND")
	case errors.Is(err, ErrDocumentNotFound):
		return NewHTTPError(http.StatusNotFound, ErrDocumentNotFound.Error(), "DOCUMENT_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrAlreadyParticipant):
		return NewHTTPError(http.StatusBadRequest, ErrAlreadyParticipant.Error(), "ALREADY_PARTICIPANT")
	case errors.Is(err, ErrOwnerSelfInvite):
		return NewHTTPError(http.StatusBadRequest, ErrOwnerSelfInvite.Error(), "OWNER_SELF_INVITE")
	case errors.Is(err, ErrNoFiles):
		return NewHTTPError(http.StatusBadRequest, ErrNoFiles.Error(), "NO_FILES")
	case errors.Is(err, ErrPartialFailure):
		return NewHTTPError(http.StatusInternalServerError, ErrPartialFailure.Error(), "PARTIAL_FAILURE")
	case errors.Is(err, ErrStorage):
		// No backend detail leaks to the client; the adapter already logged it.
		return NewHTTPError(http.StatusInternalServerError, "storage operation failed", "STORAGE_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
