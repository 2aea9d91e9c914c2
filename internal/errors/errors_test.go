package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrProjectNotFound, http.StatusNotFound, "PROJECT_NOT_FOUND"},
		{ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
		{ErrAlreadyParticipant, http.StatusBadRequest, "ALREADY_PARTICIPANT"},
		{ErrOwnerSelfInvite, http.StatusBadRequest, "OWNER_SELF_INVITE"},
		{ErrNoFiles, http.StatusBadRequest, "NO_FILES"},
		{ErrPartialFailure, http.StatusInternalServerError, "PARTIAL_FAILURE"},
		{ErrStorage, http.StatusInternalServerError, "STORAGE_ERROR"},
		{errors.New("anything else"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: upload %q: backend unavailable", ErrStorage, "report.pdf")
	httpErr := MapErrorToHTTP(wrapped)

	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "STORAGE_ERROR", httpErr.Code)
	assert.NotContains(t, httpErr.Message, "report.pdf", "backend detail must not leak to clients")
}

func TestHTTPError_ToErrorResponse(t *testing.T) {
	httpErr := NewHTTPError(http.StatusForbidden, "permission denied", "FORBIDDEN")
	resp := httpErr.ToErrorResponse()

	assert.Equal(t, "permission denied", resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Code)
	assert.Equal(t, "permission denied", httpErr.Error())
}
