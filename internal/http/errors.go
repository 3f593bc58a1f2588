package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/classmeet/classmeet/internal/domain"
	"github.com/classmeet/classmeet/internal/policy"
	"github.com/classmeet/classmeet/internal/service"
	"github.com/classmeet/classmeet/pkg/httpx"
	"github.com/classmeet/classmeet/pkg/sdkjwt"
	"github.com/classmeet/classmeet/pkg/slogx"
)

// writeServiceError maps service failures onto wire responses. Credential
// failures collapse into one message so the response never reveals whether
// the email or the password was wrong.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassword):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")

	case errors.Is(err, service.ErrInvalidAuthorizationHeader),
		errors.Is(err, service.ErrInvalidAccessToken):
		writeBearerError(w)

	case errors.Is(err, policy.ErrWrongPermissions):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "you do not have permission to perform this action")

	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "user not found")
	case errors.Is(err, service.ErrMeetingNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "meeting not found")

	case errors.Is(err, service.ErrEmailExists):
		httpx.WriteError(w, http.StatusConflict, "email_exists", "a user with this email already exists")

	case errors.Is(err, domain.ErrInvalidRole):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_role", "role must be Teacher or Student")
	case errors.Is(err, service.ErrInvalidStudentID):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_student", "requested student does not exist")
	case errors.Is(err, service.ErrInvalidRoleForRequestedStudent):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_student", "requested user is not a student")
	case errors.Is(err, sdkjwt.ErrExpirationOutOfRange):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_expiration", "expiration override out of range")

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}

// decodeJSON reads a JSON request body into dst, rejecting malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return false
	}
	return true
}
