package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// errorStatus maps each domain sentinel to its status code. Checked in order,
// so wrapped sentinels resolve to the first match.
var errorStatus = []struct {
	err    error
	status int
}{
	{entity.ErrDuplicateIdentity, http.StatusConflict},
	{entity.ErrInvalidIdentity, http.StatusBadRequest},
	{entity.ErrTokenInvalid, http.StatusBadRequest},
	{entity.ErrAlreadyVerified, http.StatusConflict},
	{entity.ErrNotFound, http.StatusNotFound},
	{entity.ErrEmailNotVerified, http.StatusForbidden},
	{entity.ErrForbidden, http.StatusForbidden},
	{entity.ErrValidationFailed, http.StatusBadRequest},
	{entity.ErrInternal, http.StatusInternalServerError},
	{entity.ErrInvalidCredentials, http.StatusUnauthorized},
	{entity.ErrUnauthenticated, http.StatusUnauthorized},
}

// StatusFor returns the HTTP status for err. Unknown errors are internal.
func StatusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// HandleError writes err as a JSON error. Internal errors never expose detail.
func HandleError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = entity.ErrInternal.Error()
	}
	ErrorHandler(c, status, msg)
}
