package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskal/internal/api/shared"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/domain/inprogress"
	"github.com/phrazzld/taskal/internal/i18n"
	"github.com/phrazzld/taskal/internal/service"
	"github.com/phrazzld/taskal/internal/service/auth"
	"github.com/phrazzld/taskal/internal/store"
	"golang.org/x/text/language"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing their types or messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, inprogress.ErrLimitReached),
		errors.Is(err, service.ErrProjectHasOpenTasks):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, domain.ErrUnauthorized):
		return "User ID not found or invalid"

	case errors.Is(err, service.ErrNotOwned):
		return "Project not found or not accessible"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// LocalizedErrorMessage returns the user-facing text for errors that carry
// their own translated explanation.
func LocalizedErrorMessage(err error, tag language.Tag) (string, bool) {
	var limitErr *inprogress.LimitError
	if errors.As(err, &limitErr) {
		return limitErr.Message(tag), true
	}

	var openErr *service.OpenTasksError
	if errors.As(err, &openErr) {
		return openErr.Message(tag), true
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return fmt.Sprintf("%s: %s %s", i18n.Sprintf(tag, i18n.KeyValidationFailed), fieldErr.Field, fieldErr.Message), true
	}

	if errors.Is(err, domain.ErrValidation) {
		detail := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
		return i18n.Sprintf(tag, i18n.KeyValidationFailed) + ": " + detail, true
	}

	return "", false
}

// SanitizeValidationError turns validator output into a message naming the
// first failing field, without struct or package names.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	case "effort":
		return "must be one of 0.2, 0.5, 1, 2, 3, 5, 8"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the response for an error returned by a service.
// fallback replaces the generic message for 5xx responses when set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)

	message, ok := LocalizedErrorMessage(err, shared.GetLocale(r.Context()))
	if !ok {
		message = GetSafeErrorMessage(err)
		if status == http.StatusInternalServerError && fallback != "" {
			message = fallback
		}
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
