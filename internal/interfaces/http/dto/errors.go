package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors keep the code they were raised with.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeAlreadyExists   = "ALREADY_EXISTS"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "INVALID_TOKEN"
	ErrCodeTokenRevoked    = "TOKEN_REVOKED"
	ErrCodeInvalidState    = "INVALID_STATE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeIdempotencyBusy = "IDEMPOTENCY_KEY_IN_USE"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes missing from
// the map are resolved by HTTPStatus from their shape.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidID:       http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeAlreadyExists:   http.StatusConflict,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeIdempotencyBusy: http.StatusConflict,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,

	// authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	"REFRESH_LIMIT":       http.StatusUnauthorized,

	// conflicts with existing data
	"CONCURRENCY_CONFLICT":    http.StatusConflict,
	"COLLECTION_HAS_PRODUCTS": http.StatusConflict,
	"VARIANT_IN_USE":          http.StatusConflict,
	"ORDER_ALREADY_PACKAGED":  http.StatusConflict,

	// malformed requests that do not start with INVALID_
	"NO_ITEMS":       http.StatusBadRequest,
	"NO_ORDERS":      http.StatusBadRequest,
	"NO_FILES":       http.StatusBadRequest,
	"TOO_MANY_FILES": http.StatusBadRequest,
	"FILE_TOO_LARGE": http.StatusBadRequest,
	"EMPTY_FILE":     http.StatusBadRequest,

	"RENDERER_UNAVAILABLE": http.StatusServiceUnavailable,
}

// HTTPStatus returns the status code for an error code. Unlisted codes follow
// their naming: *_NOT_FOUND is 404, INVALID_* is 400 and any other domain
// code is a business rule violation (422).
func HTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case code == "":
		return http.StatusInternalServerError
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
