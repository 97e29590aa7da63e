package http

import (
	"errors"
	"net/http"

	"routing/internal/pkg/errs"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps build and report failures to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnknownPeer),
		errors.Is(err, errs.ErrRouteNotResolved):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrMalformedMetadata),
		errors.Is(err, errs.ErrUnexpectedEndOfInput),
		errors.Is(err, errs.ErrReferenceOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
