package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors shared across services. Handlers translate these to HTTP
// status codes at the boundary; services never touch status codes.
var (
	ErrUnauthenticated     = errors.New("missing or invalid user identity")
	ErrForbidden           = errors.New("you don't have permission to access this resource")
	ErrNotFound            = errors.New("resource not found")
	ErrMismatchedParent    = errors.New("resource does not belong to this restaurant")
	ErrAllocationExhausted = errors.New("unable to generate unique ID")
	ErrUnsupportedMedia    = errors.New("only PNG/JPEG images and PDFs are supported")
	ErrExtractionFailed    = errors.New("failed to extract structured data")
	ErrUpstreamTimeout     = errors.New("upstream_timeout")
)

// InvalidAttributeError reports every offending value, not just the first.
type InvalidAttributeError struct {
	Field  string
	Values []string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, strings.Join(e.Values, ", "))
}

// Status maps a domain error to its HTTP status code.
func Status(err error) int {
	var invalid *InvalidAttributeError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrMismatchedParent):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.Is(err, ErrUnsupportedMedia):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
