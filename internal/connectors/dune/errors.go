package dune

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
)

// ErrInvalidBaseURL indicates a malformed DUNE_API_BASE_URL.
var ErrInvalidBaseURL = errors.New("dune: invalid base URL")

// APIError represents a Dune API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dune: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is reports a 404 as domain.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound checks if the error indicates the query does not exist or is
// not visible to the API key.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates a rejected API key.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
