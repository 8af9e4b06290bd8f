package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned when call parameters are rejected
	// before any request is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExtensionMissing is returned when the wallet back-end for a chain
	// kind is not available.
	ErrExtensionMissing = errors.New("wallet extension not installed")

	// ErrUserRejected is returned when the wallet refuses to authorize the
	// request.
	ErrUserRejected = errors.New("request rejected by user")

	// ErrNotConnected is returned when an operation needs a connected wallet.
	ErrNotConnected = errors.New("wallet not connected")

	ErrUnknownChain = errors.New("unknown chain")
	ErrUnknownToken = errors.New("unknown token")
)

// APIError describes a non-2xx response from the swap API.
type APIError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error on %s (status %d %s)", e.Endpoint, e.StatusCode, e.Status)
	}
	return fmt.Sprintf("API error on %s (status %d %s): %s", e.Endpoint, e.StatusCode, e.Status, e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an
// *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
