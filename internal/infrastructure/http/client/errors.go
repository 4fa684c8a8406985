package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/foodiee/recipes/internal/ports/outbound"
)

// RemoteError describes a failed call to the backend API. Status is zero
// when no response was received.
type RemoteError struct {
	Endpoint string
	Status   int
	Body     string
	Cause    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Cause != nil && e.Status != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Endpoint, e.Status, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Cause)
	case e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.Status)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, outbound.ErrRemoteNotFound) match 404 responses.
func (e *RemoteError) Is(target error) bool {
	return target == outbound.ErrRemoteNotFound && e.Status == http.StatusNotFound
}

// IsRemoteNotFound reports whether err is a 404 from the backend
func IsRemoteNotFound(err error) bool {
	return errors.Is(err, outbound.ErrRemoteNotFound)
}
