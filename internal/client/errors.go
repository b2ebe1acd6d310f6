package client

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrUnauthorized = errors.New("unauthorized")

// StatusError is returned for any non-2xx answer from the API.
// errors.Is(err, ErrUnauthorized) holds for a 401.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: status %d", e.Code)
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// ValidationError reports a credential form that failed local checks. It is
// produced before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
