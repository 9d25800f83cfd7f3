package repositories

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// APIError is any non-2xx answer of a remote relation store
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d for %s", e.StatusCode, e.Path)
}

// Is lets callers match remote 404 and 409 answers against the local sentinels
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}
