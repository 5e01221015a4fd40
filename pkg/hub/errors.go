package hub

import (
	"fmt"
	"net/http"
)

// HubError represents a generic Hub error.
type HubError struct {
	Message string
	Cause   error
}

func (e *HubError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *HubError) Unwrap() error {
	return e.Cause
}

// HTTPError represents an HTTP error from the Hub.
type HTTPError struct {
	*HubError
	StatusCode int
}

func NewHTTPError(message string, statusCode int) *HTTPError {
	return &HTTPError{
		HubError:   &HubError{Message: message},
		StatusCode: statusCode,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// RepositoryNotFoundError is raised when a repository does not exist or the
// caller has no access to it.
type RepositoryNotFoundError struct {
	*HTTPError
	RepoID string
}

func NewRepositoryNotFoundError(repoID string, statusCode int) *RepositoryNotFoundError {
	return &RepositoryNotFoundError{
		HTTPError: NewHTTPError(fmt.Sprintf("repository '%s' not found", repoID), statusCode),
		RepoID:    repoID,
	}
}

// EntryNotFoundError is raised when a file is missing from a repository.
type EntryNotFoundError struct {
	*HTTPError
	RepoID string
	Path   string
}

func NewEntryNotFoundError(repoID, path string, statusCode int) *EntryNotFoundError {
	return &EntryNotFoundError{
		HTTPError: NewHTTPError(fmt.Sprintf("entry '%s' not found in '%s'", path, repoID), statusCode),
		RepoID:    repoID,
		Path:      path,
	}
}

// GatedRepoError is raised when a repository requires accepting terms or a
// valid token.
type GatedRepoError struct {
	*HTTPError
	RepoID string
}

func NewGatedRepoError(repoID string) *GatedRepoError {
	return &GatedRepoError{
		HTTPError: NewHTTPError(fmt.Sprintf("repository '%s' is gated, a valid token is required", repoID), http.StatusForbidden),
		RepoID:    repoID,
	}
}
