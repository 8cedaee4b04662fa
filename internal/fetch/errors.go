package fetch

import "fmt"

// NetworkError wraps transport-level failures (DNS, TLS, timeouts).
type NetworkError struct {
	URL     string
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for %s: %s: %v", e.URL, e.Message, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is returned when the server answers with a non-200
// status. Body carries up to 1KB of the response for diagnostics.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}

// GitError wraps failures while reading a source file from a git remote.
type GitError struct {
	Repo string
	Ref  string
	Path string
	Err  error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git fetch of %s@%s:%s failed: %v", e.Repo, e.Ref, e.Path, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// CacheMissError is returned when --skip-fetch finds no usable cache entry.
type CacheMissError struct {
	Path   string
	Reason string
}

func (e *CacheMissError) Error() string {
	return fmt.Sprintf("no cached source at %s: %s", e.Path, e.Reason)
}
