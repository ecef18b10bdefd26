package store

import "fmt"

// ErrMetaNotFound indicates the named metadata resource does not exist at
// the remote, grounded on docker-notary/tuf/store's ErrMetaNotFound.
type ErrMetaNotFound struct {
	Resource string
}

func (e ErrMetaNotFound) Error() string {
	return fmt.Sprintf("no metadata found for %s", e.Resource)
}

// ErrServerUnavailable carries the HTTP status the remote returned for a
// request that was neither a clean success nor a clean 404.
type ErrServerUnavailable struct {
	Code int
}

func (e ErrServerUnavailable) Error() string {
	if e.Code == 401 || e.Code == 403 {
		return "not authorized to fetch from trust server"
	}
	return fmt.Sprintf("unable to reach trust server: status %d", e.Code)
}

// ErrDownloadLengthMismatch indicates the remote attempted to serve more
// bytes than the caller's declared max_length ceiling (spec.md §4.5).
type ErrDownloadLengthMismatch struct {
	URL       string
	MaxLength int64
}

func (e ErrDownloadLengthMismatch) Error() string {
	return fmt.Sprintf("download of %s exceeded max length %d", e.URL, e.MaxLength)
}

// ErrDownloadFailed wraps a transport-level failure (timeout, connection
// refused, DNS failure, ...) fetching url.
type ErrDownloadFailed struct {
	URL string
	Err error
}

func (e ErrDownloadFailed) Error() string {
	return fmt.Sprintf("download of %s failed: %v", e.URL, e.Err)
}

func (e ErrDownloadFailed) Unwrap() error { return e.Err }

// ErrPersistError wraps a failure to write metadata or target content to
// the local cache (a closed filesystem, a full disk, a permissions
// error): a local storage fault, distinct from a repository data
// problem, so callers doing errors.As-based dispatch (SPEC_FULL.md §7)
// can tell the two apart.
type ErrPersistError struct {
	Path string
	Err  error
}

func (e ErrPersistError) Error() string {
	return fmt.Sprintf("persisting %s: %v", e.Path, e.Err)
}

func (e ErrPersistError) Unwrap() error { return e.Err }
