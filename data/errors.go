package data

import (
	"fmt"
	"time"
)

// ErrMalformedMetadata indicates a parse failure or a schema violation in a
// metadata document, such as a bad spec_version or a missing required field.
type ErrMalformedMetadata struct {
	Field string
	Msg   string
}

func (e ErrMalformedMetadata) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed metadata: field %q: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("malformed metadata: %s", e.Msg)
}

// ErrUnsignedMetadata indicates that a metadata document did not carry
// enough valid, distinct signatures to meet its role's threshold.
type ErrUnsignedMetadata struct {
	Role string
	Msg  string
}

func (e ErrUnsignedMetadata) Error() string {
	return fmt.Sprintf("unsigned metadata for role %q: %s", e.Role, e.Msg)
}

// ErrBadVersion indicates a monotonicity violation: root must advance by
// exactly one, timestamp/snapshot must not go backwards.
type ErrBadVersion struct {
	Role     string
	Current  int64
	Received int64
}

func (e ErrBadVersion) Error() string {
	return fmt.Sprintf("bad version for role %q: current %d, received %d", e.Role, e.Current, e.Received)
}

// ErrEqualVersion is a non-fatal signal: the newly fetched Timestamp is
// identical in version to the currently trusted one. Callers treat this as
// a no-op, not an error to propagate.
type ErrEqualVersion struct {
	Role    string
	Version int64
}

func (e ErrEqualVersion) Error() string {
	return fmt.Sprintf("%q already at version %d", e.Role, e.Version)
}

// ErrExpiredMetadata indicates the metadata's expires timestamp has passed
// the reference time used for this refresh.
type ErrExpiredMetadata struct {
	Role    string
	Expires time.Time
}

func (e ErrExpiredMetadata) Error() string {
	return fmt.Sprintf("metadata for role %q expired at %s", e.Role, e.Expires.Format(time.RFC3339))
}

// ErrLengthOrHashMismatch indicates bytes did not match a declared length
// or one of the declared hashes.
type ErrLengthOrHashMismatch struct {
	Msg string
}

func (e ErrLengthOrHashMismatch) Error() string {
	return fmt.Sprintf("length or hash mismatch: %s", e.Msg)
}

// ErrRepositoryError indicates a missing entry the repository was expected
// to provide: a role absent from snapshot meta, or a keyid absent from the
// applicable keyring.
type ErrRepositoryError struct {
	Msg string
}

func (e ErrRepositoryError) Error() string {
	return fmt.Sprintf("repository error: %s", e.Msg)
}

// ErrRuntimeError indicates a precondition of the trusted set API was
// violated by the caller, e.g. updating snapshot before timestamp.
type ErrRuntimeError struct {
	Msg string
}

func (e ErrRuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s", e.Msg)
}

// ErrValueError indicates caller API misuse, e.g. calling DownloadTarget
// with no base URL configured anywhere.
type ErrValueError struct {
	Msg string
}

func (e ErrValueError) Error() string {
	return fmt.Sprintf("value error: %s", e.Msg)
}
