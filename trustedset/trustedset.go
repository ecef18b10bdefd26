// Package trustedset implements the in-memory trusted metadata state
// machine described in spec.md §4.2: it is the only place in this module
// that ever promotes a parsed metadata document to "trusted", and it
// enforces every version/expiry/signature invariant on the way there. It
// never reverts: once a document is committed, replacing it can only
// advance the set forward under the rules below.
//
// Grounded on kipz-go-tuf-metadata's trustedmetadata.TrustedMetadata (the
// closest Go prior art for this exact state machine) for the operation
// shape (Update* methods returning the freshly-committed document or an
// error), generalized to docker/notary's error-type-per-case style
// (ErrRepoNotInitialized, ErrServerUnavailable, ...) rather than sentinel
// errors, and to the spec's more conservative monotonicity rules.
package trustedset

import (
	"time"

	"github.com/docker/tuf-client/data"
	"github.com/docker/tuf-client/verify"
	log "github.com/sirupsen/logrus"
)

// TrustedSet holds the metadata this Updater instance currently trusts.
// It is not safe for concurrent use: spec.md §5 describes a
// single-threaded cooperative client, and no two operations on the same
// TrustedSet may interleave.
type TrustedSet struct {
	Root      *data.Metadata[data.RootData]
	Timestamp *data.Metadata[data.TimestampData]
	Snapshot  *data.Metadata[data.SnapshotData]

	// Targets holds every currently trusted Targets document, keyed by
	// role name ("targets" for the top-level role, or a delegated role's
	// name). Snapshot commits clear this map in full: all delegated
	// Targets must be re-validated against the new Snapshot.
	Targets map[string]*data.Metadata[data.TargetsData]

	verifier verify.Verifier
	now      func() time.Time
}

// Option configures a TrustedSet constructed by New.
type Option func(*TrustedSet)

// WithVerifier overrides the default stdlib signature verifier.
func WithVerifier(v verify.Verifier) Option {
	return func(ts *TrustedSet) { ts.verifier = v }
}

// WithReferenceTime fixes the "now" used for every expiry check made by
// this TrustedSet's lifetime to the given instant, in place of the system
// time sampled once when New runs — spec.md §9: "Use one reference time per refresh
// to avoid race conditions between checks within a single refresh."
func WithReferenceTime(t time.Time) Option {
	return func(ts *TrustedSet) { ts.now = func() time.Time { return t } }
}

// New creates a TrustedSet bootstrapped from initial trusted Root bytes.
// The initial Root is the caller's existing basis for trust (e.g. the
// Root shipped with the client, or the last Root persisted locally) and
// so is accepted on structural validity alone: it is not itself verified
// against anything, since there is nothing earlier to verify it against.
func New(initialRootBytes []byte, opts ...Option) (*TrustedSet, error) {
	root, err := data.Parse[data.RootData](initialRootBytes)
	if err != nil {
		return nil, err
	}
	if err := root.Signed.ValidateRoot(); err != nil {
		return nil, err
	}

	referenceTime := time.Now().UTC()
	ts := &TrustedSet{
		Root:    root,
		Targets: map[string]*data.Metadata[data.TargetsData]{},
		verifier: verify.Default{},
		now:      func() time.Time { return referenceTime },
	}
	for _, opt := range opts {
		opt(ts)
	}
	log.Debugf("trustedset: bootstrapped with root version %d", root.Signed.Version)
	return ts, nil
}
