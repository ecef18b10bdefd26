package trustedset

import (
	"github.com/docker/tuf-client/data"
	log "github.com/sirupsen/logrus"
)

// UpdateRoot verifies newRootBytes against both the currently trusted
// Root (outgoing keys/threshold) and the candidate Root itself (incoming
// keys/threshold, i.e. it must be self-signed with its own keys) per
// spec.md §4.2's root-rotation rule, then checks version == current+1
// and commits it. The new Root's expiry is not checked here; see
// RootExpired.
//
// Root is the one role permitted to advance by exactly one version per
// call: the caller's root-rotation loop (package updater) is what walks
// 1.root.json, 2.root.json, ... until the server has no more, calling
// UpdateRoot once per file.
//
// UpdateRoot is only callable while Snapshot has not yet been finalized
// for this TrustedSet (spec.md §4.2(1)): once a Snapshot is trusted, the
// root-rotation phase of a refresh is over, and attempting to rotate Root
// again is a caller-sequencing bug, not a data problem.
func (ts *TrustedSet) UpdateRoot(newRootBytes []byte) (*data.Metadata[data.RootData], error) {
	if ts.Snapshot != nil {
		return nil, data.ErrRuntimeError{Msg: "cannot update root after snapshot is trusted"}
	}

	newRoot, err := data.Parse[data.RootData](newRootBytes)
	if err != nil {
		return nil, err
	}
	if err := newRoot.Signed.ValidateRoot(); err != nil {
		return nil, err
	}

	payload, err := newRoot.SignedBytes()
	if err != nil {
		return nil, err
	}

	// Verify against the currently trusted root's keys/threshold.
	currentRootRole, ok := ts.Root.Signed.Roles[data.RoleRoot]
	if !ok || currentRootRole == nil {
		return nil, data.ErrMalformedMetadata{Field: "roles.root", Msg: "current root has no root role entry"}
	}
	if err := verifyThreshold(ts.verifier, ts.Root.Signed.Keys, currentRootRole, newRoot.Signatures, payload, data.RoleRoot); err != nil {
		return nil, err
	}

	// Verify against the candidate root's own keys/threshold (it must be
	// self-signed): a compromised new root cannot simply meet the old
	// threshold and install itself with a different, weaker keyset.
	newRootRole, ok := newRoot.Signed.Roles[data.RoleRoot]
	if !ok || newRootRole == nil {
		return nil, data.ErrMalformedMetadata{Field: "roles.root", Msg: "new root has no root role entry"}
	}
	if err := verifyThreshold(ts.verifier, newRoot.Signed.Keys, newRootRole, newRoot.Signatures, payload, data.RoleRoot); err != nil {
		return nil, err
	}

	if newRoot.Signed.Version != ts.Root.Signed.Version+1 {
		return nil, data.ErrBadVersion{
			Role:     data.RoleRoot,
			Current:  ts.Root.Signed.Version,
			Received: newRoot.Signed.Version,
		}
	}

	ts.Root = newRoot
	log.Debugf("trustedset: committed root version %d", newRoot.Signed.Version)
	return ts.Root, nil
}

// RootExpired reports whether the currently trusted Root has expired as
// of this TrustedSet's reference time. Root expiry is checked by the
// caller only after the root-rotation loop has finished consuming every
// available numbered root file (spec.md §5: "Root expiry is checked only
// after the update loop has exhausted available root versions").
func (ts *TrustedSet) RootExpired() bool {
	return ts.Root.Signed.IsExpired(ts.now())
}
