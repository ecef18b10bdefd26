package trustedset

import (
	"github.com/docker/tuf-client/data"
	log "github.com/sirupsen/logrus"
)

// UpdateSnapshot requires a trusted, non-expired Timestamp, then verifies
// newSnapshotBytes against the current Root's snapshot role and the
// length/hashes declared by that Timestamp, then enforces per-file
// version monotonicity against the previously trusted Snapshot (if any):
// every target/delegated-targets meta entry that existed before must
// still exist, at a version no lower than before (spec.md §4.2). The new
// Snapshot's own expiry is checked last.
//
// trustedLocal distinguishes a Snapshot loaded from local cache (where
// length/hash verification against Timestamp.Meta is skipped, since a
// locally-cached file that matches what was already trusted needn't be
// re-verified against a Timestamp that may since have rotated) from one
// freshly fetched from a remote (where it is required). This mirrors
// kipz-go-tuf-metadata's updater.loadSnapshot(trustedSetFromCache bool)
// distinction.
//
// On success, every previously trusted delegated Targets document is
// dropped: a new Snapshot supersedes all per-role version pins, and each
// Targets must be reloaded and re-validated against it before use.
func (ts *TrustedSet) UpdateSnapshot(newSnapshotBytes []byte, trustedLocal bool) (*data.Metadata[data.SnapshotData], error) {
	if ts.Timestamp == nil {
		return nil, data.ErrRuntimeError{Msg: "cannot update snapshot before timestamp is trusted"}
	}
	if ts.Timestamp.Signed.IsExpired(ts.now()) {
		return nil, data.ErrExpiredMetadata{Role: data.RoleTimestamp, Expires: ts.Timestamp.Signed.Expires}
	}

	snapshotMeta, haveMeta := ts.Timestamp.Signed.Meta["snapshot.json"]
	if !trustedLocal {
		if !haveMeta {
			return nil, data.ErrMalformedMetadata{Field: "meta", Msg: "timestamp has no snapshot.json entry"}
		}
		if err := data.CheckLengthAtMost(newSnapshotBytes, snapshotMeta.Length); err != nil {
			return nil, err
		}
		if err := data.CheckHashes(newSnapshotBytes, snapshotMeta.Hashes); err != nil {
			return nil, err
		}
	}

	newSnapshot, err := data.Parse[data.SnapshotData](newSnapshotBytes)
	if err != nil {
		return nil, err
	}

	payload, err := newSnapshot.SignedBytes()
	if err != nil {
		return nil, err
	}

	role, ok := ts.Root.Signed.Roles[data.RoleSnapshot]
	if !ok || role == nil {
		return nil, data.ErrMalformedMetadata{Field: "roles.snapshot", Msg: "root has no snapshot role entry"}
	}
	if err := verifyThreshold(ts.verifier, ts.Root.Signed.Keys, role, newSnapshot.Signatures, payload, data.RoleSnapshot); err != nil {
		return nil, err
	}

	if haveMeta && newSnapshot.Signed.Version != snapshotMeta.Version {
		return nil, data.ErrBadVersion{
			Role:     data.RoleSnapshot,
			Current:  snapshotMeta.Version,
			Received: newSnapshot.Signed.Version,
		}
	}

	if ts.Snapshot != nil {
		for name, oldMeta := range ts.Snapshot.Signed.Meta {
			newMeta, stillPresent := newSnapshot.Signed.Meta[name]
			if !stillPresent {
				return nil, data.ErrRepositoryError{Msg: "snapshot rollback: " + name + " is no longer present"}
			}
			if newMeta.Version < oldMeta.Version {
				return nil, data.ErrBadVersion{
					Role:     name,
					Current:  oldMeta.Version,
					Received: newMeta.Version,
				}
			}
		}
	}

	if newSnapshot.Signed.IsExpired(ts.now()) {
		return nil, data.ErrExpiredMetadata{Role: data.RoleSnapshot, Expires: newSnapshot.Signed.Expires}
	}

	ts.Snapshot = newSnapshot
	ts.Targets = map[string]*data.Metadata[data.TargetsData]{}
	log.Debugf("trustedset: committed snapshot version %d", newSnapshot.Signed.Version)
	return ts.Snapshot, nil
}
