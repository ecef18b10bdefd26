package trustedset

import (
	"github.com/docker/tuf-client/data"
	log "github.com/sirupsen/logrus"
)

// UpdateTimestamp rejects outright if the current Root is expired, then
// verifies newTimestampBytes against the current Root's timestamp role,
// rejects rollback (a new version strictly less than the currently
// trusted one, or a declared snapshot.json version strictly less than
// the currently trusted one) and replay (an equal version, which is not
// an error but also not a commit — the caller should treat it as
// "nothing new"), and otherwise commits it. A non-expired check against
// the new document's own Expires happens last, matching spec.md §4.2's
// ordering: signatures and version first, expiry only once the document
// is otherwise acceptable.
//
// Trusting a new Timestamp invalidates any trusted Snapshot/Targets whose
// version no longer matches what the new Timestamp declares; callers
// detect this by comparing ts.Snapshot's version against
// ts.Timestamp.Signed.Meta["snapshot.json"].Version after this call.
func (ts *TrustedSet) UpdateTimestamp(newTimestampBytes []byte) (*data.Metadata[data.TimestampData], error) {
	if ts.Root.Signed.IsExpired(ts.now()) {
		return nil, data.ErrExpiredMetadata{Role: data.RoleRoot, Expires: ts.Root.Signed.Expires}
	}

	newTimestamp, err := data.Parse[data.TimestampData](newTimestampBytes)
	if err != nil {
		return nil, err
	}

	payload, err := newTimestamp.SignedBytes()
	if err != nil {
		return nil, err
	}

	role, ok := ts.Root.Signed.Roles[data.RoleTimestamp]
	if !ok || role == nil {
		return nil, data.ErrMalformedMetadata{Field: "roles.timestamp", Msg: "root has no timestamp role entry"}
	}
	if err := verifyThreshold(ts.verifier, ts.Root.Signed.Keys, role, newTimestamp.Signatures, payload, data.RoleTimestamp); err != nil {
		return nil, err
	}

	if ts.Timestamp != nil {
		if newTimestamp.Signed.Version < ts.Timestamp.Signed.Version {
			return nil, data.ErrBadVersion{
				Role:     data.RoleTimestamp,
				Current:  ts.Timestamp.Signed.Version,
				Received: newTimestamp.Signed.Version,
			}
		}
		if newTimestamp.Signed.Version == ts.Timestamp.Signed.Version {
			return nil, data.ErrEqualVersion{Role: data.RoleTimestamp, Version: newTimestamp.Signed.Version}
		}

		oldSnapshotMeta := ts.Timestamp.Signed.Meta["snapshot.json"]
		newSnapshotMeta := newTimestamp.Signed.Meta["snapshot.json"]
		if newSnapshotMeta.Version < oldSnapshotMeta.Version {
			return nil, data.ErrBadVersion{
				Role:     "snapshot.json",
				Current:  oldSnapshotMeta.Version,
				Received: newSnapshotMeta.Version,
			}
		}
	}

	if newTimestamp.Signed.IsExpired(ts.now()) {
		return nil, data.ErrExpiredMetadata{Role: data.RoleTimestamp, Expires: newTimestamp.Signed.Expires}
	}

	ts.Timestamp = newTimestamp
	log.Debugf("trustedset: committed timestamp version %d", newTimestamp.Signed.Version)
	return ts.Timestamp, nil
}
