package updater

import "github.com/docker/tuf-client/data"

// FindCachedTarget implements spec.md §4.4's find_cached_target: read
// bytes already on disk for targetPath, verify them against descriptor's
// length and hashes, and report whether the cached copy is still valid.
// Any failure (missing file, length mismatch, hash mismatch) is reported
// as simply "not found" — this operation never returns an error of its
// own, matching the spec's "return the path on success, None on any
// failure."
func (u *Updater) FindCachedTarget(targetPath string, descriptor data.TargetFiles) ([]byte, bool) {
	content, err := u.local.GetTarget(targetPath)
	if err != nil {
		return nil, false
	}
	if err := descriptor.VerifyLengthHashes(content); err != nil {
		return nil, false
	}
	return content, true
}
