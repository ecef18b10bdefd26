// Package delegation implements the preorder depth-first delegation
// resolver described in spec.md §4.3: given a target path, it walks the
// Targets delegation graph rooted at the top-level "targets" role and
// returns the first (most-trusted) matching TargetFiles entry, subject to
// a cycle guard and a visit budget.
//
// Grounded on kipz-go-tuf-metadata's Updater.preOrderDepthFirstWalk for
// the overall stack-based traversal shape, corrected against spec.md
// where that reference implementation's terminating-role handling is too
// narrow (it only ever considers the first matching child of a parent
// and always clears the stack, rather than pushing every matching child
// up to and including the terminating one).
package delegation

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/danwakefield/fnmatch"
	"github.com/docker/tuf-client/data"
)

// Matches reports whether a delegated role's predicate matches
// targetPath, per spec.md §4.3's Matching rule: a paths glob (shell-style,
// '*' not crossing '/') or a path_hash_prefixes hex prefix of
// sha256(targetPath).
func Matches(role *data.DelegatedRole, targetPath string) bool {
	for _, pattern := range role.Paths {
		if fnmatch.Match(pattern, targetPath, fnmatch.FNM_PATHNAME) {
			return true
		}
	}
	if len(role.PathHashPrefixes) > 0 {
		digest := sha256.Sum256([]byte(targetPath))
		hexDigest := hex.EncodeToString(digest[:])
		for _, prefix := range role.PathHashPrefixes {
			if len(hexDigest) >= len(prefix) && hexDigest[:len(prefix)] == prefix {
				return true
			}
		}
	}
	return false
}
