package delegation

import (
	"github.com/docker/tuf-client/data"
)

// DefaultMaxDelegations is the visit budget spec.md §6 names as the
// default for max_delegations.
const DefaultMaxDelegations = 32

// roleParentTuple is one stack entry of the delegation walk: the role to
// load and the parent role that delegated to it (needed to find the
// delegated role's keys/threshold).
type roleParentTuple struct {
	role   string
	parent string
}

// TargetsLoader loads and fully validates (signatures, version, expiry)
// the Targets document for role, delegated to by parent, returning it
// trusted. Implementations live in package updater, which has access to
// the TrustedSet, the local store, and the remote fetcher; this package
// only orchestrates the walk order.
type TargetsLoader func(role, parent string) (*data.Metadata[data.TargetsData], error)

// Resolver walks the delegation graph rooted at the top-level "targets"
// role to locate the Targets entry for one target path.
type Resolver struct {
	Load           TargetsLoader
	MaxDelegations int
}

// NewResolver builds a Resolver with DefaultMaxDelegations, ready to
// Find().
func NewResolver(load TargetsLoader) *Resolver {
	return &Resolver{Load: load, MaxDelegations: DefaultMaxDelegations}
}

// Find implements spec.md §4.3's find_target: a preorder depth-first
// walk with a cycle guard (visited set) and a visit budget
// (MaxDelegations). It returns the first matching TargetFiles entry
// found, the role name it was found under, and whether anything matched
// at all.
func (r *Resolver) Find(targetPath string) (data.TargetFiles, string, bool, error) {
	maxDelegations := r.MaxDelegations
	if maxDelegations <= 0 {
		maxDelegations = DefaultMaxDelegations
	}

	toVisit := []roleParentTuple{{role: data.RoleTargets, parent: data.RoleRoot}}
	visited := map[string]bool{}

	for len(toVisit) > 0 && len(visited) <= maxDelegations {
		entry := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]

		if visited[entry.role] {
			continue
		}

		targets, err := r.Load(entry.role, entry.parent)
		if err != nil {
			return data.TargetFiles{}, "", false, err
		}

		if tf, ok := targets.Signed.Targets[targetPath]; ok {
			return tf, entry.role, true, nil
		}

		visited[entry.role] = true

		if targets.Signed.Delegations == nil {
			continue
		}

		var children []roleParentTuple
		for _, child := range targets.Signed.Delegations.Roles {
			if !Matches(&child, targetPath) {
				continue
			}
			children = append(children, roleParentTuple{role: child.Name, parent: entry.role})
			if child.Terminating {
				// Discard every sibling-of-ancestor entry still queued:
				// once a terminating match is reached, nothing else on
				// the stack (from this parent or any earlier one) may
				// still be consulted (spec.md §4.3 step f).
				toVisit = nil
				break
			}
		}

		// Push in reverse so the next pop restores declared order
		// (stack is LIFO; first-declared child must be popped first).
		for i := len(children) - 1; i >= 0; i-- {
			toVisit = append(toVisit, children[i])
		}
	}

	return data.TargetFiles{}, "", false, nil
}
