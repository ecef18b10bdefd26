package data

import "fmt"

// ValidateRoot checks the Root-specific invariants from spec.md §3: no
// duplicate keyids within a role, every referenced keyid resolves in
// Keys, and every role threshold is at least 1.
func (r RootData) ValidateRoot() error {
	for roleName, role := range r.Roles {
		if role == nil {
			return ErrMalformedMetadata{Field: "roles", Msg: fmt.Sprintf("role %q is nil", roleName)}
		}
		if role.Threshold < 1 {
			return ErrMalformedMetadata{Field: "roles", Msg: fmt.Sprintf("role %q has threshold %d < 1", roleName, role.Threshold)}
		}
		seen := map[string]bool{}
		for _, keyID := range role.KeyIDs {
			if seen[keyID] {
				return ErrMalformedMetadata{Field: "roles", Msg: fmt.Sprintf("role %q lists keyid %q more than once", roleName, keyID)}
			}
			seen[keyID] = true
			if _, ok := r.Keys[keyID]; !ok {
				return ErrMalformedMetadata{Field: "roles", Msg: fmt.Sprintf("role %q references unknown keyid %q", roleName, keyID)}
			}
		}
	}
	return nil
}

// ValidateDelegatedRole checks the "exactly one of paths or
// path_hash_prefixes" invariant from spec.md §3.
func (d DelegatedRole) ValidateDelegatedRole() error {
	hasPaths := len(d.Paths) > 0
	hasPrefixes := len(d.PathHashPrefixes) > 0
	if hasPaths == hasPrefixes {
		return ErrMalformedMetadata{
			Field: "delegations.roles",
			Msg:   fmt.Sprintf("delegated role %q must set exactly one of paths or path_hash_prefixes", d.Name),
		}
	}
	if d.Threshold < 1 {
		return ErrMalformedMetadata{Field: "delegations.roles", Msg: fmt.Sprintf("delegated role %q has threshold %d < 1", d.Name, d.Threshold)}
	}
	return nil
}
