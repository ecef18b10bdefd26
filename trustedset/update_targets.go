package trustedset

import (
	"github.com/docker/tuf-client/data"
	log "github.com/sirupsen/logrus"
)

// UpdateTargets verifies and commits the top-level targets.json against
// the current Root's targets role and the trusted Snapshot's declared
// length/hashes/version, then stores it under the "targets" role name.
func (ts *TrustedSet) UpdateTargets(newTargetsBytes []byte) (*data.Metadata[data.TargetsData], error) {
	role, ok := ts.Root.Signed.Roles[data.RoleTargets]
	if !ok || role == nil {
		return nil, data.ErrMalformedMetadata{Field: "roles.targets", Msg: "root has no targets role entry"}
	}
	return ts.updateTargetsRole(data.RoleTargets, newTargetsBytes, ts.Root.Signed.Keys, role)
}

// UpdateDelegatedTargets verifies and commits a delegated Targets
// document named roleName, authenticated against the keys/threshold its
// delegating parent (parentRoleName, already trusted) declared for it.
// The caller (package delegation / package updater) is responsible for
// walking the delegation graph to discover parentRoleName; this method
// looks up roleName's entry and keys in the parent's delegations and
// performs the cryptographic and version/expiry checks for that one edge
// of the graph.
func (ts *TrustedSet) UpdateDelegatedTargets(roleName string, newTargetsBytes []byte, parentRoleName string) (*data.Metadata[data.TargetsData], error) {
	parent, ok := ts.Targets[parentRoleName]
	if !ok || parent == nil {
		return nil, data.ErrRepositoryError{Msg: "delegating role " + parentRoleName + " is not trusted"}
	}
	if parent.Signed.Delegations == nil {
		return nil, data.ErrRepositoryError{Msg: "delegating role " + parentRoleName + " declares no delegations"}
	}

	var delegated *data.DelegatedRole
	for i := range parent.Signed.Delegations.Roles {
		if parent.Signed.Delegations.Roles[i].Name == roleName {
			delegated = &parent.Signed.Delegations.Roles[i]
			break
		}
	}
	if delegated == nil {
		return nil, data.ErrRepositoryError{Msg: "role " + roleName + " is not delegated by " + parentRoleName}
	}
	if err := delegated.ValidateDelegatedRole(); err != nil {
		return nil, err
	}

	role := &data.RoleKeys{KeyIDs: delegated.KeyIDs, Threshold: delegated.Threshold}
	return ts.updateTargetsRole(roleName, newTargetsBytes, parent.Signed.Delegations.Keys, role)
}

func (ts *TrustedSet) updateTargetsRole(roleName string, newTargetsBytes []byte, keys keyring, role *data.RoleKeys) (*data.Metadata[data.TargetsData], error) {
	if ts.Snapshot == nil {
		return nil, data.ErrRuntimeError{Msg: "cannot update targets before snapshot is trusted"}
	}
	if ts.Snapshot.Signed.IsExpired(ts.now()) {
		return nil, data.ErrExpiredMetadata{Role: data.RoleSnapshot, Expires: ts.Snapshot.Signed.Expires}
	}

	meta, haveMeta := ts.Snapshot.Signed.Meta[roleName+".json"]
	if !haveMeta {
		return nil, data.ErrRepositoryError{Msg: "snapshot has no entry for " + roleName + ".json"}
	}
	if err := meta.VerifyLengthHashes(newTargetsBytes); err != nil {
		return nil, err
	}

	newTargets, err := data.Parse[data.TargetsData](newTargetsBytes)
	if err != nil {
		return nil, err
	}

	payload, err := newTargets.SignedBytes()
	if err != nil {
		return nil, err
	}

	if err := verifyThreshold(ts.verifier, keys, role, newTargets.Signatures, payload, roleName); err != nil {
		return nil, err
	}

	if newTargets.Signed.Version != meta.Version {
		return nil, data.ErrBadVersion{
			Role:     roleName,
			Current:  meta.Version,
			Received: newTargets.Signed.Version,
		}
	}

	if newTargets.Signed.IsExpired(ts.now()) {
		return nil, data.ErrExpiredMetadata{Role: roleName, Expires: newTargets.Signed.Expires}
	}

	ts.Targets[roleName] = newTargets
	log.Debugf("trustedset: committed targets role %q version %d", roleName, newTargets.Signed.Version)
	return newTargets, nil
}
