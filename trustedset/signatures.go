package trustedset

import (
	"github.com/docker/tuf-client/data"
	"github.com/docker/tuf-client/verify"
)

// keyring supplies the keys a role's keyids reference. Root roles look
// keys up in Root.Keys; delegated roles look keys up in the parent
// Targets document's Delegations.Keys.
type keyring map[string]*data.Key

// verifyThreshold implements spec.md §4.2's signature-counting algorithm:
// walk role.KeyIDs in order; a keyid absent from the keyring is a
// RepositoryError (the role declares a key that does not exist), but a
// keyid simply missing its corresponding signature in the envelope is
// not fatal by itself — only the final contributing-key count against
// role.Threshold is.
func verifyThreshold(verifier verify.Verifier, keys keyring, role *data.RoleKeys, sigs []data.Signature, payload []byte, roleName string) error {
	if role.Threshold < 1 {
		return data.ErrMalformedMetadata{Field: "threshold", Msg: "role threshold must be >= 1"}
	}

	sigByKeyID := make(map[string]data.Signature, len(sigs))
	for _, s := range sigs {
		sigByKeyID[s.KeyID] = s
	}

	verified := 0
	counted := map[string]bool{}
	for _, keyID := range role.KeyIDs {
		key, ok := keys[keyID]
		if !ok {
			return data.ErrRepositoryError{Msg: "role " + roleName + " references unknown key " + keyID}
		}
		sig, ok := sigByKeyID[keyID]
		if !ok || counted[keyID] {
			continue
		}
		if verifier.Verify(key, key.Scheme, payload, sig.Sig) {
			counted[keyID] = true
			verified++
		}
	}

	if verified < role.Threshold {
		return data.ErrUnsignedMetadata{
			Role: roleName,
			Msg:  "signature threshold not met",
		}
	}
	return nil
}
