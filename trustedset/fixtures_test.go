package trustedset

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/docker/tuf-client/data"
	"github.com/stretchr/testify/require"
)

func hexSHA256(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// testKey is a generated ed25519 keypair plus its TUF key record and
// computed keyid (sha256 of the canonical key record, as every go-tuf
// family implementation in the retrieval pack derives keyids).
type testKey struct {
	id   string
	priv ed25519.PrivateKey
	key  *data.Key
}

func newTestKey(t *testing.T) testKey {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	key := &data.Key{
		KeyType: "ed25519",
		Scheme:  "ed25519",
		KeyVal:  data.KeyVal{Public: hex.EncodeToString(pub)},
	}
	b, err := data.CanonicalBytes(key)
	require.NoError(t, err)
	id := hexSHA256(b)
	return testKey{id: id, priv: priv, key: key}
}

func signRoot(t *testing.T, root *data.Metadata[data.RootData], keys ...testKey) {
	t.Helper()
	payload, err := root.SignedBytes()
	require.NoError(t, err)
	root.Signatures = nil
	for _, k := range keys {
		root.Signatures = append(root.Signatures, data.Signature{KeyID: k.id, Sig: ed25519.Sign(k.priv, payload)})
	}
}

func signTimestamp(t *testing.T, ts *data.Metadata[data.TimestampData], keys ...testKey) {
	t.Helper()
	payload, err := ts.SignedBytes()
	require.NoError(t, err)
	ts.Signatures = nil
	for _, k := range keys {
		ts.Signatures = append(ts.Signatures, data.Signature{KeyID: k.id, Sig: ed25519.Sign(k.priv, payload)})
	}
}

func signSnapshot(t *testing.T, ss *data.Metadata[data.SnapshotData], keys ...testKey) {
	t.Helper()
	payload, err := ss.SignedBytes()
	require.NoError(t, err)
	ss.Signatures = nil
	for _, k := range keys {
		ss.Signatures = append(ss.Signatures, data.Signature{KeyID: k.id, Sig: ed25519.Sign(k.priv, payload)})
	}
}

func signTargets(t *testing.T, tg *data.Metadata[data.TargetsData], keys ...testKey) {
	t.Helper()
	payload, err := tg.SignedBytes()
	require.NoError(t, err)
	tg.Signatures = nil
	for _, k := range keys {
		tg.Signatures = append(tg.Signatures, data.Signature{KeyID: k.id, Sig: ed25519.Sign(k.priv, payload)})
	}
}

// newTestRoot builds a version-1 root trusting one key per role, each
// role's keyid->key registered in Keys, signed by rootKey.
func newTestRoot(t *testing.T, expires time.Time, rootKey, timestampKey, snapshotKey, targetsKey testKey) *data.Metadata[data.RootData] {
	t.Helper()
	root := data.NewRoot(expires)
	root.Signed.Keys[rootKey.id] = rootKey.key
	root.Signed.Keys[timestampKey.id] = timestampKey.key
	root.Signed.Keys[snapshotKey.id] = snapshotKey.key
	root.Signed.Keys[targetsKey.id] = targetsKey.key
	root.Signed.Roles[data.RoleRoot].KeyIDs = []string{rootKey.id}
	root.Signed.Roles[data.RoleTimestamp].KeyIDs = []string{timestampKey.id}
	root.Signed.Roles[data.RoleSnapshot].KeyIDs = []string{snapshotKey.id}
	root.Signed.Roles[data.RoleTargets].KeyIDs = []string{targetsKey.id}
	signRoot(t, root, rootKey)
	return root
}

func marshalSigned(t *testing.T, b interface{ ToBytes() ([]byte, error) }) []byte {
	t.Helper()
	out, err := b.ToBytes()
	require.NoError(t, err)
	return out
}
