package updater

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docker/tuf-client/data"
	"github.com/stretchr/testify/require"
)

type testKey struct {
	id   string
	priv ed25519.PrivateKey
	key  *data.Key
}

func newTestKey(t *testing.T) testKey {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	key := &data.Key{KeyType: "ed25519", Scheme: "ed25519", KeyVal: data.KeyVal{Public: hex.EncodeToString(pub)}}
	b, err := data.CanonicalBytes(key)
	require.NoError(t, err)
	sum := sha256.Sum256(b)
	return testKey{id: hex.EncodeToString(sum[:]), priv: priv, key: key}
}

func sign[T data.RoleType](t *testing.T, m *data.Metadata[T], keys ...testKey) {
	t.Helper()
	payload, err := m.SignedBytes()
	require.NoError(t, err)
	m.Signatures = nil
	for _, k := range keys {
		m.Signatures = append(m.Signatures, data.Signature{KeyID: k.id, Sig: ed25519.Sign(k.priv, payload)})
	}
}

func bytesOf(t *testing.T, m interface{ ToBytes() ([]byte, error) }) []byte {
	t.Helper()
	b, err := m.ToBytes()
	require.NoError(t, err)
	return b
}

// fakeRemote serves a fixed map of path (relative to its base URL) to
// bytes, standing in for a TUF trust server.
type fakeRemote struct {
	srv   *httptest.Server
	files map[string][]byte
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	fr := &fakeRemote{files: map[string][]byte{}}
	fr.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		body, ok := fr.files[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(fr.srv.Close)
	return fr
}

func (fr *fakeRemote) baseURL() string { return fr.srv.URL }

func (fr *fakeRemote) set(name string, content []byte) { fr.files[name] = content }

// newBootstrapRoot builds a version-1 root trusting one key per role,
// signed by the root role's key, returning both the metadata and the
// testKey fixtures used to build further documents against it.
func newBootstrapRoot(t *testing.T, expires time.Time) (*data.Metadata[data.RootData], testKey, testKey, testKey, testKey) {
	t.Helper()
	rootKey := newTestKey(t)
	timestampKey := newTestKey(t)
	snapshotKey := newTestKey(t)
	targetsKey := newTestKey(t)

	root := data.NewRoot(expires)
	root.Signed.Keys[rootKey.id] = rootKey.key
	root.Signed.Keys[timestampKey.id] = timestampKey.key
	root.Signed.Keys[snapshotKey.id] = snapshotKey.key
	root.Signed.Keys[targetsKey.id] = targetsKey.key
	root.Signed.Roles[data.RoleRoot].KeyIDs = []string{rootKey.id}
	root.Signed.Roles[data.RoleTimestamp].KeyIDs = []string{timestampKey.id}
	root.Signed.Roles[data.RoleSnapshot].KeyIDs = []string{snapshotKey.id}
	root.Signed.Roles[data.RoleTargets].KeyIDs = []string{targetsKey.id}
	sign(t, root, rootKey)
	return root, rootKey, timestampKey, snapshotKey, targetsKey
}
