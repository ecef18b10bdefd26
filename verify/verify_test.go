package verify

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/docker/tuf-client/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateEd25519Key(t *testing.T) (*data.Key, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	key := &data.Key{
		KeyType: "ed25519",
		Scheme:  "ed25519",
		KeyVal:  data.KeyVal{Public: hex.EncodeToString(pub)},
	}
	return key, priv
}

func TestDefaultVerifierAcceptsValidSignature(t *testing.T) {
	key, priv := generateEd25519Key(t)
	payload := []byte(`{"signed":"body"}`)
	sig := ed25519.Sign(priv, payload)

	v := Default{}
	assert.True(t, v.Verify(key, "ed25519", payload, sig))
}

func TestDefaultVerifierRejectsTamperedPayload(t *testing.T) {
	key, priv := generateEd25519Key(t)
	payload := []byte(`{"signed":"body"}`)
	sig := ed25519.Sign(priv, payload)

	v := Default{}
	assert.False(t, v.Verify(key, "ed25519", []byte(`{"signed":"tampered"}`), sig))
}

func TestDefaultVerifierRejectsWrongKey(t *testing.T) {
	_, otherPriv := generateEd25519Key(t)
	key, _ := generateEd25519Key(t)
	payload := []byte("hello")
	sig := ed25519.Sign(otherPriv, payload)

	v := Default{}
	assert.False(t, v.Verify(key, "ed25519", payload, sig))
}
