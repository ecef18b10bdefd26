package verify

import "encoding/hex"

// decodeHexOrBase decodes a hex-encoded ed25519 public key string.
// Test fixtures and every go-tuf-family implementation examined in the
// retrieval pack encode ed25519 keyval.public as lowercase hex.
func decodeHexOrBase(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
