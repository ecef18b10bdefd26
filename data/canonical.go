package data

import (
	"github.com/secure-systems-lab/go-securesystemslib/cjson"
)

// CanonicalBytes returns the OLPC canonical JSON encoding of v: object keys
// sorted lexicographically at every depth, no insignificant whitespace,
// minimal string escaping, arrays order-preserving. Both the signer and the
// verifier in this module route through this function (or the equivalent
// one in the signing tool that produced a document in the first place) so
// that signature verification is stable regardless of how a document was
// re-serialized in transit. Grounded on the same library
// kipz-go-tuf-metadata uses for this exact purpose
// (secure-systems-lab/go-securesystemslib/cjson), rather than a hand-rolled
// key sorter.
func CanonicalBytes(v interface{}) ([]byte, error) {
	return cjson.EncodeCanonical(v)
}

// SignedBytes returns the canonical JSON encoding of m.Signed: the exact
// payload that was (or must be) signed over.
func (m Metadata[T]) SignedBytes() ([]byte, error) {
	return CanonicalBytes(m.Signed)
}

// ToBytes serializes the whole envelope (signed body + signatures) as
// canonical JSON, so the same document produces byte-identical output
// across runs (spec "Determinism" property).
func (m Metadata[T]) ToBytes() ([]byte, error) {
	return CanonicalBytes(m)
}
