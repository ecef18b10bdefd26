// Package data defines the typed representation of TUF metadata: the four
// top-level roles, the signed envelope that wraps each of them, keys,
// roles, delegations, and file descriptors. It provides canonical
// serialization and parsing (see canonical.go and parse.go) but carries no
// trust logic of its own — that lives in package trustedset.
package data

import (
	"encoding/json"
	"time"
)

// Role name constants for the four top-level TUF roles.
const (
	RoleRoot      = "root"
	RoleTimestamp = "timestamp"
	RoleSnapshot  = "snapshot"
	RoleTargets   = "targets"
)

// SpecificationVersion is the TUF specification version this module
// implements, written into newly-constructed metadata.
const SpecificationVersion = "1.0.31"

// RoleType is the generic type constraint satisfied by the signed body of
// each of the four top-level roles. Metadata[T] is a sum type over these
// four payloads dispatched on the generic parameter, not on a virtual
// method table.
type RoleType interface {
	RootData | TimestampData | SnapshotData | TargetsData
}

// Metadata is the signed envelope common to every TUF metadata document:
// `{ "signed": <role body>, "signatures": [...] }`.
type Metadata[T RoleType] struct {
	Signed     T           `json:"signed"`
	Signatures []Signature `json:"signatures"`
}

// Signature is one entry of the envelope's "signatures" array.
type Signature struct {
	KeyID              string                     `json:"keyid"`
	Sig                HexBytes                    `json:"sig"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// RootData is the signed portion of root.json.
type RootData struct {
	Type               string                     `json:"_type"`
	SpecVersion        string                     `json:"spec_version"`
	Version            int64                      `json:"version"`
	Expires            time.Time                  `json:"expires"`
	Keys               map[string]*Key            `json:"keys"`
	Roles              map[string]*RoleKeys       `json:"roles"`
	ConsistentSnapshot bool                       `json:"consistent_snapshot"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// TimestampData is the signed portion of timestamp.json.
type TimestampData struct {
	Type               string                     `json:"_type"`
	SpecVersion        string                     `json:"spec_version"`
	Version            int64                      `json:"version"`
	Expires            time.Time                  `json:"expires"`
	Meta               map[string]MetaFiles       `json:"meta"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// SnapshotData is the signed portion of snapshot.json.
type SnapshotData struct {
	Type               string                     `json:"_type"`
	SpecVersion        string                     `json:"spec_version"`
	Version            int64                      `json:"version"`
	Expires            time.Time                  `json:"expires"`
	Meta               map[string]MetaFiles       `json:"meta"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// TargetsData is the signed portion of targets.json (and of every
// delegated targets role).
type TargetsData struct {
	Type               string                     `json:"_type"`
	SpecVersion        string                     `json:"spec_version"`
	Version            int64                      `json:"version"`
	Expires            time.Time                  `json:"expires"`
	Targets            map[string]TargetFiles     `json:"targets"`
	Delegations        *Delegations               `json:"delegations,omitempty"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// Key is a public key record as carried in root.json's or a delegating
// Targets' "keys" map.
type Key struct {
	KeyType            string                     `json:"keytype"`
	Scheme             string                     `json:"scheme"`
	KeyVal             KeyVal                     `json:"keyval"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// KeyVal holds the actual public key material.
type KeyVal struct {
	Public             string                     `json:"public"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// RoleKeys is root.json's per-role {keyids, threshold} record.
type RoleKeys struct {
	KeyIDs             []string                   `json:"keyids"`
	Threshold          int                        `json:"threshold"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// Delegations is the optional delegation block of a Targets document.
type Delegations struct {
	Keys               map[string]*Key            `json:"keys"`
	Roles              []DelegatedRole            `json:"roles"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// DelegatedRole names a child Targets role and the predicate under which
// it is consulted.
type DelegatedRole struct {
	Name               string                     `json:"name"`
	KeyIDs             []string                   `json:"keyids"`
	Threshold          int                        `json:"threshold"`
	Terminating        bool                       `json:"terminating"`
	Paths              []string                   `json:"paths,omitempty"`
	PathHashPrefixes   []string                   `json:"path_hash_prefixes,omitempty"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// HexBytes is a byte slice that is JSON-encoded as a lowercase hex string,
// as TUF requires for signatures and hash digests.
type HexBytes []byte

// Hashes maps a hash algorithm name ("sha256", "sha512", ...) to the hex
// digest of the described content.
type Hashes map[string]HexBytes

// MetaFiles is the value type of a Timestamp/Snapshot "meta" entry: a
// reference to another metadata file by version, with optional length and
// hashes for integrity-checking the fetched bytes.
type MetaFiles struct {
	Version            int64                      `json:"version"`
	Length             int64                      `json:"length,omitempty"`
	Hashes             Hashes                     `json:"hashes,omitempty"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}

// TargetFiles is the value type of a Targets "targets" entry: a target
// path's length and hashes, used to verify downloaded target content.
type TargetFiles struct {
	Length             int64                      `json:"length"`
	Hashes             Hashes                     `json:"hashes"`
	Custom             json.RawMessage            `json:"custom,omitempty"`
	UnrecognizedFields map[string]json.RawMessage `json:"-"`
}
