package data

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Parse decodes bytes into a Metadata[T] envelope, enforcing the `_type`
// tag and the spec_version major-version rule before trusting the decoded
// value. Callers still owe signature/version/expiry checks (package
// trustedset) — Parse only validates shape.
func Parse[T RoleType](raw []byte) (*Metadata[T], error) {
	wantType, err := roleTypeName[T]()
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Signed struct {
			Type        string `json:"_type"`
			SpecVersion string `json:"spec_version"`
		} `json:"signed"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, ErrMalformedMetadata{Msg: fmt.Sprintf("invalid JSON envelope: %v", err)}
	}
	if envelope.Signed.Type != wantType {
		return nil, ErrMalformedMetadata{
			Field: "_type",
			Msg:   fmt.Sprintf("expected %q, got %q", wantType, envelope.Signed.Type),
		}
	}
	if err := validateSpecVersion(envelope.Signed.SpecVersion); err != nil {
		return nil, err
	}

	m := &Metadata[T]{}
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, ErrMalformedMetadata{Msg: fmt.Sprintf("invalid metadata body: %v", err)}
	}
	if err := checkUniqueSignatureKeyIDs(m.Signatures); err != nil {
		return nil, err
	}
	return m, nil
}

func roleTypeName[T RoleType]() (string, error) {
	switch any(*new(T)).(type) {
	case RootData:
		return RoleRoot, nil
	case TimestampData:
		return RoleTimestamp, nil
	case SnapshotData:
		return RoleSnapshot, nil
	case TargetsData:
		return RoleTargets, nil
	default:
		return "", ErrMalformedMetadata{Msg: "unrecognized metadata role type"}
	}
}

func checkUniqueSignatureKeyIDs(sigs []Signature) error {
	seen := map[string]bool{}
	for _, s := range sigs {
		if seen[s.KeyID] {
			return ErrMalformedMetadata{
				Field: "signatures",
				Msg:   fmt.Sprintf("multiple signatures found for keyid %s", s.KeyID),
			}
		}
		seen[s.KeyID] = true
	}
	return nil
}

// validateSpecVersion requires 2 or 3 dot-separated numeric components
// with the first equal to "1" (spec.md §4.1).
func validateSpecVersion(v string) error {
	parts := strings.Split(v, ".")
	if len(parts) != 2 && len(parts) != 3 {
		return ErrMalformedMetadata{Field: "spec_version", Msg: fmt.Sprintf("expected 2 or 3 components, got %q", v)}
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return ErrMalformedMetadata{Field: "spec_version", Msg: fmt.Sprintf("non-numeric component in %q", v)}
		}
	}
	if parts[0] != "1" {
		return ErrMalformedMetadata{Field: "spec_version", Msg: fmt.Sprintf("unsupported major version in %q", v)}
	}
	return nil
}
