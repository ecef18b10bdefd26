package data

import "encoding/json"

// Each aliased type below exists only so json.Marshal/Unmarshal on it does
// not recurse into the real type's custom MarshalJSON/UnmarshalJSON.

type rootDataAlias RootData

func (r RootData) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(rootDataAlias(r), r.UnrecognizedFields)
}

func (r *RootData) UnmarshalJSON(b []byte) error {
	var alias rootDataAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*r = RootData(alias)
	r.UnrecognizedFields = extra
	return nil
}

type timestampDataAlias TimestampData

func (t TimestampData) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(timestampDataAlias(t), t.UnrecognizedFields)
}

func (t *TimestampData) UnmarshalJSON(b []byte) error {
	var alias timestampDataAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*t = TimestampData(alias)
	t.UnrecognizedFields = extra
	return nil
}

type snapshotDataAlias SnapshotData

func (s SnapshotData) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(snapshotDataAlias(s), s.UnrecognizedFields)
}

func (s *SnapshotData) UnmarshalJSON(b []byte) error {
	var alias snapshotDataAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*s = SnapshotData(alias)
	s.UnrecognizedFields = extra
	return nil
}

type targetsDataAlias TargetsData

func (t TargetsData) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(targetsDataAlias(t), t.UnrecognizedFields)
}

func (t *TargetsData) UnmarshalJSON(b []byte) error {
	var alias targetsDataAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*t = TargetsData(alias)
	t.UnrecognizedFields = extra
	return nil
}

type signatureAlias Signature

func (s Signature) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(signatureAlias(s), s.UnrecognizedFields)
}

func (s *Signature) UnmarshalJSON(b []byte) error {
	var alias signatureAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*s = Signature(alias)
	s.UnrecognizedFields = extra
	return nil
}

type keyAlias Key

func (k Key) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(keyAlias(k), k.UnrecognizedFields)
}

func (k *Key) UnmarshalJSON(b []byte) error {
	var alias keyAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*k = Key(alias)
	k.UnrecognizedFields = extra
	return nil
}

type keyValAlias KeyVal

func (k KeyVal) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(keyValAlias(k), k.UnrecognizedFields)
}

func (k *KeyVal) UnmarshalJSON(b []byte) error {
	var alias keyValAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*k = KeyVal(alias)
	k.UnrecognizedFields = extra
	return nil
}

type roleKeysAlias RoleKeys

func (r RoleKeys) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(roleKeysAlias(r), r.UnrecognizedFields)
}

func (r *RoleKeys) UnmarshalJSON(b []byte) error {
	var alias roleKeysAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*r = RoleKeys(alias)
	r.UnrecognizedFields = extra
	return nil
}

type delegationsAlias Delegations

func (d Delegations) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(delegationsAlias(d), d.UnrecognizedFields)
}

func (d *Delegations) UnmarshalJSON(b []byte) error {
	var alias delegationsAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*d = Delegations(alias)
	d.UnrecognizedFields = extra
	return nil
}

type delegatedRoleAlias DelegatedRole

func (d DelegatedRole) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(delegatedRoleAlias(d), d.UnrecognizedFields)
}

func (d *DelegatedRole) UnmarshalJSON(b []byte) error {
	var alias delegatedRoleAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*d = DelegatedRole(alias)
	d.UnrecognizedFields = extra
	return nil
}

type metaFilesAlias MetaFiles

func (m MetaFiles) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(metaFilesAlias(m), m.UnrecognizedFields)
}

func (m *MetaFiles) UnmarshalJSON(b []byte) error {
	var alias metaFilesAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*m = MetaFiles(alias)
	m.UnrecognizedFields = extra
	return nil
}

type targetFilesAlias TargetFiles

func (t TargetFiles) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(targetFilesAlias(t), t.UnrecognizedFields)
}

func (t *TargetFiles) UnmarshalJSON(b []byte) error {
	var alias targetFilesAlias
	extra, err := unmarshalWithExtra(b, &alias)
	if err != nil {
		return err
	}
	*t = TargetFiles(alias)
	t.UnrecognizedFields = extra
	return nil
}

// MarshalJSON encodes a HexBytes value as a lowercase hex string.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexEncode(b))
}

// UnmarshalJSON decodes a lowercase (or uppercase) hex string into HexBytes.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := hexDecode(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
