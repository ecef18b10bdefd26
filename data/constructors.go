package data

import "time"

// NewRoot returns a new, empty RootData expiring at the given instant,
// with a threshold-1 empty-keyid entry for each top-level role.
func NewRoot(expires time.Time) *Metadata[RootData] {
	roles := map[string]*RoleKeys{}
	for _, r := range []string{RoleRoot, RoleSnapshot, RoleTargets, RoleTimestamp} {
		roles[r] = &RoleKeys{KeyIDs: []string{}, Threshold: 1}
	}
	return &Metadata[RootData]{
		Signed: RootData{
			Type:               RoleRoot,
			SpecVersion:        SpecificationVersion,
			Version:            1,
			Expires:            expires,
			Keys:               map[string]*Key{},
			Roles:              roles,
			ConsistentSnapshot: true,
		},
	}
}

// NewTimestamp returns a new TimestampData pointing at snapshot.json
// version 1.
func NewTimestamp(expires time.Time) *Metadata[TimestampData] {
	return &Metadata[TimestampData]{
		Signed: TimestampData{
			Type:        RoleTimestamp,
			SpecVersion: SpecificationVersion,
			Version:     1,
			Expires:     expires,
			Meta:        map[string]MetaFiles{"snapshot.json": {Version: 1}},
		},
	}
}

// NewSnapshot returns a new SnapshotData pointing at targets.json
// version 1.
func NewSnapshot(expires time.Time) *Metadata[SnapshotData] {
	return &Metadata[SnapshotData]{
		Signed: SnapshotData{
			Type:        RoleSnapshot,
			SpecVersion: SpecificationVersion,
			Version:     1,
			Expires:     expires,
			Meta:        map[string]MetaFiles{"targets.json": {Version: 1}},
		},
	}
}

// NewTargets returns a new, empty TargetsData.
func NewTargets(expires time.Time) *Metadata[TargetsData] {
	return &Metadata[TargetsData]{
		Signed: TargetsData{
			Type:        RoleTargets,
			SpecVersion: SpecificationVersion,
			Version:     1,
			Expires:     expires,
			Targets:     map[string]TargetFiles{},
		},
	}
}
