package data

import "time"

// IsExpired reports whether now is at or after this Root's expires
// instant (spec.md: "is_expired(now) returns now >= expires").
func (r RootData) IsExpired(now time.Time) bool { return !now.Before(r.Expires) }

// IsExpired reports whether now is at or after this Timestamp's expires
// instant.
func (t TimestampData) IsExpired(now time.Time) bool { return !now.Before(t.Expires) }

// IsExpired reports whether now is at or after this Snapshot's expires
// instant.
func (s SnapshotData) IsExpired(now time.Time) bool { return !now.Before(s.Expires) }

// IsExpired reports whether now is at or after this Targets document's
// expires instant.
func (t TargetsData) IsExpired(now time.Time) bool { return !now.Before(t.Expires) }
