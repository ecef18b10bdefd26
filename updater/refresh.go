package updater

import (
	"context"
	"errors"

	"github.com/docker/tuf-client/data"
	"github.com/docker/tuf-client/store"
	log "github.com/sirupsen/logrus"
)

// Refresh implements spec.md §4.4's refresh(): rotate Root forward as
// far as the remote allows, verify Root is not expired, then load
// Timestamp, Snapshot, and the top-level Targets in that order,
// persisting each newly-trusted document to the local cache as it
// commits.
func (u *Updater) Refresh(ctx context.Context) error {
	if err := u.rotateRoot(ctx); err != nil {
		return err
	}
	if u.trusted.RootExpired() {
		return data.ErrExpiredMetadata{Role: data.RoleRoot, Expires: u.trusted.Root.Signed.Expires}
	}

	if err := u.refreshTimestamp(ctx); err != nil {
		return err
	}
	if err := u.refreshSnapshot(ctx); err != nil {
		return err
	}
	if err := u.refreshTopLevelTargets(ctx); err != nil {
		return err
	}

	u.refreshed = true
	return nil
}

// rotateRoot fetches 1.root.json, 2.root.json, ... starting from the
// currently trusted version+1, up to MaxRootRotations files, stopping
// silently the moment the fetch fails (network error, 404, or parse
// failure): spec.md §4.4 step 2, "on network or parse error, break the
// loop silently (end of chain)."
func (u *Updater) rotateRoot(ctx context.Context) error {
	for i := 0; i < u.cfg.MaxRootRotations; i++ {
		nextVersion := u.trusted.Root.Signed.Version + 1
		url := metaURL(u.repo.MetadataBaseURL, fmtVersionedRoot(nextVersion))

		raw, err := u.fetchBounded(ctx, url, u.cfg.RootMaxLength)
		if err != nil {
			log.Debugf("updater: root rotation stopped at version %d: %v", nextVersion, err)
			break
		}

		if _, err := u.trusted.UpdateRoot(raw); err != nil {
			log.Debugf("updater: root rotation stopped at version %d: %v", nextVersion, err)
			break
		}

		if err := u.local.SetMetadata(data.RoleRoot, raw); err != nil {
			return store.ErrPersistError{Path: data.RoleRoot, Err: err}
		}
	}
	return nil
}

func fmtVersionedRoot(v int64) string {
	return versionedName(v, data.RoleRoot, "json")
}

// refreshTimestamp always fetches a fresh timestamp.json (it is never
// versioned and never cached-then-skipped): spec.md §4.4 step 4. An
// EqualVersion result is absorbed silently; any other error is fatal.
func (u *Updater) refreshTimestamp(ctx context.Context) error {
	url := metaURL(u.repo.MetadataBaseURL, "timestamp.json")
	raw, err := u.fetchBounded(ctx, url, u.cfg.TimestampMaxLength)
	if err != nil {
		return data.ErrRuntimeError{Msg: "fetching timestamp: " + err.Error()}
	}

	_, err = u.trusted.UpdateTimestamp(raw)
	if err != nil {
		var equalVersion data.ErrEqualVersion
		if errors.As(err, &equalVersion) {
			log.Debugf("updater: timestamp unchanged at version %d", equalVersion.Version)
			return nil
		}
		return err
	}

	if err := u.local.SetMetadata(data.RoleTimestamp, raw); err != nil {
		return store.ErrPersistError{Path: data.RoleTimestamp, Err: err}
	}
	return nil
}

// refreshSnapshot tries the local cache first (trustedLocal=true, no
// hash/length re-check), falling back to a remote fetch named and capped
// per spec.md §4.4 step 5.
func (u *Updater) refreshSnapshot(ctx context.Context) error {
	if raw, err := u.local.GetMetadata(data.RoleSnapshot); err == nil {
		if _, err := u.trusted.UpdateSnapshot(raw, true); err == nil {
			return nil
		}
		log.Debugf("updater: cached snapshot invalid, fetching from remote")
	}

	snapshotMeta, haveMeta := u.trusted.Timestamp.Signed.Meta["snapshot.json"]

	name := "snapshot.json"
	if u.trusted.Root.Signed.ConsistentSnapshot {
		v := int64(1)
		if haveMeta {
			v = snapshotMeta.Version
		}
		name = versionedName(v, data.RoleSnapshot, "json")
	}

	maxLength := u.cfg.SnapshotMaxLength
	if haveMeta && snapshotMeta.Length > 0 {
		maxLength = snapshotMeta.Length
	}

	raw, err := u.fetchBounded(ctx, metaURL(u.repo.MetadataBaseURL, name), maxLength)
	if err != nil {
		return data.ErrRuntimeError{Msg: "fetching snapshot: " + err.Error()}
	}

	if _, err := u.trusted.UpdateSnapshot(raw, false); err != nil {
		return err
	}
	if err := u.local.SetMetadata(data.RoleSnapshot, raw); err != nil {
		return store.ErrPersistError{Path: data.RoleSnapshot, Err: err}
	}
	return nil
}

// refreshTopLevelTargets tries the local cache first, falling back to a
// remote fetch named and capped per spec.md §4.4 step 6.
func (u *Updater) refreshTopLevelTargets(ctx context.Context) error {
	if raw, err := u.local.GetMetadata(data.RoleTargets); err == nil {
		if _, err := u.trusted.UpdateTargets(raw); err == nil {
			return nil
		}
		log.Debugf("updater: cached targets invalid, fetching from remote")
	}

	meta, haveMeta := u.trusted.Snapshot.Signed.Meta[data.RoleTargets+".json"]
	if !haveMeta {
		return data.ErrRepositoryError{Msg: "snapshot has no entry for targets.json"}
	}

	name := data.RoleTargets + ".json"
	if u.trusted.Root.Signed.ConsistentSnapshot {
		name = versionedName(meta.Version, data.RoleTargets, "json")
	}

	maxLength := u.cfg.TargetsMaxLength
	if meta.Length > 0 {
		maxLength = meta.Length
	}

	raw, err := u.fetchBounded(ctx, metaURL(u.repo.MetadataBaseURL, name), maxLength)
	if err != nil {
		return data.ErrRuntimeError{Msg: "fetching targets: " + err.Error()}
	}

	if _, err := u.trusted.UpdateTargets(raw); err != nil {
		return err
	}
	if err := u.local.SetMetadata(data.RoleTargets, raw); err != nil {
		return store.ErrPersistError{Path: data.RoleTargets, Err: err}
	}
	return nil
}
