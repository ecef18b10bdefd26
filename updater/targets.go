package updater

import (
	"context"

	"github.com/docker/tuf-client/data"
	"github.com/docker/tuf-client/delegation"
	"github.com/docker/tuf-client/store"
	log "github.com/sirupsen/logrus"
)

// GetTargetInfo implements spec.md §4.4's get_target_info(path):
// Refresh first if it has not yet run, then resolve path through the
// delegation graph.
func (u *Updater) GetTargetInfo(ctx context.Context, targetPath string) (*data.TargetFiles, string, error) {
	if !u.refreshed {
		if err := u.Refresh(ctx); err != nil {
			return nil, "", err
		}
	}

	resolver := delegation.NewResolver(u.loadTargetsForWalk(ctx))
	resolver.MaxDelegations = u.cfg.MaxDelegations

	tf, role, found, err := resolver.Find(targetPath)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", nil
	}
	return &tf, role, nil
}

// loadTargetsForWalk returns a delegation.TargetsLoader that serves
// already-trusted Targets documents from the TrustedSet's in-memory
// cache (populated by Refresh for "targets", and by previous calls
// within the same walk for delegated roles), falling back to
// local-cache-then-remote for roles not yet loaded this session —
// spec.md §4.4 step 7: "Delegated targets are loaded lazily inside
// find_target, using the same local-then-remote pattern."
func (u *Updater) loadTargetsForWalk(ctx context.Context) delegation.TargetsLoader {
	return func(role, parent string) (*data.Metadata[data.TargetsData], error) {
		if already, ok := u.trusted.Targets[role]; ok {
			return already, nil
		}
		if role == data.RoleTargets {
			return nil, data.ErrRepositoryError{Msg: "top-level targets not yet loaded"}
		}
		return u.loadDelegatedTargets(ctx, role, parent)
	}
}

// loadDelegatedTargets implements the local-then-remote pattern for one
// delegated role, authenticating it against its (already-trusted)
// parent's declared keys/threshold via trustedset.UpdateDelegatedTargets.
func (u *Updater) loadDelegatedTargets(ctx context.Context, role, parent string) (*data.Metadata[data.TargetsData], error) {
	if raw, err := u.local.GetMetadata(role); err == nil {
		if tf, err := u.trusted.UpdateDelegatedTargets(role, raw, parent); err == nil {
			return tf, nil
		}
		log.Debugf("updater: cached delegated role %q invalid, fetching from remote", role)
	}

	meta, haveMeta := u.trusted.Snapshot.Signed.Meta[role+".json"]
	if !haveMeta {
		return nil, data.ErrRepositoryError{Msg: "snapshot has no entry for " + role + ".json"}
	}

	name := role + ".json"
	if u.trusted.Root.Signed.ConsistentSnapshot {
		name = versionedName(meta.Version, role, "json")
	}

	maxLength := u.cfg.TargetsMaxLength
	if meta.Length > 0 {
		maxLength = meta.Length
	}

	raw, err := u.fetchBounded(ctx, metaURL(u.repo.MetadataBaseURL, name), maxLength)
	if err != nil {
		return nil, data.ErrRuntimeError{Msg: "fetching delegated role " + role + ": " + err.Error()}
	}

	tf, err := u.trusted.UpdateDelegatedTargets(role, raw, parent)
	if err != nil {
		return nil, err
	}
	if err := u.local.SetMetadata(role, raw); err != nil {
		return nil, store.ErrPersistError{Path: role, Err: err}
	}
	return tf, nil
}
