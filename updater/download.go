package updater

import (
	"context"
	"encoding/hex"
	"path"

	"github.com/docker/tuf-client/data"
	"github.com/docker/tuf-client/store"
)

// DownloadTarget implements spec.md §4.4's download_target(descriptor,
// out_path?, base_url?): fetch the target's bytes with an exact length
// cap (not a ceiling — a short or long read is equally invalid), verify
// every declared hash, and persist to the local target cache.
//
// baseURL overrides the configured TargetsBaseURL when non-empty,
// matching the spec's "base_url?" optional override.
func (u *Updater) DownloadTarget(ctx context.Context, targetPath string, descriptor data.TargetFiles, baseURL string) ([]byte, error) {
	base := u.repo.TargetsBaseURL
	if baseURL != "" {
		base = baseURL
	}
	if base == "" {
		return nil, data.ErrValueError{Msg: "download_target requires a configured or explicit base URL"}
	}

	url := metaURL(base, targetFileURLPath(targetPath, descriptor, u.trusted.Root.Signed.ConsistentSnapshot && u.cfg.PrefixTargetsWithHash))

	raw, err := u.fetchBounded(ctx, url, descriptor.Length)
	if err != nil {
		return nil, data.ErrRuntimeError{Msg: "fetching target " + targetPath + ": " + err.Error()}
	}

	if err := descriptor.VerifyLengthHashes(raw); err != nil {
		return nil, err
	}

	if err := u.local.SetTarget(targetPath, raw); err != nil {
		return nil, store.ErrPersistError{Path: targetPath, Err: err}
	}
	return raw, nil
}

// targetFileURLPath computes a target's URL path component, optionally
// hash-prefixing the basename under consistent snapshot (spec.md §6's
// URL layout note): "<dir>/<hash>.<basename>".
func targetFileURLPath(targetPath string, descriptor data.TargetFiles, hashPrefix bool) string {
	if !hashPrefix || len(descriptor.Hashes) == 0 {
		return targetPath
	}

	var firstHash string
	for _, algo := range sortedHashAlgos(descriptor.Hashes) {
		firstHash = hex.EncodeToString(descriptor.Hashes[algo])
		break
	}
	if firstHash == "" {
		return targetPath
	}

	dir, base := path.Split(targetPath)
	return dir + firstHash + "." + base
}

func sortedHashAlgos(hashes data.Hashes) []string {
	algos := make([]string, 0, len(hashes))
	for algo := range hashes {
		algos = append(algos, algo)
	}
	// A stable choice of "first" hash value matters for reproducible
	// URLs across runs; lexicographic order over algorithm name is an
	// arbitrary but deterministic tie-break.
	for i := 1; i < len(algos); i++ {
		for j := i; j > 0 && algos[j-1] > algos[j]; j-- {
			algos[j-1], algos[j] = algos[j], algos[j-1]
		}
	}
	return algos
}
