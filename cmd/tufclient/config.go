package main

import (
	"os"
	"path/filepath"

	"github.com/docker/tuf-client/config"
	"github.com/docker/tuf-client/store"
	"github.com/docker/tuf-client/updater"
)

// loadConfiguration reads the config file resolved by parseConfig, if one
// exists, falling back to the built-in UpdaterConf defaults when it is
// absent — matching spec.md §6's "configuration is optional; every
// tunable has a documented default."
func loadConfiguration() (*config.Configuration, error) {
	path := mainViper.ConfigFileUsed()
	if path == "" {
		return &config.Configuration{Updater: config.DefaultUpdaterConf()}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return config.Load(f)
}

// buildUpdater wires an updater.Updater from the resolved configuration
// and trust directory, defaulting the local cache locations to the trust
// directory when the config file leaves them blank. A --server override,
// when given, replaces the metadata base URL and also fills in the
// targets base URL if the config file leaves that blank.
func buildUpdater(cfg *config.Configuration) (*updater.Updater, error) {
	repo := cfg.Repository
	if repo.MetadataDir == "" {
		repo.MetadataDir = filepath.Join(trustDir, "metadata")
	}
	if repo.TargetsDir == "" {
		repo.TargetsDir = filepath.Join(trustDir, "targets")
	}
	if serverOverride != "" {
		repo.MetadataBaseURL = serverOverride
		if repo.TargetsBaseURL == "" {
			repo.TargetsBaseURL = serverOverride
		}
	}

	local, err := store.NewLocalStore(repo.MetadataDir, repo.TargetsDir)
	if err != nil {
		return nil, err
	}
	remote := store.NewHTTPFetcher(cfg.Updater.FetchTimeout)

	return updater.New(repo, cfg.Updater, local, remote)
}
