// Package config defines this client's configuration surface: the
// tunables spec.md §6 names (root-rotation/delegation budgets, bounded
// fetch ceilings, fetch timeout) plus the repository locations a running
// client needs (trust server base URL, local metadata/targets cache
// directories).
//
// Grounded on docker-notary/config/config.go for the
// Configuration-struct-plus-Load(io.Reader) shape; generalized from
// docker-notary's namespaced server/trust-service sections to this
// module's own updater-tunables section, and adapted to load from YAML
// via spf13/viper (as docker-notary/cmd/notary/main.go's parseConfig
// does) rather than config.go's bare encoding/json, since the CLI
// (cmd/tufclient) is the intended entry point for this configuration.
package config

import (
	"io"
	"time"

	"github.com/spf13/viper"
)

// Configuration is the top-level object every other client setting is
// namespaced under.
type Configuration struct {
	Repository RepositoryConf `mapstructure:"repository"`
	Updater    UpdaterConf    `mapstructure:"updater"`
}

// RepositoryConf names where the trust server lives and where this
// client keeps its local cache.
type RepositoryConf struct {
	MetadataBaseURL string `mapstructure:"metadata_base_url"`
	TargetsBaseURL  string `mapstructure:"targets_base_url"`
	MetadataDir     string `mapstructure:"metadata_dir"`
	TargetsDir      string `mapstructure:"targets_dir"`
}

// UpdaterConf holds spec.md §6's recognized updater tunables, each
// defaulted by DefaultUpdaterConf. Whether a repository uses consistent
// snapshots is not a client tunable: it is authoritative wire data
// (root.json's consistent_snapshot field, spec.md §3), read from the
// trusted Root at refresh time rather than configured here.
type UpdaterConf struct {
	MaxRootRotations      int           `mapstructure:"max_root_rotations"`
	MaxDelegations        int           `mapstructure:"max_delegations"`
	RootMaxLength         int64         `mapstructure:"root_max_length"`
	TimestampMaxLength    int64         `mapstructure:"timestamp_max_length"`
	SnapshotMaxLength     int64         `mapstructure:"snapshot_max_length"`
	TargetsMaxLength      int64         `mapstructure:"targets_max_length"`
	FetchTimeout          time.Duration `mapstructure:"fetch_timeout"`
	PrefixTargetsWithHash bool          `mapstructure:"prefix_targets_with_hash"`
}

// DefaultUpdaterConf returns spec.md §6's documented defaults.
func DefaultUpdaterConf() UpdaterConf {
	return UpdaterConf{
		MaxRootRotations:      256,
		MaxDelegations:        32,
		RootMaxLength:         512000,
		TimestampMaxLength:    16384,
		SnapshotMaxLength:     2000000,
		TargetsMaxLength:      5000000,
		FetchTimeout:          15 * time.Second,
		PrefixTargetsWithHash: true,
	}
}

// Load reads a YAML configuration document from data, defaulting any
// UpdaterConf field left unset to DefaultUpdaterConf's value.
func Load(data io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(data); err != nil {
		return nil, err
	}

	conf := &Configuration{Updater: DefaultUpdaterConf()}
	if err := v.Unmarshal(conf); err != nil {
		return nil, err
	}
	return conf, nil
}
