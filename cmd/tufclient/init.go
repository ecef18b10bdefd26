package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docker/tuf-client/data"
	"github.com/docker/tuf-client/store"
	"github.com/spf13/cobra"
)

// newInitCommand seeds a trust directory with an initial, trusted
// root.json, the one bootstrap input spec.md §4.4 says cannot be
// fetched: "the client cannot obtain its first Root from the repository
// it does not yet trust." Mirrors docker-notary's "tuf init" in spirit,
// but here the trust anchor is supplied directly rather than generated.
func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init <root-file>",
		Short: "Seed the local trust directory with an initial trusted root.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			root, err := data.Parse[data.RootData](raw)
			if err != nil {
				return err
			}
			if err := root.Signed.ValidateRoot(); err != nil {
				return err
			}

			local, err := store.NewLocalStore(filepath.Join(trustDir, "metadata"), filepath.Join(trustDir, "targets"))
			if err != nil {
				return err
			}
			if err := local.SetMetadata(data.RoleRoot, raw); err != nil {
				return err
			}
			fmt.Printf("seeded %s with root version %d\n", trustDir, root.Signed.Version)
			return nil
		},
	}
}
