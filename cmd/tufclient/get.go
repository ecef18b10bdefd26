package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <target-path>",
		Short: "Resolve a target path through the delegation graph and print its descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration()
			if err != nil {
				return err
			}
			u, err := buildUpdater(cfg)
			if err != nil {
				return err
			}

			tf, role, err := u.GetTargetInfo(context.Background(), args[0])
			if err != nil {
				return err
			}
			if tf == nil {
				fmt.Printf("%s: no match\n", args[0])
				return nil
			}
			fmt.Printf("%s: role=%s length=%d\n", args[0], role, tf.Length)
			for algo, digest := range tf.Hashes {
				fmt.Printf("  %s=%x\n", algo, []byte(digest))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&serverOverride, "server", "s", "", "remote trust server base URL")
	return cmd
}
