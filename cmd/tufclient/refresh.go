package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the local trusted metadata cache against the remote repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration()
			if err != nil {
				return err
			}
			u, err := buildUpdater(cfg)
			if err != nil {
				return err
			}
			if err := u.Refresh(context.Background()); err != nil {
				return err
			}
			fmt.Println("refresh complete")
			return nil
		},
	}
	cmd.Flags().StringVarP(&serverOverride, "server", "s", "", "remote trust server base URL")
	return cmd
}
