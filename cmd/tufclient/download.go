package main

import (
	"context"
	"fmt"
	"os"

	"github.com/docker/tuf-client/data"
	"github.com/spf13/cobra"
)

func newDownloadCommand() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "download <target-path>",
		Short: "Resolve and download a target, verifying it against trusted metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetPath := args[0]
			cfg, err := loadConfiguration()
			if err != nil {
				return err
			}
			u, err := buildUpdater(cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			tf, _, err := u.GetTargetInfo(ctx, targetPath)
			if err != nil {
				return err
			}
			if tf == nil {
				return data.ErrRepositoryError{Msg: "no such target: " + targetPath}
			}

			if content, ok := u.FindCachedTarget(targetPath, *tf); ok {
				return writeOut(outPath, targetPath, content)
			}

			content, err := u.DownloadTarget(ctx, targetPath, *tf, serverOverride)
			if err != nil {
				return err
			}
			return writeOut(outPath, targetPath, content)
		},
	}
	cmd.Flags().StringVarP(&serverOverride, "server", "s", "", "remote targets server base URL")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write target content to this path instead of stdout")
	return cmd
}

func writeOut(outPath, targetPath string, content []byte) error {
	if outPath == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(outPath, content, 0o644); err != nil {
		return err
	}
	fmt.Printf("%s: wrote %d bytes to %s\n", targetPath, len(content), outPath)
	return nil
}
