package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by release tooling via -ldflags; left as "dev" for
// local builds, the same pattern docker-notary's version package uses.
var Version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tufclient",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tufclient\n Version: %s\n", Version)
		},
	}
}
