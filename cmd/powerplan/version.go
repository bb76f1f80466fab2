package main

import (
	"github.com/spf13/cobra"

	"github.com/poti-san/powpowerman/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s (%s)\n", version.Version, version.GitCommit)
		},
	}
}
