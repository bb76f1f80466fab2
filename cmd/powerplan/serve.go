package main

import (
	"github.com/spf13/cobra"

	"github.com/poti-san/powpowerman/pkg/daemon"
)

func NewServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: gDaemon,
		Short:   "Run the powpowerman daemon in the foreground",
		Long: `Run the powpowerman daemon in the foreground.

The daemon exposes the local power schemes over HTTP so that remote
powerplan invocations (--remote) can read and change them.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return daemon.Run(configPath, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides the config file)")

	return cmd
}
