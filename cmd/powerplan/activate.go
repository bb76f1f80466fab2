package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "activate scheme-guid",
		GroupID: gSchemes,
		Short:   "Make a power scheme the active one",
		Long: `Make a power scheme the active one.

The argument is the scheme GUID as printed by "powerplan schemes", e.g.
{381b4222-f694-41f0-9685-ff5bb260df2e}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := activateScheme(args[0]); err != nil {
				return fmt.Errorf("failed to activate scheme: %v", err)
			}

			logrus.Infof("successfully activated scheme %s", args[0])

			return nil
		},
	}
}
