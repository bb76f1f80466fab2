package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gSchemes,
		Short:   "Show the active power scheme and its subgroups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			active, err := activeScheme()
			if err != nil {
				return fmt.Errorf("failed to get active scheme: %v", err)
			}

			cmd.Println(bold("Active scheme:"))
			cmd.Printf("  %s  %s\n", active.GUID, active.Name)
			if active.Description != "" {
				cmd.Printf("  %s\n", active.Description)
			}

			subgroups, err := listSubgroups(active.GUID)
			if err != nil {
				return fmt.Errorf("failed to list subgroups: %v", err)
			}

			for _, sub := range subgroups {
				cmd.Println()
				cmd.Printf("%s %s\n", bold(sub.Name), sub.GUID)

				settings, err := listSettings(active.GUID, sub.GUID)
				if err != nil {
					return fmt.Errorf("failed to list settings of %s: %v", sub.GUID, err)
				}
				for _, s := range settings {
					cmd.Printf("  %s  AC=%s DC=%s  %s\n", s.GUID, fmtIndex(s.ACIndex), fmtIndex(s.DCIndex), s.Name)
				}
			}

			return nil
		},
	}
}

func activeMarker() string {
	return color.New(color.Bold, color.FgGreen).Sprint("*")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
