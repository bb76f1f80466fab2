package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewSchemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "schemes",
		GroupID: gSchemes,
		Short:   "List all power schemes",
		Long:    `List every power scheme known to the OS, marking the active one.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemes, err := listSchemes()
			if err != nil {
				return fmt.Errorf("failed to list schemes: %v", err)
			}

			for _, s := range schemes {
				marker := " "
				if s.Active {
					marker = activeMarker()
				}
				cmd.Printf("%s %s  %s\n", marker, s.GUID, s.Name)
				if s.Description != "" {
					cmd.Printf("    %s\n", s.Description)
				}
			}

			return nil
		},
	}
}
