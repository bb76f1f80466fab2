package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewSettingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "setting",
		GroupID: gSettings,
		Short:   "Read and change individual power settings",
		Long: `Read and change individual power settings.

Settings live inside a subgroup of a scheme and carry two value
indices, one used on AC power and one on DC (battery) power. Unless
--scheme is given, the active scheme is used.`,
	}

	var schemeFlag string
	cmd.PersistentFlags().StringVar(&schemeFlag, "scheme", "", "scheme GUID (defaults to the active scheme)")

	listCmd := &cobra.Command{
		Use:   "list subgroup-guid",
		Short: "List all settings of a subgroup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := resolveSchemeGUID(schemeFlag)
			if err != nil {
				return fmt.Errorf("failed to resolve scheme: %v", err)
			}

			settings, err := listSettings(scheme, args[0])
			if err != nil {
				return fmt.Errorf("failed to list settings: %v", err)
			}

			for _, s := range settings {
				cmd.Printf("%s  AC=%s DC=%s  %s\n", s.GUID, fmtIndex(s.ACIndex), fmtIndex(s.DCIndex), s.Name)
			}

			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get subgroup-guid setting-guid",
		Short: "Read the AC and DC value indices of a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := resolveSchemeGUID(schemeFlag)
			if err != nil {
				return fmt.Errorf("failed to resolve scheme: %v", err)
			}

			setting, err := getSettingInfo(scheme, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get setting: %v", err)
			}

			cmd.Printf("%s  %s\n", setting.GUID, setting.Name)
			cmd.Printf("  AC: %s\n", fmtIndex(setting.ACIndex))
			cmd.Printf("  DC: %s\n", fmtIndex(setting.DCIndex))

			return nil
		},
	}

	var acValue, dcValue uint32
	setCmd := &cobra.Command{
		Use:   "set subgroup-guid setting-guid",
		Short: "Change the AC and/or DC value index of a setting",
		Long: `Change the AC and/or DC value index of a setting.

At least one of --ac and --dc must be given. If the scheme being
changed is the active one, the change takes effect immediately.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("ac") && !cmd.Flags().Changed("dc") {
				return fmt.Errorf("at least one of --ac and --dc is required")
			}

			scheme, err := resolveSchemeGUID(schemeFlag)
			if err != nil {
				return fmt.Errorf("failed to resolve scheme: %v", err)
			}

			var ac, dc *uint32
			if cmd.Flags().Changed("ac") {
				ac = &acValue
			}
			if cmd.Flags().Changed("dc") {
				dc = &dcValue
			}

			setting, err := applySetting(scheme, args[0], args[1], ac, dc)
			if err != nil {
				return fmt.Errorf("failed to apply setting: %v", err)
			}

			logrus.Infof("successfully set %s to AC=%s DC=%s", setting.GUID, fmtIndex(setting.ACIndex), fmtIndex(setting.DCIndex))

			return nil
		},
	}
	setCmd.Flags().Uint32Var(&acValue, "ac", 0, "value index to use on AC power")
	setCmd.Flags().Uint32Var(&dcValue, "dc", 0, "value index to use on DC (battery) power")

	cmd.AddCommand(listCmd, getCmd, setCmd)

	return cmd
}
