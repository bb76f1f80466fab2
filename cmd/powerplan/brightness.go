package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/poti-san/powpowerman/pkg/powerscheme"
)

func NewBrightnessCommand() *cobra.Command {
	var schemeFlag string
	var onBattery bool

	cmd := &cobra.Command{
		Use:     "brightness [percent]",
		GroupID: gSettings,
		Short:   "Get or set the display brightness of a power scheme",
		Long: `Get or set the display brightness of a power scheme.

Without an argument, prints the current brightness. With an argument
(0-100), sets it. By default the AC value of the active scheme is used;
pass --dc to work with the battery value instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := resolveSchemeGUID(schemeFlag)
			if err != nil {
				return fmt.Errorf("failed to resolve scheme: %v", err)
			}

			subgroup := powerscheme.FormatGUID(powerscheme.SubgroupDisplay)
			setting := powerscheme.FormatGUID(powerscheme.SettingDisplayBrightness)

			if len(args) == 0 {
				info, err := getSettingInfo(scheme, subgroup, setting)
				if err != nil {
					return fmt.Errorf("failed to get brightness: %v", err)
				}
				if onBattery {
					cmd.Printf("%s%%\n", fmtIndex(info.DCIndex))
				} else {
					cmd.Printf("%s%%\n", fmtIndex(info.ACIndex))
				}
				return nil
			}

			percent, err := parseUint32Arg(args, 0, "brightness")
			if err != nil {
				return err
			}
			if percent > 100 {
				return fmt.Errorf("brightness must be between 0 and 100")
			}

			var ac, dc *uint32
			if onBattery {
				dc = &percent
			} else {
				ac = &percent
			}
			if _, err := applySetting(scheme, subgroup, setting, ac, dc); err != nil {
				return fmt.Errorf("failed to set brightness: %v", err)
			}

			logrus.Infof("successfully set brightness to %d%%", percent)

			return nil
		},
	}

	cmd.Flags().StringVar(&schemeFlag, "scheme", "", "scheme GUID (defaults to the active scheme)")
	cmd.Flags().BoolVar(&onBattery, "dc", false, "use the DC (battery) value instead of AC")

	return cmd
}
