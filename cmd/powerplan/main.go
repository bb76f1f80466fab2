package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/poti-san/powpowerman/pkg/client"
)

var (
	logLevel   = "info"
	configPath = "powpowermand.json"
	remoteAddr = ""
)

var (
	gSchemes  = "Schemes:"
	gSettings = "Settings:"
	gDaemon   = "Daemon:"

	commandGroups = []string{
		gSchemes,
		gSettings,
		gDaemon,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: powpowerman daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running at the --remote address?")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Changing power settings may require an elevated prompt")
		fmt.Fprintln(os.Stderr, "  - A remote daemon may be running in read-only mode")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "powerplan",
		Short: "powerplan reads and changes Windows power schemes",
		Long: `powerplan reads and changes Windows power schemes, their subgroups
(display, sleep, processor, ...) and individual settings.

By default it talks to the local OS power store. With --remote it talks
to a powpowerman daemon instead.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "daemon config file path")
	globalFlags.StringVar(&remoteAddr, "remote", "", "address of a powpowerman daemon to talk to instead of the local OS")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewSchemesCommand(),
		NewStatusCommand(),
		NewActivateCommand(),
		NewSettingCommand(),
		NewBrightnessCommand(),
		NewServeCommand(),
		NewVersionCommand(),
	)

	return cmd
}
