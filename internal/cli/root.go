// Package cli implements the billsplitter command line.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/billsplitter/internal/config"
	"github.com/mmynk/billsplitter/pkg/logging"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// app carries state shared by subcommands. cfg is loaded before any
// subcommand runs.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "billsplitter",
		Short: "Split shared expenses and settle up with as few payments as possible",
		Long: "billsplitter computes each participant's net balance from a list of shared " +
			"expenses and suggests debtor -> creditor payments that settle every balance.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (TOML, YAML or JSON)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("tolerance", config.DefaultTolerance(), "amounts at or below this count as settled")
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyTolerance, flags.Lookup("tolerance"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(a),
		newSettleCmd(a),
		newTokenCmd(a),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(Version + "\n"))
			return err
		},
	}
}
