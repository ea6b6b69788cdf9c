package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cardroom/tableview/pkg/config"
)

const version = "0.3.0"

func rootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "tableview",
		Short: "Terminal client for the hold'em table server",
		Long: `tableview connects to a hold'em table server, follows the live
event stream and lets you play from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("server-url", "", "WebSocket URL of the table server")
	flags.String("ready-url", "", "HTTP endpoint for the ready toggle")
	flags.String("name", "", "display name (generated when empty)")
	flags.String("debug-listen", "", "local debug HTTP listen address (disabled when empty)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("no-input", false, "follow the table without prompting for actions")
	flags.Int64("raise-step", 0, "raise selector step in chips (0 keeps the default)")
	bindFlags(v, flags)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tableview "+version)
		},
	})

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for _, name := range []string{"server-url", "ready-url", "name", "debug-listen", "log-level", "no-input", "raise-step"} {
		key := viperKey(name)
		if f := flags.Lookup(name); f != nil {
			v.BindPFlag(key, f)
		}
	}
}

func viperKey(flag string) string {
	key := ""
	for _, r := range flag {
		if r == '-' {
			key += "_"
		} else {
			key += string(r)
		}
	}
	return key
}
