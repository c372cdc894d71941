package main

import (
	"github.com/deppfellow/crm/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "crm",
		Short:         "Users CRUD API",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"dotenv override file (default $"+config.OverrideFileEnv+" or "+config.DefaultOverrideFile+")")

	cmd.AddCommand(newServeCommand(opts), newPingCommand(opts))

	return cmd
}
