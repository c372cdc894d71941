package main

import (
	"fmt"

	"github.com/deppfellow/crm/internal/config"
	"github.com/deppfellow/crm/internal/database"
	"github.com/deppfellow/crm/internal/logger"
	"github.com/spf13/cobra"
)

func newPingCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the database connection and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.NewLogger(cfg)

			db, err := database.New(cfg, &log, nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "database %s at %s:%d is reachable\n",
				cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)

			return db.Close()
		},
	}
}
