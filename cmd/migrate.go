package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/migrations"
)

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.Apply(context.Background(), db, log)
			if err != nil {
				return err
			}

			log.Info("Migrations applied: %d", applied)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List embedded migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := migrations.List()
			if err != nil {
				return err
			}
			for _, m := range list {
				fmt.Fprintln(cmd.OutOrStdout(), m.Version)
			}
			return nil
		},
	})

	return cmd
}
