package cli

import (
	"github.com/monocle-dev/taskhome/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := db.ConnectDatabase(app.cfg.Database.Driver, app.cfg.Database.DSN, app.logger)
			if err != nil {
				return err
			}

			if err := db.MigrateDatabase(gdb); err != nil {
				return err
			}

			app.logger.Info("Database migrated")
			return nil
		},
	}
}
