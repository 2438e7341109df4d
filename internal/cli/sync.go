package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSyncCmd(app *App) *cobra.Command {
	var tenant string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the Slack member list into the people directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			// single-tenant rows are stored unscoped, so a tenant id would
			// write a directory no view reads
			if tenant != "" && !app.cfg.Tenancy.MultiTenant {
				return fmt.Errorf("--tenant %q requires tenancy.multi_tenant", tenant)
			}

			c, err := app.build()
			if err != nil {
				return err
			}
			defer c.scheduler.Stop()

			tenants := []string{tenant}
			if tenant == "" {
				if tenants, err = c.tenants(app.cfg.Tenancy.MultiTenant)(cmd.Context()); err != nil {
					return err
				}
			}

			for _, id := range tenants {
				n, err := c.syncer.Sync(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("sync tenant %q: %w", id, err)
				}

				app.logger.Info("Directory synced", zap.String("tenant_id", id), zap.Int("users", n))
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", displayTenant(id), n)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "Workspace id to sync (default: all installed workspaces)")

	return cmd
}

func displayTenant(id string) string {
	if id == "" {
		return "default"
	}
	return id
}
