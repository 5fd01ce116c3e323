package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/startup"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/database"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/sitecraft-go/pkg/config"
)

func newSeedCommand() *cobra.Command {
	var (
		tenantID  string
		file      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import a site configuration from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := database.LoadSeedFile(file)
			if err != nil {
				return err
			}

			app, err := startup.Bootstrap(true)
			if err != nil {
				return err
			}
			defer startup.Shutdown(app)

			if !config.MultiTenant {
				if err := startup.EnsureDefaultTenant(app.TenantManager); err != nil {
					return err
				}
			}

			tenantCtx, err := app.TenantManager.GetContextByID(tenantID)
			if err != nil {
				return fmt.Errorf("failed to open tenant %s: %w", tenantID, err)
			}

			written, err := database.NewTableCreator().SeedSite(tenantCtx.Database.Conn, tenantID, site, overwrite)
			if err != nil {
				return err
			}
			if !written {
				fmt.Fprintf(cmd.OutOrStdout(), "tenant %s already has a site; use --overwrite to replace it\n", tenantID)
				return nil
			}
			app.CacheManager.InvalidateSite(tenantID)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded tenant %s from %s (%d keys)\n", tenantID, file, len(site.Record))
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", tenant.DefaultTenantID, "tenant id")
	cmd.Flags().StringVar(&file, "file", "", "YAML seed file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing site")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
