package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/application/startup"
	"github.com/AtRiskMedia/sitecraft-go/internal/domain/entities/website"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/tenant"
	"github.com/AtRiskMedia/sitecraft-go/internal/presentation/templates"
)

func newRenderCommand() *cobra.Command {
	var (
		tenantID  string
		asJSON    bool
		consented bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write a tenant's composed page to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := startup.Bootstrap(true)
			if err != nil {
				return err
			}
			defer startup.Shutdown(app)

			tenantCtx, err := app.TenantManager.GetContextByID(tenantID)
			if err != nil {
				return fmt.Errorf("failed to open tenant %s: %w", tenantID, err)
			}

			opts := services.BuildOptions{
				Consent:     website.DefaultConsent(),
				BannerState: website.BannerShown,
				Preview:     true,
			}
			if consented {
				opts.Consent = website.AllConsent()
				opts.BannerState = website.BannerHidden
			}

			page, err := app.PageService.Build(tenantCtx, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(page)
			}
			return templates.NewPageRenderer().Render(out, page)
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", tenant.DefaultTenantID, "tenant id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page model instead of HTML")
	cmd.Flags().BoolVar(&consented, "consented", false, "render as a visitor who accepted all cookies")
	return cmd
}
