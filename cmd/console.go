package cmd

import (
	"context"
	"fmt"

	"portalctl/internal/app"

	"github.com/spf13/cobra"
)

var consoleNoTUI bool

func newConsoleCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "console [location]",
		Short: "Open the interactive provisioning console",
		Long: `Opens the terminal console at the given location, or at console.startURL.

Locations are the portal's own deep links, for example:

  portalctl console '/apps/payments/ns_details?env=DEV&ns=pay-api'

With --no-tui the console bootstraps once, prints where the location
resolved to and exits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConsole,
	}
	c.Flags().BoolVar(&consoleNoTUI, "no-tui", false, "Resolve the location, print a summary and exit")
	return c
}

func runConsole(cmd *cobra.Command, args []string) error {
	startURL := ""
	if len(args) == 1 {
		startURL = args[0]
	}

	application, err := app.NewApplication(app.NewConfig(consoleNoTUI, debugMode, configPath, startURL))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}
