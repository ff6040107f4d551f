package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"portalctl/internal/color"
	"portalctl/internal/router"
	"portalctl/internal/tui/controller"
	"portalctl/internal/tui/model"
	"portalctl/pkg/logging"
)

// runCLIMode bootstraps the router once and prints where the start location resolved to.
func runCLIMode(ctx context.Context, out io.Writer, services *Services) error {
	logging.Info("CLI", "Running in no-TUI mode.")

	if err := services.Router.Bootstrap(ctx); err != nil {
		logging.Error("CLI", err, "Bootstrap failed")
		return err
	}
	printSummary(out, services.Router.Snapshot(), services.Router.Location())
	return nil
}

func printSummary(out io.Writer, st router.State, location string) {
	fmt.Fprintf(out, "location:     %s\n", location)
	fmt.Fprintf(out, "tab:          %s\n", st.Tab)
	fmt.Fprintf(out, "user:         %s (%s)\n", st.User.Username, st.PortalMode)
	fmt.Fprintf(out, "config:       complete=%v\n", st.ConfigComplete)
	fmt.Fprintf(out, "environments: %s\n", strings.Join(st.EnvKeys, ", "))
	if st.ActiveEnv != "" {
		fmt.Fprintf(out, "active env:   %s (%d apps)\n", st.ActiveEnv, len(st.Apps))
	}
	if st.Err != nil {
		fmt.Fprintf(out, "error:        %v\n", st.Err)
	}
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, config *Config, services *Services) error {
	logging.Info("CLI", "Starting TUI mode...")

	color.Initialize(color.ResolveDarkMode(config.Portal.Console.ColorMode))

	// Switch logging to channel-based system for TUI integration
	logChan := logging.InitForTUI(logLevel(config))
	defer logging.CloseTUIChannel()

	var upd model.Updater
	if services.Orchestrator != nil {
		upd = services.Orchestrator
	}
	p := controller.NewProgram(ctx, services.Router, upd, config.Portal.Console, logChan)

	// Run the TUI until user exits
	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")

	return nil
}
