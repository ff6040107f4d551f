package cmd

import (
	"os"

	"portalctl/internal/api"
	"portalctl/internal/app"
	"portalctl/internal/cli"
	"portalctl/internal/config"
	"portalctl/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	// configPath replaces the layered config lookup with one file.
	configPath string
	// debugMode enables debug logging on stderr.
	debugMode bool
	// outputFormat is table, json or yaml.
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Browse and update provisioning portal namespaces from the terminal",
	Long: `portalctl is a terminal client for the namespace provisioning portal.

It opens an interactive console whose locations match the portal's deep links,
reads applications, clusters and namespaces per environment, applies composite
namespace updates, and serves the same operations as MCP tools.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed backend calls)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "portalctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/portalctl/config.yaml then ./.portalctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(cli.OutputFormatTable), "Output format: table, json or yaml")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newConsoleCmd())
	rootCmd.AddCommand(newRouteCmd())
	rootCmd.AddCommand(newAppsCmd())
	rootCmd.AddCommand(newClustersCmd())
	rootCmd.AddCommand(newNamespaceCmd())
	rootCmd.AddCommand(newServeCmd())
}

// loadCLIConfig starts stderr logging and loads the configuration for a one-shot command.
func loadCLIConfig(cmd *cobra.Command) (config.PortalctlConfig, error) {
	level := logging.LevelWarn
	if debugMode {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	cfg, err := app.LoadPortalConfig(app.NewConfig(true, debugMode, configPath, ""))
	if err != nil {
		return config.PortalctlConfig{}, err
	}
	if !debugMode {
		logging.InitForCLI(maxLevel(logging.ParseLevel(cfg.Logging.Level), logging.LevelWarn), cmd.ErrOrStderr())
	}
	return cfg, nil
}

// newGateways loads configuration and builds the backend gateways.
func newGateways(cmd *cobra.Command) (*api.Gateways, config.PortalctlConfig, error) {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	return api.NewGateways(api.NewClient(cfg.API, nil)), cfg, nil
}

func newPrinter(cmd *cobra.Command) (*cli.Printer, error) {
	format, err := cli.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return cli.NewPrinter(format, cmd.OutOrStdout()), nil
}

func maxLevel(a, b logging.LogLevel) logging.LogLevel {
	if a > b {
		return a
	}
	return b
}
