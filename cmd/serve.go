package cmd

import (
	"portalctl/internal/mcpserver"
	"portalctl/internal/orchestrator"
	"portalctl/pkg/logging"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve portal operations as MCP tools over stdio",
		Long: `Starts an MCP server on stdin/stdout exposing route_decode, route_encode,
apps_list, namespaces_list, namespace_get and namespace_update.

namespace_update only writes when mcp.allowWrites is set in the configuration;
otherwise it supports dry runs only. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cfg, err := newGateways(cmd)
			if err != nil {
				return err
			}
			version := rootCmd.Version
			if version == "" {
				version = "dev"
			}
			s := mcpserver.New(cfg.MCP, version, gw.Apps, gw.Namespaces,
				orchestrator.New(orchestrator.WritersFrom(gw), nil, nil))
			if err := s.ServeStdio(); err != nil {
				logging.Error("MCPServer", err, "stdio server stopped")
				return err
			}
			return nil
		},
	}
}
