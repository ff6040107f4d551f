// Package mcpserver exposes route codec and namespace operations as MCP tools
// over stdio, so editors and agents can drive the portal without the console.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"portalctl/internal/api"
	"portalctl/internal/config"
	"portalctl/internal/orchestrator"
	"portalctl/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const subsystem = "MCPServer"

// AppLister lists the application roster of an environment.
type AppLister interface {
	List(ctx context.Context, env string) ([]api.App, error)
}

// NamespaceReader reads canonical namespaces.
type NamespaceReader interface {
	List(ctx context.Context, env, app string) ([]api.Namespace, error)
	Get(ctx context.Context, ref api.NamespaceRef) (api.Namespace, error)
}

// Updater applies a composite namespace update.
type Updater interface {
	Apply(ctx context.Context, ref api.NamespaceRef, prev api.Namespace, req orchestrator.UpdateRequest) (api.Namespace, error)
}

// Server owns the MCP server and the backends its tools call.
type Server struct {
	cfg        config.MCPConfig
	apps       AppLister
	namespaces NamespaceReader
	updater    Updater
	mcp        *server.MCPServer
}

// New creates a Server and registers all tools.
func New(cfg config.MCPConfig, version string, apps AppLister, namespaces NamespaceReader, updater Updater) *Server {
	name := cfg.Name
	if name == "" {
		name = config.DefaultMCPName
	}
	s := &Server{
		cfg:        cfg,
		apps:       apps,
		namespaces: namespaces,
		updater:    updater,
		mcp:        server.NewMCPServer(name, version, server.WithToolCapabilities(true)),
	}
	s.mcp.AddTools(s.Tools()...)
	return s
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	logging.Info(subsystem, "Serving %d tools over stdio (writes allowed: %v)", len(s.Tools()), s.cfg.AllowWrites)
	return server.ServeStdio(s.mcp)
}

// Tools returns the tool definitions with their handlers.
func (s *Server) Tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: routeDecodeTool(), Handler: s.handleRouteDecode},
		{Tool: routeEncodeTool(), Handler: s.handleRouteEncode},
		{Tool: appsListTool(), Handler: s.handleAppsList},
		{Tool: namespacesListTool(), Handler: s.handleNamespacesList},
		{Tool: namespaceGetTool(), Handler: s.handleNamespaceGet},
		{Tool: namespaceUpdateTool(), Handler: s.handleNamespaceUpdate},
	}
}

// jsonResult renders v as indented JSON text.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
