package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portalctl/internal/api"
	"portalctl/internal/orchestrator"
	"portalctl/internal/route"
	"portalctl/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"
)

func routeDecodeTool() mcp.Tool {
	return mcp.NewTool("route_decode",
		mcp.WithDescription("Decode a console location (path and query) into a route"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Location such as /apps/payments/ns_details?env=DEV&ns=pay-api"),
		),
	)
}

func routeEncodeTool() mcp.Tool {
	return mcp.NewTool("route_encode",
		mcp.WithDescription("Encode a route into its canonical console location"),
		mcp.WithString("env", mcp.Description("Environment key")),
		mcp.WithString("view",
			mcp.Description("apps, namespaces, l4ingress, egressips or namespaceDetails"),
			mcp.DefaultString(string(route.ViewApps)),
		),
		mcp.WithString("app", mcp.Description("Application name")),
		mcp.WithString("namespace", mcp.Description("Namespace name, for namespaceDetails")),
	)
}

func appsListTool() mcp.Tool {
	return mcp.NewTool("apps_list",
		mcp.WithDescription("List the applications of an environment"),
		mcp.WithString("env", mcp.Required(), mcp.Description("Environment key")),
	)
}

func namespacesListTool() mcp.Tool {
	return mcp.NewTool("namespaces_list",
		mcp.WithDescription("List the namespaces of an application"),
		mcp.WithString("env", mcp.Required(), mcp.Description("Environment key")),
		mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
	)
}

func namespaceGetTool() mcp.Tool {
	return mcp.NewTool("namespace_get",
		mcp.WithDescription("Get the canonical configuration of one namespace"),
		mcp.WithString("env", mcp.Required(), mcp.Description("Environment key")),
		mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
		mcp.WithString("namespace", mcp.Required(), mcp.Description("Namespace name")),
	)
}

func namespaceUpdateTool() mcp.Tool {
	return mcp.NewTool("namespace_update",
		mcp.WithDescription("Apply a composite namespace update (namespace_info, resources, rolebindings, nsargocd, egressfirewall)"),
		mcp.WithString("env", mcp.Required(), mcp.Description("Environment key")),
		mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
		mcp.WithString("namespace", mcp.Required(), mcp.Description("Namespace name")),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description("Update request as JSON or YAML"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Validate and show the planned steps without writing"),
			mcp.DefaultBool(false),
		),
	)
}

func (s *Server) handleRouteDecode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url is required"), nil
	}
	r := route.DecodeURL(raw)
	return jsonResult(map[string]interface{}{
		"route":     r,
		"canonical": route.Encode(r),
	})
}

func (s *Server) handleRouteEncode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := route.Route{
		Env:       req.GetString("env", ""),
		View:      route.View(req.GetString("view", string(route.ViewApps))),
		AppName:   req.GetString("app", ""),
		Namespace: req.GetString("namespace", ""),
	}
	return mcp.NewToolResultText(route.Encode(r)), nil
}

func (s *Server) handleAppsList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	env, err := req.RequireString("env")
	if err != nil {
		return mcp.NewToolResultError("env is required"), nil
	}
	apps, err := s.apps.List(ctx, env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list apps: %s", api.Message(err))), nil
	}
	return jsonResult(apps)
}

func (s *Server) handleNamespacesList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	env, err := req.RequireString("env")
	if err != nil {
		return mcp.NewToolResultError("env is required"), nil
	}
	app, err := req.RequireString("app")
	if err != nil {
		return mcp.NewToolResultError("app is required"), nil
	}
	list, err := s.namespaces.List(ctx, env, app)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list namespaces: %s", api.Message(err))), nil
	}
	return jsonResult(list)
}

func (s *Server) handleNamespaceGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errResult := namespaceRef(req)
	if errResult != nil {
		return errResult, nil
	}
	ns, err := s.namespaces.Get(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get namespace: %s", api.Message(err))), nil
	}
	return jsonResult(ns)
}

func (s *Server) handleNamespaceUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, errResult := namespaceRef(req)
	if errResult != nil {
		return errResult, nil
	}
	body, err := req.RequireString("request")
	if err != nil {
		return mcp.NewToolResultError("request is required"), nil
	}

	var update orchestrator.UpdateRequest
	if err := yaml.Unmarshal([]byte(body), &update); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid update request: %v", err)), nil
	}

	if req.GetBool("dry_run", false) {
		if err := orchestrator.Validate(ref, update); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(orchestrator.Describe(update)), nil
	}

	if !s.cfg.AllowWrites {
		return mcp.NewToolResultError("namespace updates are disabled; set mcp.allowWrites in the configuration"), nil
	}

	prev, err := s.namespaces.Get(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load namespace: %s", api.Message(err))), nil
	}

	logging.Info(subsystem, "Updating %s/%s in %s: %s", ref.App, ref.Name, ref.Env, orchestrator.Describe(update))
	result, err := s.updater.Apply(ctx, ref, prev, update)
	if err != nil {
		var partial *orchestrator.PartialUpdateError
		if errors.As(err, &partial) && partial.Partial() {
			return mcp.NewToolResultError(fmt.Sprintf("Partially applied (%s), failed at %s: %s",
				strings.Join(partial.Applied, ", "), partial.Failed, api.Message(partial.Err))), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Update failed: %s", api.Message(err))), nil
	}
	return jsonResult(result)
}

// namespaceRef reads env, app and namespace, or returns the error result to send.
func namespaceRef(req mcp.CallToolRequest) (api.NamespaceRef, *mcp.CallToolResult) {
	var ref api.NamespaceRef
	var err error
	if ref.Env, err = req.RequireString("env"); err != nil {
		return ref, mcp.NewToolResultError("env is required")
	}
	if ref.App, err = req.RequireString("app"); err != nil {
		return ref, mcp.NewToolResultError("app is required")
	}
	if ref.Name, err = req.RequireString("namespace"); err != nil {
		return ref, mcp.NewToolResultError("namespace is required")
	}
	return ref, nil
}
