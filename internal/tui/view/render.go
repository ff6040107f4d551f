package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"portalctl/internal/api"
	"portalctl/internal/color"
	"portalctl/internal/route"
	"portalctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	switch m.CurrentAppMode {
	case model.ModeQuitting:
		return color.StatusStyle.Render(m.QuittingMessage)
	case model.ModeInitializing:
		return color.StatusStyle.Render(m.Spinner.View() + " Connecting to portal backend...")
	case model.ModeHelpOverlay:
		return color.AppStyle.Render(color.PanelStyle.Render(m.Help.FullHelpView(m.Keys.FullHelp())))
	case model.ModeLogOverlay:
		return color.AppStyle.Render(color.LogOverlayStyle.Render(m.LogViewport.View()))
	}

	width := m.Width - color.AppStyle.GetHorizontalFrameSize()
	if width <= 0 {
		width = 80
	}

	sections := []string{renderHeader(m, width), renderLocation(m)}
	if m.State.Err != nil {
		sections = append(sections, color.ErrorBannerStyle.Render(api.Message(m.State.Err)+"  (c to dismiss)"))
	}
	sections = append(sections, renderBody(m, width-color.PanelStyle.GetHorizontalFrameSize()))
	sections = append(sections, renderStatusBar(m, width))
	sections = append(sections, color.HelpStyle.Render(m.Help.ShortHelpView(m.Keys.ShortHelp())))

	return color.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderHeader(m *model.Model, width int) string {
	st := m.State
	tabs := make([]string, 0, len(route.AllTabs))
	for i, t := range route.AllTabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		switch {
		case t == st.Tab:
			tabs = append(tabs, color.ActiveTabStyle.Render(label))
		case t.RequiresConfig() && !st.ConfigComplete:
			tabs = append(tabs, color.DisabledTabStyle.Render(label))
		default:
			tabs = append(tabs, color.TabStyle.Render(label))
		}
	}
	left := color.HeaderStyle.Render("portalctl") + "  " + strings.Join(tabs, "")

	var info []string
	if st.ActiveEnv != "" {
		info = append(info, "env "+st.ActiveEnv)
	}
	if st.User.Username != "" {
		info = append(info, st.User.Username)
	}
	if st.PortalMode != "" {
		info = append(info, st.PortalMode)
	}
	right := color.MutedStyle.Render(strings.Join(info, " · "))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderLocation(m *model.Model) string {
	if m.CurrentAppMode == model.ModeLocationInput {
		return m.LocationInput.View()
	}
	return color.LocationStyle.Render(m.Location)
}

func renderBody(m *model.Model, width int) string {
	st := m.State
	var body string
	switch st.Tab {
	case route.TabHome:
		body = renderHome(m)
	case route.TabSettings:
		body = renderSettings(m)
	case route.TabPRsAndApproval:
		body = color.MutedStyle.Render("Pull requests raised by provisioning changes are reviewed in the portal.")
	case route.TabClusters:
		body = renderClusters(m, width)
	case route.TabRequestProvisioning:
		body = renderProvisioning(m, width)
	}
	return color.PanelStyle.Width(width).Render(body)
}

func renderHome(m *model.Model) string {
	st := m.State
	lines := []string{color.HeaderStyle.Render("Provisioning portal")}
	if st.ConfigComplete {
		lines = append(lines, color.SuccessStyle.Render("Configuration complete."),
			fmt.Sprintf("%d environment(s): %s", len(st.EnvKeys), strings.Join(st.EnvKeys, ", ")))
	} else {
		lines = append(lines, color.WarningStyle.Render("Configuration incomplete: provisioning, PRs and clusters are unavailable."),
			"Complete the workspace and repository settings in the portal, then press r.")
	}
	return strings.Join(lines, "\n")
}

func renderSettings(m *model.Model) string {
	cfg := m.State.Config
	return strings.Join([]string{
		color.HeaderStyle.Render("Settings"),
		"workspace: " + valueOr(cfg.Workspace, "-"),
		"repo:      " + valueOr(cfg.Repo, "-"),
		"complete:  " + strconv.FormatBool(cfg.ConfigComplete),
		"color:     " + valueOr(m.ColorMode, "auto"),
	}, "\n")
}

func renderClusters(m *model.Model, width int) string {
	cols := []column{{"CLUSTER", 24}, {"PURPOSE", 20}, {"DATACENTER", 14}, {"APPS", 6}, {"KUBE CONTEXT", 32}}
	rows := make([][]string, 0, len(m.State.Clusters))
	for _, c := range m.State.Clusters {
		kctx := "-"
		if m.KubeContexts != nil {
			if names := m.KubeContexts.ContextsFor(c.Name); len(names) > 0 {
				kctx = strings.Join(names, ",")
			}
		}
		rows = append(rows, []string{c.Name, c.Purpose, c.Datacenter, strconv.Itoa(len(c.Applications)), kctx})
	}
	return loadingLine(m) + renderTable(cols, rows, m.Cursor, width)
}

func renderProvisioning(m *model.Model, width int) string {
	st := m.State
	title := color.HeaderStyle.Render(breadcrumb(st.Route)) + "\n"

	switch st.Route.View {
	case route.ViewNamespaces:
		cols := []column{{"NAMESPACE", 24}, {"CLUSTERS", 28}, {"EGRESS", 16}, {"ARGO", 6}, {"BINDINGS", 8}}
		rows := make([][]string, 0, len(st.Namespaces))
		for _, ns := range st.Namespaces {
			rows = append(rows, []string{ns.Name, strings.Join(ns.Clusters, ","), ns.EgressNameID,
				yesNo(ns.NeedArgo), strconv.Itoa(len(ns.RoleBindings))})
		}
		return title + loadingLine(m) + renderTable(cols, rows, m.Cursor, width)
	case route.ViewL4Ingress:
		cols := []column{{"CLUSTER", 20}, {"NAMESPACE", 20}, {"NAME", 20}, {"IPS", 36}}
		rows := make([][]string, 0, len(st.L4Ingress))
		for _, a := range st.L4Ingress {
			rows = append(rows, []string{a.Cluster, a.Namespace, a.Name, strings.Join(a.IPs, ",")})
		}
		return title + loadingLine(m) + renderTable(cols, rows, m.Cursor, width)
	case route.ViewEgressIPs:
		cols := []column{{"CLUSTER", 20}, {"EGRESS NAME", 20}, {"NAMESPACES", 24}, {"IPS", 32}}
		rows := make([][]string, 0, len(st.EgressIPs))
		for _, a := range st.EgressIPs {
			rows = append(rows, []string{a.Cluster, a.EgressNameID, strings.Join(a.Namespaces, ","), strings.Join(a.IPs, ",")})
		}
		return title + loadingLine(m) + renderTable(cols, rows, m.Cursor, width)
	case route.ViewNamespaceDetails:
		if st.Detail == nil {
			return title + loadingLine(m)
		}
		return title + loadingLine(m) + renderNamespace(*st.Detail)
	}

	cols := []column{{"APP", 28}, {"NAMESPACES", 10}, {"CLUSTERS", 40}}
	rows := make([][]string, 0, len(st.Apps))
	for _, a := range st.Apps {
		rows = append(rows, []string{a.Name, strconv.Itoa(a.TotalNamespaces), strings.Join(a.Clusters, ",")})
	}
	return title + loadingLine(m) + renderTable(cols, rows, m.Cursor, width)
}

func renderNamespace(ns api.Namespace) string {
	lines := []string{
		"name:         " + ns.Name,
		"clusters:     " + valueOr(strings.Join(ns.Clusters, ", "), "-"),
		"egress:       " + valueOr(ns.EgressNameID, "-") + " (pod based: " + yesNo(ns.EnablePodBasedEgressIP) + ")",
		"argocd:       " + yesNo(ns.NeedArgo),
	}
	if ns.NeedArgo {
		lines = append(lines, "  repo:       "+ns.GitRepoURL, "  sync:       "+valueOr(ns.ArgoCDSyncStrategy, "-"))
	}
	lines = append(lines,
		"requests:     "+formatList(ns.Resources.Requests),
		"quota limits: "+formatList(ns.Resources.QuotaLimits),
		"limit range:  "+formatList(ns.Resources.Limits),
		fmt.Sprintf("rolebindings: %d", len(ns.RoleBindings)))
	for _, b := range ns.RoleBindings {
		lines = append(lines, fmt.Sprintf("  %s %s -> %s", b.Kind, b.Subject, b.Role))
	}
	lines = append(lines, fmt.Sprintf("egress rules: %d", len(ns.EgressFirewallRules)))
	for _, r := range ns.EgressFirewallRules {
		ports := make([]string, 0, len(r.Ports))
		for _, p := range r.Ports {
			ports = append(ports, fmt.Sprintf("%s/%d", p.Protocol, p.Port))
		}
		lines = append(lines, fmt.Sprintf("  %s %s %s", r.EgressType, r.To, strings.Join(ports, ",")))
	}
	return strings.Join(lines, "\n")
}

func renderStatusBar(m *model.Model, width int) string {
	style := color.StatusStyle
	switch m.StatusBarMessageType {
	case model.StatusBarSuccess:
		style = color.StatusMsgSuccessStyle
	case model.StatusBarError:
		style = color.StatusMsgErrorStyle
	case model.StatusBarWarning:
		style = color.StatusMsgWarningStyle
	case model.StatusBarInfo:
		style = color.StatusMsgInfoStyle
	}
	msg := m.StatusBarMessage
	if m.State.Loading {
		msg = strings.TrimSpace(m.Spinner.View() + " loading " + msg)
	}
	return style.Width(width).Render(msg)
}

func loadingLine(m *model.Model) string {
	if !m.State.Loading {
		return ""
	}
	return m.Spinner.View() + " loading\n"
}

func breadcrumb(r route.Route) string {
	parts := []string{"apps"}
	if r.Env != "" {
		parts[0] = "apps (" + r.Env + ")"
	}
	if r.AppName != "" {
		parts = append(parts, r.AppName)
	}
	switch r.View {
	case route.ViewNamespaces:
		parts = append(parts, "namespaces")
	case route.ViewL4Ingress:
		parts = append(parts, "l4 ingress")
	case route.ViewEgressIPs:
		parts = append(parts, "egress ips")
	case route.ViewNamespaceDetails:
		parts = append(parts, "namespaces", r.Namespace)
	}
	return strings.Join(parts, " › ")
}

func formatList(l api.ResourceList) string {
	if len(l) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + "=" + l[k]
	}
	return strings.Join(out, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
