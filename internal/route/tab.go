package route

import (
	"net/url"
	"strings"
)

// TopTab is the outer navigation selection, independent of Route.View.
type TopTab int

const (
	TabHome TopTab = iota
	TabSettings
	TabRequestProvisioning
	TabPRsAndApproval
	TabClusters
)

// AllTabs lists tabs in display order.
var AllTabs = []TopTab{TabHome, TabSettings, TabRequestProvisioning, TabPRsAndApproval, TabClusters}

func (t TopTab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabSettings:
		return "Settings"
	case TabRequestProvisioning:
		return "Request Provisioning"
	case TabPRsAndApproval:
		return "PRs and Approval"
	case TabClusters:
		return "Clusters"
	default:
		return "Unknown"
	}
}

// RequiresConfig reports whether the tab is only reachable once the portal configuration is complete.
func (t TopTab) RequiresConfig() bool {
	return t == TabRequestProvisioning || t == TabPRsAndApproval || t == TabClusters
}

// Path is the literal location of a top tab. The provisioning tab lives under /apps.
func (t TopTab) Path() string {
	switch t {
	case TabSettings:
		return "/settings"
	case TabRequestProvisioning:
		return "/" + appsPrefix
	case TabPRsAndApproval:
		return "/prs"
	case TabClusters:
		return "/clusters"
	default:
		return "/home"
	}
}

// PathWithEnv appends env as a query parameter when non-empty.
func PathWithEnv(path, env string) string {
	if env == "" {
		return path
	}
	return path + "?" + url.Values{envParam: []string{env}}.Encode()
}

// ResolveTab picks the top tab by inspecting the literal path. Gated tabs fall back to Home
// while the configuration is incomplete; any other path is provisioning, or Home when incomplete.
func ResolveTab(path string, configComplete bool) TopTab {
	p := strings.TrimRight(path, "/")
	var tab TopTab
	switch p {
	case "/home":
		return TabHome
	case "/settings":
		return TabSettings
	case "/prs":
		tab = TabPRsAndApproval
	case "/clusters":
		tab = TabClusters
	default:
		tab = TabRequestProvisioning
	}
	if !configComplete {
		return TabHome
	}
	return tab
}

// ParseTab maps a user supplied name ("home", "clusters", ...) to a TopTab.
func ParseTab(s string) (TopTab, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return TabHome, true
	case "settings":
		return TabSettings, true
	case "provisioning", "request-provisioning", "apps":
		return TabRequestProvisioning, true
	case "prs", "approval":
		return TabPRsAndApproval, true
	case "clusters":
		return TabClusters, true
	}
	return TabHome, false
}

// LiteralTab reports the top tab whose literal path is path. Locations under /apps are not literal.
func LiteralTab(path string) (TopTab, bool) {
	switch strings.TrimRight(path, "/") {
	case "/home":
		return TabHome, true
	case "/settings":
		return TabSettings, true
	case "/prs":
		return TabPRsAndApproval, true
	case "/clusters":
		return TabClusters, true
	}
	return TabHome, false
}
