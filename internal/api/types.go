package api

// User is the signed in portal user.
type User struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// PortalMode is the deployment mode reported by the backend (e.g. "builder", "readonly").
type PortalMode struct {
	Mode string `json:"mode"`
}

// PortalConfig is the persisted workspace/repo configuration summary.
type PortalConfig struct {
	ConfigComplete bool   `json:"config_complete"`
	Workspace      string `json:"workspace,omitempty"`
	Repo           string `json:"repo,omitempty"`
}

// App is one application in an environment's roster.
type App struct {
	Name            string   `json:"appname"`
	Description     string   `json:"description,omitempty"`
	ManagedBy       string   `json:"managedby,omitempty"`
	TotalNamespaces int      `json:"totalns"`
	Clusters        []string `json:"clusters,omitempty"`
}

// Cluster is one cluster of an environment.
type Cluster struct {
	Name         string   `json:"clustername"`
	Purpose      string   `json:"purpose,omitempty"`
	Datacenter   string   `json:"datacenter,omitempty"`
	Applications []string `json:"applications,omitempty"`
}

// ResourceList maps resource names (cpu, memory, pods, ...) to quantity strings.
type ResourceList map[string]string

// Resources groups the quota and limit range settings of a namespace.
type Resources struct {
	Requests    ResourceList `json:"requests,omitempty"`
	QuotaLimits ResourceList `json:"quota_limits,omitempty"`
	Limits      ResourceList `json:"limits,omitempty"`
}

// Binding grants a role to a subject inside the namespace.
type Binding struct {
	Subject string `json:"subject" yaml:"subject"`
	Kind    string `json:"type" yaml:"type"`
	Role    string `json:"role" yaml:"role"`
}

// RulePort restricts an egress rule to a protocol/port pair.
type RulePort struct {
	Protocol string `json:"protocol" yaml:"protocol"`
	Port     int    `json:"port" yaml:"port"`
}

// EgressRule is one egress firewall allow rule.
type EgressRule struct {
	EgressType string     `json:"egressType" yaml:"egressType"`
	To         string     `json:"to" yaml:"to"`
	Ports      []RulePort `json:"ports,omitempty" yaml:"ports,omitempty"`
}

const (
	EgressTypeDNSName      = "dnsName"
	EgressTypeCIDRSelector = "cidrSelector"
)

// Namespace is the canonical cross-cutting configuration of one namespace.
type Namespace struct {
	Name                   string       `json:"name"`
	Clusters               []string     `json:"clusters"`
	EgressNameID           string       `json:"egress_nameid"`
	EnablePodBasedEgressIP bool         `json:"enable_pod_based_egress_ip"`
	NeedArgo               bool         `json:"need_argo"`
	ArgoCDSyncStrategy     string       `json:"argocd_sync_strategy"`
	GitRepoURL             string       `json:"gitrepourl"`
	Resources              Resources    `json:"resources"`
	RoleBindings           []Binding    `json:"rolebindings"`
	EgressFirewallRules    []EgressRule `json:"egress_firewall_rules"`
}

// Clone returns a deep copy so merges never alias the caller's slices or maps.
func (n Namespace) Clone() Namespace {
	out := n
	out.Clusters = cloneStrings(n.Clusters)
	out.Resources = Resources{
		Requests:    n.Resources.Requests.Clone(),
		QuotaLimits: n.Resources.QuotaLimits.Clone(),
		Limits:      n.Resources.Limits.Clone(),
	}
	if n.RoleBindings != nil {
		out.RoleBindings = append([]Binding{}, n.RoleBindings...)
	}
	if n.EgressFirewallRules != nil {
		out.EgressFirewallRules = make([]EgressRule, len(n.EgressFirewallRules))
		for i, r := range n.EgressFirewallRules {
			r.Ports = append([]RulePort(nil), r.Ports...)
			out.EgressFirewallRules[i] = r
		}
	}
	return out
}

// Clone copies the list; nil stays nil.
func (l ResourceList) Clone() ResourceList {
	if l == nil {
		return nil
	}
	out := make(ResourceList, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// L4IngressAllocation is a layer-4 ingress IP reservation of an app.
type L4IngressAllocation struct {
	Cluster   string   `json:"cluster"`
	Namespace string   `json:"namespace,omitempty"`
	Name      string   `json:"name,omitempty"`
	Purpose   string   `json:"purpose,omitempty"`
	IPs       []string `json:"ips"`
}

// EgressIPAllocation is an egress IP reservation of an app.
type EgressIPAllocation struct {
	Cluster      string   `json:"cluster"`
	EgressNameID string   `json:"egress_nameid"`
	Namespaces   []string `json:"namespaces,omitempty"`
	IPs          []string `json:"ips"`
}

// NamespaceRef addresses one namespace of an app in an environment.
type NamespaceRef struct {
	Env  string
	App  string
	Name string
}

// NamespaceInfoPatch is a partial namespace_info write or response. Nil fields are absent.
type NamespaceInfoPatch struct {
	Clusters               *[]string `json:"clusters,omitempty"`
	EgressNameID           *string   `json:"egress_nameid,omitempty"`
	EnablePodBasedEgressIP *bool     `json:"enable_pod_based_egress_ip,omitempty"`
	NeedArgo               *bool     `json:"need_argo,omitempty"`
}

// QuotaUpdate is the body of a resource quota write.
type QuotaUpdate struct {
	Requests    ResourceList `json:"requests,omitempty"`
	QuotaLimits ResourceList `json:"quota_limits,omitempty"`
}

// LimitsUpdate is the body of a limit range write.
type LimitsUpdate struct {
	Limits ResourceList `json:"limits"`
}

// ResourcesPatch is the response of a quota or limit range write. Nil lists were not touched.
type ResourcesPatch struct {
	Requests    ResourceList `json:"requests"`
	QuotaLimits ResourceList `json:"quota_limits"`
	Limits      ResourceList `json:"limits"`
}

// ArgoCDAssociation is the per-namespace ArgoCD management setting.
type ArgoCDAssociation struct {
	NeedArgo           bool   `json:"need_argo"`
	ArgoCDSyncStrategy string `json:"argocd_sync_strategy"`
	GitRepoURL         string `json:"gitrepourl"`
}

// ArgoCDPatch is the response of an ArgoCD upsert. Nil fields were not echoed back.
type ArgoCDPatch struct {
	NeedArgo           *bool   `json:"need_argo"`
	ArgoCDSyncStrategy *string `json:"argocd_sync_strategy"`
	GitRepoURL         *string `json:"gitrepourl"`
}
