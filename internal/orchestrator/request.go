package orchestrator

import "portalctl/internal/api"

// UpdateRequest is one logical "update this namespace" intent. Nil sub-payloads are absent.
type UpdateRequest struct {
	NamespaceInfo  *NamespaceInfoUpdate  `json:"namespace_info,omitempty" yaml:"namespace_info,omitempty"`
	Resources      *ResourcesUpdate      `json:"resources,omitempty" yaml:"resources,omitempty"`
	RoleBindings   *RoleBindingsUpdate   `json:"rolebindings,omitempty" yaml:"rolebindings,omitempty"`
	ArgoCD         *ArgoCDUpdate         `json:"nsargocd,omitempty" yaml:"nsargocd,omitempty"`
	EgressFirewall *EgressFirewallUpdate `json:"egressfirewall,omitempty" yaml:"egressfirewall,omitempty"`
}

// NamespaceInfoUpdate splits into a basic write (clusters) and an egress write
// (egress_nameid, enable_pod_based_egress_ip). NeedArgo is carried for
// completeness; the ArgoCD association is managed through ArgoCDUpdate.
type NamespaceInfoUpdate struct {
	Clusters               *[]string `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	EgressNameID           *string   `json:"egress_nameid,omitempty" yaml:"egress_nameid,omitempty"`
	EnablePodBasedEgressIP *bool     `json:"enable_pod_based_egress_ip,omitempty" yaml:"enable_pod_based_egress_ip,omitempty"`
	NeedArgo               *bool     `json:"need_argo,omitempty" yaml:"need_argo,omitempty"`
}

func (u *NamespaceInfoUpdate) hasEgress() bool {
	return u.EgressNameID != nil || u.EnablePodBasedEgressIP != nil
}

// ResourcesUpdate holds the quota and limit range lists. A nil list is absent.
type ResourcesUpdate struct {
	Requests    api.ResourceList `json:"requests,omitempty" yaml:"requests,omitempty"`
	QuotaLimits api.ResourceList `json:"quota_limits,omitempty" yaml:"quota_limits,omitempty"`
	Limits      api.ResourceList `json:"limits,omitempty" yaml:"limits,omitempty"`
}

// RoleBindingsUpdate replaces the full binding set. A nil Bindings is absent, an empty one clears.
type RoleBindingsUpdate struct {
	Bindings *[]api.Binding `json:"bindings" yaml:"bindings"`
}

// ArgoCDUpdate upserts the ArgoCD association, or deletes it when NeedArgo is false.
// NeedArgo must be present. A nil ArgoCDSyncStrategy keeps the strategy of the
// previous canonical namespace.
type ArgoCDUpdate struct {
	NeedArgo           *bool   `json:"need_argo" yaml:"need_argo"`
	ArgoCDSyncStrategy *string `json:"argocd_sync_strategy,omitempty" yaml:"argocd_sync_strategy,omitempty"`
	GitRepoURL         string  `json:"gitrepourl" yaml:"gitrepourl"`
}

// EgressFirewallUpdate upserts the rule set, or deletes the firewall when Rules is empty.
// A nil Rules is absent and issues no call.
type EgressFirewallUpdate struct {
	Rules *[]api.EgressRule `json:"rules" yaml:"rules"`
}

// Ptr returns a pointer to v, for building requests in code.
func Ptr[T any](v T) *T {
	return &v
}
