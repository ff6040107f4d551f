package orchestrator

import (
	"portalctl/internal/api"

	"k8s.io/apimachinery/pkg/api/equality"
)

// RequestFor returns the full editable form of ns: every sub-payload present
// and set to the namespace's current values.
func RequestFor(ns api.Namespace) UpdateRequest {
	clusters := append([]string{}, ns.Clusters...)
	bindings := append([]api.Binding{}, ns.RoleBindings...)
	rules := append([]api.EgressRule{}, ns.EgressFirewallRules...)

	return UpdateRequest{
		NamespaceInfo: &NamespaceInfoUpdate{
			Clusters:               &clusters,
			EgressNameID:           Ptr(ns.EgressNameID),
			EnablePodBasedEgressIP: Ptr(ns.EnablePodBasedEgressIP),
		},
		Resources: &ResourcesUpdate{
			Requests:    ns.Resources.Requests.Clone(),
			QuotaLimits: ns.Resources.QuotaLimits.Clone(),
			Limits:      ns.Resources.Limits.Clone(),
		},
		RoleBindings: &RoleBindingsUpdate{Bindings: &bindings},
		ArgoCD: &ArgoCDUpdate{
			NeedArgo:           Ptr(ns.NeedArgo),
			ArgoCDSyncStrategy: Ptr(ns.ArgoCDSyncStrategy),
			GitRepoURL:         ns.GitRepoURL,
		},
		EgressFirewall: &EgressFirewallUpdate{Rules: &rules},
	}
}

// Changed keeps the parts of edited that differ from base. Parts removed from
// edited are treated as absent. Nil and empty collections compare equal.
func Changed(base, edited UpdateRequest) UpdateRequest {
	var out UpdateRequest

	if e := edited.NamespaceInfo; e != nil {
		b := base.NamespaceInfo
		if b == nil {
			b = &NamespaceInfoUpdate{}
		}
		info := &NamespaceInfoUpdate{}
		if e.Clusters != nil && differs(e.Clusters, b.Clusters) {
			info.Clusters = e.Clusters
		}
		if e.EgressNameID != nil && differs(e.EgressNameID, b.EgressNameID) {
			info.EgressNameID = e.EgressNameID
		}
		if e.EnablePodBasedEgressIP != nil && differs(e.EnablePodBasedEgressIP, b.EnablePodBasedEgressIP) {
			info.EnablePodBasedEgressIP = e.EnablePodBasedEgressIP
		}
		if info.Clusters != nil || info.hasEgress() {
			out.NamespaceInfo = info
		}
	}

	if e := edited.Resources; e != nil {
		b := base.Resources
		if b == nil {
			b = &ResourcesUpdate{}
		}
		res := &ResourcesUpdate{}
		if e.Requests != nil && differs(e.Requests, b.Requests) {
			res.Requests = e.Requests
		}
		if e.QuotaLimits != nil && differs(e.QuotaLimits, b.QuotaLimits) {
			res.QuotaLimits = e.QuotaLimits
		}
		if e.Limits != nil && differs(e.Limits, b.Limits) {
			res.Limits = e.Limits
		}
		if res.Requests != nil || res.QuotaLimits != nil || res.Limits != nil {
			out.Resources = res
		}
	}

	if e := edited.RoleBindings; e != nil && e.Bindings != nil {
		if base.RoleBindings == nil || differs(e.Bindings, base.RoleBindings.Bindings) {
			out.RoleBindings = e
		}
	}

	if e := edited.ArgoCD; e != nil && differs(e, base.ArgoCD) {
		out.ArgoCD = e
	}

	if e := edited.EgressFirewall; e != nil && e.Rules != nil {
		if base.EgressFirewall == nil || differs(e.Rules, base.EgressFirewall.Rules) {
			out.EgressFirewall = e
		}
	}

	return out
}

func differs(a, b interface{}) bool {
	return !equality.Semantic.DeepEqual(a, b)
}
