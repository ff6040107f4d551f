package orchestrator

import (
	"context"
	"fmt"

	"portalctl/internal/api"
	"portalctl/pkg/logging"
)

// Step names, in execution order.
const (
	StepBasic          = "namespace_info/basic"
	StepEgress         = "namespace_info/egress"
	StepQuota          = "resources/quota"
	StepLimits         = "resources/limits"
	StepRoleBindings   = "rolebindings"
	StepArgoCD         = "nsargocd"
	StepEgressFirewall = "egressfirewall"
)

const subsystem = "Orchestrator"

// NamespaceInfoWriter writes the basic and egress halves of namespace_info.
type NamespaceInfoWriter interface {
	UpdateBasic(ctx context.Context, ref api.NamespaceRef, clusters []string) (api.NamespaceInfoPatch, error)
	UpdateEgress(ctx context.Context, ref api.NamespaceRef, patch api.NamespaceInfoPatch) (api.NamespaceInfoPatch, error)
}

// ResourceWriter writes the resource quota and limit range.
type ResourceWriter interface {
	UpdateQuota(ctx context.Context, ref api.NamespaceRef, update api.QuotaUpdate) (api.ResourcesPatch, error)
	UpdateLimits(ctx context.Context, ref api.NamespaceRef, update api.LimitsUpdate) (api.ResourcesPatch, error)
}

// RoleBindingWriter replaces the role binding set.
type RoleBindingWriter interface {
	Replace(ctx context.Context, ref api.NamespaceRef, bindings []api.Binding) ([]api.Binding, error)
}

// ArgoCDWriter manages the ArgoCD association.
type ArgoCDWriter interface {
	Upsert(ctx context.Context, ref api.NamespaceRef, assoc api.ArgoCDAssociation) (api.ArgoCDPatch, error)
	Delete(ctx context.Context, ref api.NamespaceRef) error
}

// EgressFirewallWriter manages the egress firewall object.
type EgressFirewallWriter interface {
	Upsert(ctx context.Context, ref api.NamespaceRef, rules []api.EgressRule) ([]api.EgressRule, error)
	Delete(ctx context.Context, ref api.NamespaceRef) error
}

// Writers are the backend sub-resource writers used by the orchestrator.
type Writers struct {
	NamespaceInfo  NamespaceInfoWriter
	Resources      ResourceWriter
	RoleBindings   RoleBindingWriter
	ArgoCD         ArgoCDWriter
	EgressFirewall EgressFirewallWriter
}

// WritersFrom adapts the HTTP gateways.
func WritersFrom(gw *api.Gateways) Writers {
	return Writers{
		NamespaceInfo:  gw.Namespaces,
		Resources:      gw.Resources,
		RoleBindings:   gw.RoleBindings,
		ArgoCD:         gw.ArgoCD,
		EgressFirewall: gw.EgressFirewall,
	}
}

// Store receives the merged namespace so list and detail views see the edit without a re-fetch.
type Store interface {
	CommitNamespace(ref api.NamespaceRef, ns api.Namespace)
}

// Refresher reloads rosters that depend on namespace placement.
type Refresher interface {
	Refresh(ctx context.Context, env string) error
}

// Orchestrator turns one UpdateRequest into sequential sub-resource writes.
type Orchestrator struct {
	w         Writers
	store     Store
	refresher Refresher
}

// New creates an Orchestrator. store and refresher may be nil.
func New(w Writers, store Store, refresher Refresher) *Orchestrator {
	return &Orchestrator{w: w, store: store, refresher: refresher}
}

type step struct {
	name string
	run  func(ctx context.Context, result *api.Namespace) error
}

// Plan returns the names of the steps req would run, in order.
func Plan(req UpdateRequest) []string {
	var names []string
	for _, s := range (&Orchestrator{}).plan(api.NamespaceRef{}, api.Namespace{}, req) {
		names = append(names, s.name)
	}
	return names
}

// Apply validates req, runs its steps against prev and returns the merged namespace.
// On a step failure the steps that already succeeded stay merged and committed,
// and the returned error is a *PartialUpdateError.
func (o *Orchestrator) Apply(ctx context.Context, ref api.NamespaceRef, prev api.Namespace, req UpdateRequest) (api.Namespace, error) {
	if err := Validate(ref, req); err != nil {
		return prev, err
	}

	steps := o.plan(ref, prev, req)
	if len(steps) == 0 {
		return prev, ErrUnsupportedUpdate
	}

	result := prev.Clone()
	if result.Name == "" {
		result.Name = ref.Name
	}

	var applied []string
	var failure *PartialUpdateError
	for _, s := range steps {
		logging.Debug(subsystem, "Running step %s for %s/%s", s.name, ref.App, ref.Name)
		if err := s.run(ctx, &result); err != nil {
			logging.Error(subsystem, err, "Step %s failed for %s/%s", s.name, ref.App, ref.Name)
			failure = &PartialUpdateError{
				Ref:     ref,
				Applied: applied,
				Failed:  s.name,
				Err:     err,
			}
			break
		}
		applied = append(applied, s.name)
	}

	if len(applied) == 0 {
		return prev, failure
	}

	if o.store != nil {
		o.store.CommitNamespace(ref, result)
	}
	if o.refresher != nil && contains(applied, StepBasic) {
		if err := o.refresher.Refresh(ctx, ref.Env); err != nil {
			logging.Warn(subsystem, "Roster refresh after placement change failed: %v", err)
		}
	}

	if failure != nil {
		return result, failure
	}
	logging.Info(subsystem, "Updated namespace %s/%s (%d steps)", ref.App, ref.Name, len(applied))
	return result, nil
}

func (o *Orchestrator) plan(ref api.NamespaceRef, prev api.Namespace, req UpdateRequest) []step {
	var steps []step

	if info := req.NamespaceInfo; info != nil {
		if info.Clusters != nil {
			clusters := append([]string{}, (*info.Clusters)...)
			steps = append(steps, step{StepBasic, func(ctx context.Context, n *api.Namespace) error {
				resp, err := o.w.NamespaceInfo.UpdateBasic(ctx, ref, clusters)
				if err != nil {
					return err
				}
				n.Clusters = clusters
				mergeInfo(n, resp)
				return nil
			}})
		}
		if info.hasEgress() {
			patch := api.NamespaceInfoPatch{
				EgressNameID:           info.EgressNameID,
				EnablePodBasedEgressIP: info.EnablePodBasedEgressIP,
			}
			steps = append(steps, step{StepEgress, func(ctx context.Context, n *api.Namespace) error {
				resp, err := o.w.NamespaceInfo.UpdateEgress(ctx, ref, patch)
				if err != nil {
					return err
				}
				mergeInfo(n, patch)
				mergeInfo(n, resp)
				return nil
			}})
		}
	}

	if res := req.Resources; res != nil {
		if res.Requests != nil || res.QuotaLimits != nil {
			update := api.QuotaUpdate{Requests: res.Requests.Clone(), QuotaLimits: res.QuotaLimits.Clone()}
			steps = append(steps, step{StepQuota, func(ctx context.Context, n *api.Namespace) error {
				resp, err := o.w.Resources.UpdateQuota(ctx, ref, update)
				if err != nil {
					return err
				}
				mergeResources(&n.Resources, api.ResourcesPatch{Requests: update.Requests, QuotaLimits: update.QuotaLimits})
				mergeResources(&n.Resources, resp)
				return nil
			}})
		}
		if res.Limits != nil {
			update := api.LimitsUpdate{Limits: res.Limits.Clone()}
			steps = append(steps, step{StepLimits, func(ctx context.Context, n *api.Namespace) error {
				resp, err := o.w.Resources.UpdateLimits(ctx, ref, update)
				if err != nil {
					return err
				}
				mergeResources(&n.Resources, api.ResourcesPatch{Limits: update.Limits})
				mergeResources(&n.Resources, resp)
				return nil
			}})
		}
	}

	if rb := req.RoleBindings; rb != nil && rb.Bindings != nil {
		bindings := append([]api.Binding{}, (*rb.Bindings)...)
		steps = append(steps, step{StepRoleBindings, func(ctx context.Context, n *api.Namespace) error {
			resp, err := o.w.RoleBindings.Replace(ctx, ref, bindings)
			if err != nil {
				return err
			}
			if resp == nil {
				resp = []api.Binding{}
			}
			n.RoleBindings = resp
			return nil
		}})
	}

	if argo := req.ArgoCD; argo != nil && argo.NeedArgo != nil {
		if !*argo.NeedArgo {
			steps = append(steps, step{StepArgoCD, func(ctx context.Context, n *api.Namespace) error {
				if err := o.w.ArgoCD.Delete(ctx, ref); err != nil {
					return err
				}
				n.NeedArgo = false
				n.ArgoCDSyncStrategy = ""
				n.GitRepoURL = ""
				return nil
			}})
		} else {
			assoc := api.ArgoCDAssociation{
				NeedArgo:           true,
				ArgoCDSyncStrategy: prev.ArgoCDSyncStrategy,
				GitRepoURL:         argo.GitRepoURL,
			}
			if argo.ArgoCDSyncStrategy != nil {
				assoc.ArgoCDSyncStrategy = *argo.ArgoCDSyncStrategy
			}
			steps = append(steps, step{StepArgoCD, func(ctx context.Context, n *api.Namespace) error {
				resp, err := o.w.ArgoCD.Upsert(ctx, ref, assoc)
				if err != nil {
					return err
				}
				n.NeedArgo = assoc.NeedArgo
				n.ArgoCDSyncStrategy = assoc.ArgoCDSyncStrategy
				n.GitRepoURL = assoc.GitRepoURL
				mergeArgoCD(n, resp)
				return nil
			}})
		}
	}

	if fw := req.EgressFirewall; fw != nil && fw.Rules != nil {
		rules := append([]api.EgressRule{}, (*fw.Rules)...)
		if len(rules) == 0 {
			steps = append(steps, step{StepEgressFirewall, func(ctx context.Context, n *api.Namespace) error {
				if err := o.w.EgressFirewall.Delete(ctx, ref); err != nil {
					return err
				}
				n.EgressFirewallRules = []api.EgressRule{}
				return nil
			}})
		} else {
			steps = append(steps, step{StepEgressFirewall, func(ctx context.Context, n *api.Namespace) error {
				resp, err := o.w.EgressFirewall.Upsert(ctx, ref, rules)
				if err != nil {
					return err
				}
				if resp == nil {
					resp = rules
				}
				n.EgressFirewallRules = resp
				return nil
			}})
		}
	}

	return steps
}

func mergeInfo(n *api.Namespace, p api.NamespaceInfoPatch) {
	if p.Clusters != nil {
		n.Clusters = append([]string{}, (*p.Clusters)...)
	}
	if p.EgressNameID != nil {
		n.EgressNameID = *p.EgressNameID
	}
	if p.EnablePodBasedEgressIP != nil {
		n.EnablePodBasedEgressIP = *p.EnablePodBasedEgressIP
	}
	if p.NeedArgo != nil {
		n.NeedArgo = *p.NeedArgo
	}
}

// mergeResources replaces only the lists present in p.
func mergeResources(r *api.Resources, p api.ResourcesPatch) {
	if p.Requests != nil {
		r.Requests = p.Requests.Clone()
	}
	if p.QuotaLimits != nil {
		r.QuotaLimits = p.QuotaLimits.Clone()
	}
	if p.Limits != nil {
		r.Limits = p.Limits.Clone()
	}
}

func mergeArgoCD(n *api.Namespace, p api.ArgoCDPatch) {
	if p.NeedArgo != nil {
		n.NeedArgo = *p.NeedArgo
	}
	if p.ArgoCDSyncStrategy != nil {
		n.ArgoCDSyncStrategy = *p.ArgoCDSyncStrategy
	}
	if p.GitRepoURL != nil {
		n.GitRepoURL = *p.GitRepoURL
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Describe renders a one-line summary of the steps req would run.
func Describe(req UpdateRequest) string {
	names := Plan(req)
	if len(names) == 0 {
		return "no changes"
	}
	return fmt.Sprintf("%d step(s): %v", len(names), names)
}
