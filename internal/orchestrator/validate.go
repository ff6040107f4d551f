package orchestrator

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"portalctl/internal/api"

	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation"
)

var bindingKinds = map[string]bool{
	rbacv1.UserKind:           true,
	rbacv1.GroupKind:          true,
	rbacv1.ServiceAccountKind: true,
}

var ruleProtocols = map[corev1.Protocol]bool{
	corev1.ProtocolTCP:  true,
	corev1.ProtocolUDP:  true,
	corev1.ProtocolSCTP: true,
}

// Validate checks ref and req without touching the backend.
func Validate(ref api.NamespaceRef, req UpdateRequest) error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(ref.App) == "" {
		add("app is required")
	}
	for _, msg := range validation.IsDNS1123Label(ref.Name) {
		add("namespace %q: %s", ref.Name, msg)
	}

	if info := req.NamespaceInfo; info != nil && info.Clusters != nil {
		for i, c := range *info.Clusters {
			if strings.TrimSpace(c) == "" {
				add("namespace_info.clusters[%d] is empty", i)
			}
		}
	}

	if res := req.Resources; res != nil {
		validateResourceList("resources.requests", res.Requests, add)
		validateResourceList("resources.quota_limits", res.QuotaLimits, add)
		validateResourceList("resources.limits", res.Limits, add)
	}

	if rb := req.RoleBindings; rb != nil && rb.Bindings != nil {
		for i, b := range *rb.Bindings {
			if strings.TrimSpace(b.Subject) == "" {
				add("rolebindings[%d]: subject is required", i)
			}
			if !bindingKinds[b.Kind] {
				add("rolebindings[%d]: type %q must be one of User, Group, ServiceAccount", i, b.Kind)
			}
			if strings.TrimSpace(b.Role) == "" {
				add("rolebindings[%d]: role is required", i)
			}
		}
	}

	if argo := req.ArgoCD; argo != nil {
		switch {
		case argo.NeedArgo == nil:
			add("nsargocd.need_argo is required")
		case *argo.NeedArgo && strings.TrimSpace(argo.GitRepoURL) == "":
			add("nsargocd: gitrepourl is required when need_argo is true")
		}
	}

	if fw := req.EgressFirewall; fw != nil && fw.Rules != nil {
		for i, r := range *fw.Rules {
			validateRule(i, r, add)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func validateResourceList(field string, list api.ResourceList, add func(string, ...interface{})) {
	keys := make([]string, 0, len(list))
	for k := range list {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, msg := range validation.IsQualifiedName(k) {
			add("%s key %q: %s", field, k, msg)
		}
		if _, err := resource.ParseQuantity(list[k]); err != nil {
			add("%s.%s: %q is not a valid quantity", field, k, list[k])
		}
	}
}

func validateRule(i int, r api.EgressRule, add func(string, ...interface{})) {
	switch r.EgressType {
	case api.EgressTypeDNSName:
		for _, msg := range validation.IsDNS1123Subdomain(strings.TrimPrefix(r.To, "*.")) {
			add("egressfirewall.rules[%d]: %q: %s", i, r.To, msg)
		}
	case api.EgressTypeCIDRSelector:
		if _, _, err := net.ParseCIDR(r.To); err != nil {
			add("egressfirewall.rules[%d]: %q is not a CIDR", i, r.To)
		}
	default:
		add("egressfirewall.rules[%d]: egressType %q must be dnsName or cidrSelector", i, r.EgressType)
	}
	for j, p := range r.Ports {
		if !ruleProtocols[corev1.Protocol(strings.ToUpper(p.Protocol))] {
			add("egressfirewall.rules[%d].ports[%d]: protocol %q must be TCP, UDP or SCTP", i, j, p.Protocol)
		}
		for _, msg := range validation.IsValidPortNum(p.Port) {
			add("egressfirewall.rules[%d].ports[%d]: %s", i, j, msg)
		}
	}
}
