package api

// Gateways bundles one gateway per backend sub-resource family over a shared envelope.
type Gateways struct {
	Session        *SessionGateway
	Apps           *AppsGateway
	Clusters       *ClustersGateway
	Namespaces     *NamespacesGateway
	Resources      *ResourcesGateway
	RoleBindings   *RoleBindingsGateway
	ArgoCD         *ArgoCDGateway
	EgressFirewall *EgressFirewallGateway
}

// NewGateways creates all gateways over c.
func NewGateways(c *Client) *Gateways {
	return &Gateways{
		Session:        &SessionGateway{c: c},
		Apps:           &AppsGateway{c: c},
		Clusters:       &ClustersGateway{c: c},
		Namespaces:     &NamespacesGateway{c: c},
		Resources:      &ResourcesGateway{c: c},
		RoleBindings:   &RoleBindingsGateway{c: c},
		ArgoCD:         &ArgoCDGateway{c: c},
		EgressFirewall: &EgressFirewallGateway{c: c},
	}
}
