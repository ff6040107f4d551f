package api

import "context"

// EgressFirewallGateway manages the egress firewall object, a delete-on-empty resource.
type EgressFirewallGateway struct {
	c *Client
}

type rulesBody struct {
	Rules []EgressRule `json:"rules"`
}

// Upsert stores rules. The returned list is nil when the backend did not echo the rules back.
func (g *EgressFirewallGateway) Upsert(ctx context.Context, ref NamespaceRef, rules []EgressRule) ([]EgressRule, error) {
	var out struct {
		Rules []EgressRule `json:"rules"`
	}
	err := g.c.put(ctx, namespacePath(ref, "/egressfirewall"), envQuery(ref.Env), rulesBody{Rules: rules}, &out)
	return out.Rules, err
}

func (g *EgressFirewallGateway) Delete(ctx context.Context, ref NamespaceRef) error {
	return g.c.delete(ctx, namespacePath(ref, "/egressfirewall"), envQuery(ref.Env))
}
