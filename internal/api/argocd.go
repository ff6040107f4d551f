package api

import "context"

// ArgoCDGateway manages the per-namespace ArgoCD association, a delete-on-empty resource.
type ArgoCDGateway struct {
	c *Client
}

func (g *ArgoCDGateway) Upsert(ctx context.Context, ref NamespaceRef, assoc ArgoCDAssociation) (ArgoCDPatch, error) {
	var out ArgoCDPatch
	err := g.c.put(ctx, namespacePath(ref, "/nsargocd"), envQuery(ref.Env), assoc, &out)
	return out, err
}

func (g *ArgoCDGateway) Delete(ctx context.Context, ref NamespaceRef) error {
	return g.c.delete(ctx, namespacePath(ref, "/nsargocd"), envQuery(ref.Env))
}
