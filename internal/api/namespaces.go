package api

import "context"

// NamespacesGateway reads namespaces and writes their basic and egress info.
type NamespacesGateway struct {
	c *Client
}

func (g *NamespacesGateway) List(ctx context.Context, env, app string) ([]Namespace, error) {
	var items []Namespace
	err := g.c.get(ctx, appPath(app)+"/namespaces", envQuery(env), &items)
	return items, err
}

func (g *NamespacesGateway) Get(ctx context.Context, ref NamespaceRef) (Namespace, error) {
	var ns Namespace
	err := g.c.get(ctx, namespacePath(ref, ""), envQuery(ref.Env), &ns)
	return ns, err
}

// UpdateBasic writes the cluster placement of a namespace.
func (g *NamespacesGateway) UpdateBasic(ctx context.Context, ref NamespaceRef, clusters []string) (NamespaceInfoPatch, error) {
	if clusters == nil {
		clusters = []string{}
	}
	var out NamespaceInfoPatch
	err := g.c.put(ctx, namespacePath(ref, "/namespace_info/basic"), envQuery(ref.Env), NamespaceInfoPatch{Clusters: &clusters}, &out)
	return out, err
}

// UpdateEgress writes the egress name and pod based egress flag; nil fields are not sent.
func (g *NamespacesGateway) UpdateEgress(ctx context.Context, ref NamespaceRef, patch NamespaceInfoPatch) (NamespaceInfoPatch, error) {
	body := NamespaceInfoPatch{EgressNameID: patch.EgressNameID, EnablePodBasedEgressIP: patch.EnablePodBasedEgressIP}
	var out NamespaceInfoPatch
	err := g.c.put(ctx, namespacePath(ref, "/namespace_info/egress"), envQuery(ref.Env), body, &out)
	return out, err
}
