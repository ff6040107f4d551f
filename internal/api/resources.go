package api

import "context"

// ResourcesGateway writes resource quotas and limit ranges.
type ResourcesGateway struct {
	c *Client
}

type resourcesResponse struct {
	Resources ResourcesPatch `json:"resources"`
}

func (g *ResourcesGateway) UpdateQuota(ctx context.Context, ref NamespaceRef, update QuotaUpdate) (ResourcesPatch, error) {
	var out resourcesResponse
	err := g.c.put(ctx, namespacePath(ref, "/resources/quota"), envQuery(ref.Env), update, &out)
	return out.Resources, err
}

func (g *ResourcesGateway) UpdateLimits(ctx context.Context, ref NamespaceRef, update LimitsUpdate) (ResourcesPatch, error) {
	var out resourcesResponse
	err := g.c.put(ctx, namespacePath(ref, "/resources/limits"), envQuery(ref.Env), update, &out)
	return out.Resources, err
}
