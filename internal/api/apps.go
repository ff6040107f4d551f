package api

import "context"

// AppsGateway lists applications and their IP allocations.
type AppsGateway struct {
	c *Client
}

func (g *AppsGateway) List(ctx context.Context, env string) ([]App, error) {
	var apps []App
	err := g.c.get(ctx, apiPrefix+"/apps", envQuery(env), &apps)
	return apps, err
}

func (g *AppsGateway) L4Ingress(ctx context.Context, env, app string) ([]L4IngressAllocation, error) {
	var items []L4IngressAllocation
	err := g.c.get(ctx, appPath(app)+"/l4_ingress", envQuery(env), &items)
	return items, err
}

func (g *AppsGateway) EgressIPs(ctx context.Context, env, app string) ([]EgressIPAllocation, error) {
	var items []EgressIPAllocation
	err := g.c.get(ctx, appPath(app)+"/egress_ips", envQuery(env), &items)
	return items, err
}

// ClustersGateway lists the clusters of an environment.
type ClustersGateway struct {
	c *Client
}

func (g *ClustersGateway) List(ctx context.Context, env string) ([]Cluster, error) {
	var clusters []Cluster
	err := g.c.get(ctx, apiPrefix+"/clusters", envQuery(env), &clusters)
	return clusters, err
}
