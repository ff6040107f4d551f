package api

import "context"

// SessionGateway reads the user, portal mode and configuration summary.
type SessionGateway struct {
	c *Client
}

func (g *SessionGateway) CurrentUser(ctx context.Context) (User, error) {
	var u User
	err := g.c.get(ctx, apiPrefix+"/me", nil, &u)
	return u, err
}

func (g *SessionGateway) PortalMode(ctx context.Context) (PortalMode, error) {
	var m PortalMode
	err := g.c.get(ctx, apiPrefix+"/portal/mode", nil, &m)
	return m, err
}

func (g *SessionGateway) Config(ctx context.Context) (PortalConfig, error) {
	var cfg PortalConfig
	err := g.c.get(ctx, apiPrefix+"/config", nil, &cfg)
	return cfg, err
}

// Environments returns the environment keys in backend order.
func (g *SessionGateway) Environments(ctx context.Context) ([]string, error) {
	var resp struct {
		Envs []string `json:"envs"`
	}
	if err := g.c.get(ctx, apiPrefix+"/envs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Envs, nil
}
