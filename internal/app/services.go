package app

import (
	"portalctl/internal/api"
	"portalctl/internal/cache"
	"portalctl/internal/config"
	"portalctl/internal/history"
	"portalctl/internal/orchestrator"
	"portalctl/internal/router"
)

// Services holds the backend gateways and the console state machinery built on them.
type Services struct {
	Client       *api.Client
	Gateways     *api.Gateways
	Cache        *cache.Cache
	History      *history.Adapter
	Router       *router.Router
	Orchestrator *orchestrator.Orchestrator
}

// InitializeServices wires the gateways, roster cache, history, router and
// update orchestrator for one console session.
func InitializeServices(cfg config.PortalctlConfig, startURL string) *Services {
	client := api.NewClient(cfg.API, nil)
	gw := api.NewGateways(client)

	if startURL == "" {
		startURL = cfg.Console.StartURL
	}
	if startURL == "" {
		startURL = config.DefaultStartURL
	}

	c := cache.New(gw.Apps, gw.Clusters)
	hist := history.New(history.NewMemoryStack(startURL, cfg.Console.HistoryLimit))
	r := router.New(router.SourcesFrom(gw), c, hist)

	// The router is the canonical namespace store and republishes rosters after placement changes.
	orch := orchestrator.New(orchestrator.WritersFrom(gw), r, r)

	return &Services{
		Client:       client,
		Gateways:     gw,
		Cache:        c,
		History:      hist,
		Router:       r,
		Orchestrator: orch,
	}
}

// Close releases the router's history subscription.
func (s *Services) Close() {
	s.Router.Close()
}
