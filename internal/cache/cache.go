// Package cache holds the app roster, cluster roster and per-app cluster
// membership of the active environment.
package cache

import (
	"context"
	"sort"
	"strings"
	"sync"

	"portalctl/internal/api"
	"portalctl/pkg/logging"
)

const subsystem = "Cache"

// AppLister loads the app roster of an environment.
type AppLister interface {
	List(ctx context.Context, env string) ([]api.App, error)
}

// ClusterLister loads the cluster roster of an environment.
type ClusterLister interface {
	List(ctx context.Context, env string) ([]api.Cluster, error)
}

// Cache is safe for concurrent use. Fetch* methods never mutate; Set* commit.
type Cache struct {
	apps     AppLister
	clusters ClusterLister

	mu          sync.RWMutex
	appsEnv     string
	appList     []api.App
	clusterEnv  string
	clusterList []api.Cluster
}

// New creates an empty cache over the given listers.
func New(apps AppLister, clusters ClusterLister) *Cache {
	return &Cache{apps: apps, clusters: clusters}
}

// FetchApps loads the app roster without committing it.
func (c *Cache) FetchApps(ctx context.Context, env string) ([]api.App, error) {
	return c.apps.List(ctx, env)
}

// SetApps commits the app roster of env.
func (c *Cache) SetApps(env string, apps []api.App) {
	sorted := sortApps(apps)

	c.mu.Lock()
	c.appsEnv = env
	c.appList = sorted
	c.mu.Unlock()
	logging.Debug(subsystem, "app roster for %s holds %d apps", env, len(sorted))
}

// FetchClusters loads the cluster roster without committing it.
func (c *Cache) FetchClusters(ctx context.Context, env string) ([]api.Cluster, error) {
	return c.clusters.List(ctx, env)
}

// SetClusters commits the cluster roster of env.
func (c *Cache) SetClusters(env string, clusters []api.Cluster) {
	c.mu.Lock()
	c.clusterEnv = env
	c.clusterList = append([]api.Cluster(nil), clusters...)
	c.mu.Unlock()
	logging.Debug(subsystem, "cluster roster for %s holds %d clusters", env, len(clusters))
}

// Refresh reloads whichever rosters are currently held for env. Rosters that
// switched to another environment while the fetch was in flight are left alone.
func (c *Cache) Refresh(ctx context.Context, env string) error {
	c.mu.RLock()
	refreshApps, refreshClusters := c.appsEnv == env, c.clusterEnv == env
	c.mu.RUnlock()

	if refreshApps {
		apps, err := c.FetchApps(ctx, env)
		if err != nil {
			return err
		}
		c.mu.Lock()
		if c.appsEnv == env {
			c.appList = sortApps(apps)
		}
		c.mu.Unlock()
	}
	if refreshClusters {
		clusters, err := c.FetchClusters(ctx, env)
		if err != nil {
			return err
		}
		c.mu.Lock()
		if c.clusterEnv == env {
			c.clusterList = append([]api.Cluster(nil), clusters...)
		}
		c.mu.Unlock()
	}
	logging.Debug(subsystem, "refreshed rosters for %s (apps=%v clusters=%v)", env, refreshApps, refreshClusters)
	return nil
}

func sortApps(apps []api.App) []api.App {
	sorted := append([]api.App(nil), apps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

// Apps returns the env and a copy of the held app roster.
func (c *Cache) Apps() (string, []api.App) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.appsEnv, append([]api.App(nil), c.appList...)
}

// Clusters returns the env and a copy of the held cluster roster.
func (c *Cache) Clusters() (string, []api.Cluster) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clusterEnv, append([]api.Cluster(nil), c.clusterList...)
}

// HasApp reports whether the held roster contains app (case-insensitive).
func (c *Cache) HasApp(app string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.appList {
		if strings.EqualFold(a.Name, app) {
			return true
		}
	}
	return false
}

// ClustersFor returns the sorted cluster names an app is placed on, combining the
// app roster's own list with the cluster roster's application lists.
func (c *Cache) ClustersFor(app string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set := map[string]struct{}{}
	for _, a := range c.appList {
		if a.Name == app {
			for _, cl := range a.Clusters {
				set[cl] = struct{}{}
			}
		}
	}
	if c.clusterEnv == c.appsEnv {
		for _, cl := range c.clusterList {
			for _, a := range cl.Applications {
				if a == app {
					set[cl.Name] = struct{}{}
				}
			}
		}
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clear drops everything, used when the environment list becomes unavailable.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appsEnv, c.appList = "", nil
	c.clusterEnv, c.clusterList = "", nil
}
