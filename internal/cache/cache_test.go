package cache

import (
	"context"
	"errors"
	"testing"

	"portalctl/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApps struct {
	byEnv map[string][]api.App
	err   error
	calls int
}

func (f *fakeApps) List(_ context.Context, env string) ([]api.App, error) {
	f.calls++
	return f.byEnv[env], f.err
}

type fakeClusters struct {
	byEnv map[string][]api.Cluster
	calls int
}

func (f *fakeClusters) List(_ context.Context, env string) ([]api.Cluster, error) {
	f.calls++
	return f.byEnv[env], nil
}

func TestCache_SetAndQuery(t *testing.T) {
	c := New(&fakeApps{}, &fakeClusters{})
	c.SetApps("DEV", []api.App{{Name: "zeta", Clusters: []string{"c2"}}, {Name: "alpha"}})
	c.SetClusters("DEV", []api.Cluster{
		{Name: "c1", Applications: []string{"zeta", "alpha"}},
		{Name: "c3", Applications: []string{"other"}},
	})

	env, apps := c.Apps()
	assert.Equal(t, "DEV", env)
	require.Len(t, apps, 2)
	assert.Equal(t, "alpha", apps[0].Name, "roster is sorted by name")

	assert.True(t, c.HasApp("ZETA"))
	assert.False(t, c.HasApp("missing"))
	assert.Equal(t, []string{"c1", "c2"}, c.ClustersFor("zeta"))
	assert.Equal(t, []string{"c1"}, c.ClustersFor("alpha"))

	c.Clear()
	env, apps = c.Apps()
	assert.Empty(t, env)
	assert.Empty(t, apps)
}

func TestCache_ClusterMembershipIgnoresOtherEnv(t *testing.T) {
	c := New(&fakeApps{}, &fakeClusters{})
	c.SetApps("DEV", []api.App{{Name: "a"}})
	c.SetClusters("PROD", []api.Cluster{{Name: "p1", Applications: []string{"a"}}})

	assert.Empty(t, c.ClustersFor("a"))
}

func TestCache_RefreshOnlyHeldEnv(t *testing.T) {
	apps := &fakeApps{byEnv: map[string][]api.App{"DEV": {{Name: "a", TotalNamespaces: 3}}}}
	clusters := &fakeClusters{byEnv: map[string][]api.Cluster{"DEV": {{Name: "c1"}}}}
	c := New(apps, clusters)
	c.SetApps("DEV", []api.App{{Name: "a", TotalNamespaces: 2}})

	require.NoError(t, c.Refresh(context.Background(), "DEV"))
	_, got := c.Apps()
	assert.Equal(t, 3, got[0].TotalNamespaces)
	assert.Equal(t, 0, clusters.calls, "no cluster roster held, nothing to refresh")

	require.NoError(t, c.Refresh(context.Background(), "PROD"))
	assert.Equal(t, 1, apps.calls, "other environments are not fetched")
}

func TestCache_RefreshError(t *testing.T) {
	apps := &fakeApps{err: errors.New("down")}
	c := New(apps, &fakeClusters{})
	c.SetApps("DEV", []api.App{{Name: "a"}})

	assert.EqualError(t, c.Refresh(context.Background(), "DEV"), "down")
	_, got := c.Apps()
	assert.Len(t, got, 1, "failed refresh keeps the previous roster")
}
