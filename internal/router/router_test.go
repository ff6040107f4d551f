package router

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"portalctl/internal/api"
	"portalctl/internal/cache"
	"portalctl/internal/history"
	"portalctl/internal/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	cfg    api.PortalConfig
	cfgErr error
	envs   []string
	envErr error
}

func (f *fakeSession) CurrentUser(context.Context) (api.User, error) {
	return api.User{Username: "tester"}, nil
}

func (f *fakeSession) PortalMode(context.Context) (api.PortalMode, error) {
	return api.PortalMode{Mode: "builder"}, nil
}

func (f *fakeSession) Config(context.Context) (api.PortalConfig, error) {
	return f.cfg, f.cfgErr
}

func (f *fakeSession) Environments(context.Context) ([]string, error) {
	return f.envs, f.envErr
}

type fakeNamespaces struct {
	mu      sync.Mutex
	lists   map[string][]api.Namespace
	errs    map[string]error
	block   map[string]chan struct{}
	started chan struct{}
	calls   []string
}

func (f *fakeNamespaces) List(_ context.Context, env, app string) ([]api.Namespace, error) {
	f.mu.Lock()
	f.calls = append(f.calls, env+"/"+app)
	ch := f.block[app]
	err := f.errs[app]
	list := f.lists[app]
	f.mu.Unlock()

	if ch != nil {
		f.started <- struct{}{}
		<-ch
	}
	return list, err
}

func (f *fakeNamespaces) Get(_ context.Context, ref api.NamespaceRef) (api.Namespace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get "+ref.Env+"/"+ref.App+"/"+ref.Name)
	for _, ns := range f.lists[ref.App] {
		if ns.Name == ref.Name {
			return ns, nil
		}
	}
	return api.Namespace{}, &api.Error{Method: http.MethodGet, StatusCode: http.StatusNotFound, Message: "namespace not found"}
}

func (f *fakeNamespaces) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeAllocations struct{}

func (fakeAllocations) L4Ingress(_ context.Context, env, app string) ([]api.L4IngressAllocation, error) {
	return []api.L4IngressAllocation{{Cluster: env + "-c1", Name: app, IPs: []string{"10.0.0.1"}}}, nil
}

func (fakeAllocations) EgressIPs(_ context.Context, env, app string) ([]api.EgressIPAllocation, error) {
	return []api.EgressIPAllocation{{Cluster: env + "-c1", EgressNameID: app, IPs: []string{"10.1.0.1"}}}, nil
}

type fakeApps struct {
	byEnv map[string][]api.App
}

func (f *fakeApps) List(_ context.Context, env string) ([]api.App, error) {
	return f.byEnv[env], nil
}

type fakeClusters struct{}

func (fakeClusters) List(_ context.Context, env string) ([]api.Cluster, error) {
	return []api.Cluster{{Name: env + "-c1"}}, nil
}

type fixture struct {
	router  *Router
	stack   *history.MemoryStack
	session *fakeSession
	ns      *fakeNamespaces
	apps    *fakeApps
}

func newFixture(t *testing.T, startURL string) *fixture {
	t.Helper()
	session := &fakeSession{
		cfg:  api.PortalConfig{ConfigComplete: true},
		envs: []string{"DEV", "PROD"},
	}
	ns := &fakeNamespaces{
		lists: map[string][]api.Namespace{
			"app1": {{Name: "team-a", Clusters: []string{"c1"}}, {Name: "team-b"}},
			"fast": {{Name: "fast-ns"}},
			"slow": {{Name: "slow-ns"}},
		},
		errs:  map[string]error{},
		block: map[string]chan struct{}{},
	}
	apps := &fakeApps{byEnv: map[string][]api.App{
		"DEV":  {{Name: "app1"}, {Name: "fast"}, {Name: "slow"}},
		"PROD": {{Name: "app1"}},
	}}
	stack := history.NewMemoryStack(startURL, 50)
	r := New(
		Sources{Session: session, Namespaces: ns, Allocations: fakeAllocations{}},
		cache.New(apps, fakeClusters{}),
		history.New(stack),
	)
	t.Cleanup(r.Close)
	return &fixture{router: r, stack: stack, session: session, ns: ns, apps: apps}
}

func TestBootstrap_ReplaysDeepLink(t *testing.T) {
	f := newFixture(t, "/apps/app1/namespaces?env=dev")
	require.NoError(t, f.router.Bootstrap(context.Background()))

	st := f.router.Snapshot()
	assert.Equal(t, route.TabRequestProvisioning, st.Tab)
	assert.Equal(t, "DEV", st.ActiveEnv)
	assert.Equal(t, route.Route{Env: "DEV", View: route.ViewNamespaces, AppName: "app1"}, st.Route)
	assert.Len(t, st.Namespaces, 2)
	assert.Nil(t, st.Pending)
	assert.False(t, st.Loading)
	assert.Equal(t, "tester", st.User.Username)
	assert.Equal(t, "builder", st.PortalMode)
	assert.Equal(t, "/apps/app1/namespaces?env=DEV", f.router.Location())
	assert.Equal(t, 1, f.stack.Len(), "bootstrap replaces instead of pushing")
}

func TestBootstrap_LiteralPathSelectsTab(t *testing.T) {
	f := newFixture(t, "/clusters?env=PROD")
	require.NoError(t, f.router.Bootstrap(context.Background()))

	st := f.router.Snapshot()
	assert.Equal(t, route.TabClusters, st.Tab)
	assert.Equal(t, "PROD", st.ActiveEnv)
	require.Len(t, st.Clusters, 1)
	assert.Equal(t, "PROD-c1", st.Clusters[0].Name)
	assert.Equal(t, "/clusters?env=PROD", f.router.Location())
}

func TestChangeTab_ConfigGate(t *testing.T) {
	for _, tab := range []route.TopTab{route.TabClusters, route.TabPRsAndApproval, route.TabRequestProvisioning} {
		t.Run(tab.String(), func(t *testing.T) {
			f := newFixture(t, "/settings")
			f.session.cfg.ConfigComplete = false
			require.NoError(t, f.router.Bootstrap(context.Background()))

			require.NoError(t, f.router.ChangeTab(context.Background(), tab, "DEV"))

			st := f.router.Snapshot()
			assert.Equal(t, route.TabHome, st.Tab)
			assert.Equal(t, "/home", f.router.Location())
			assert.Empty(t, st.EnvKeys)
		})
	}
}

func TestChangeTab_ClustersResolvesEnv(t *testing.T) {
	f := newFixture(t, "/home")
	require.NoError(t, f.router.Bootstrap(context.Background()))

	require.NoError(t, f.router.ChangeTab(context.Background(), route.TabClusters, ""))
	assert.Equal(t, "/clusters?env=DEV", f.router.Location(), "falls back to the active env")

	require.NoError(t, f.router.ChangeTab(context.Background(), route.TabClusters, "prod"))
	assert.Equal(t, "/clusters?env=PROD", f.router.Location())
	assert.Equal(t, "PROD", f.router.Snapshot().ActiveEnv)
}

func TestChangeTab_ProvisioningResumesParkedDeepLink(t *testing.T) {
	f := newFixture(t, "/apps/app1/egress_ips?env=PROD")
	f.session.cfg.ConfigComplete = false
	require.NoError(t, f.router.Bootstrap(context.Background()))
	assert.Equal(t, route.TabHome, f.router.Snapshot().Tab)

	require.NoError(t, f.router.SetConfigComplete(context.Background(), true))
	require.NoError(t, f.router.ChangeTab(context.Background(), route.TabRequestProvisioning, ""))

	st := f.router.Snapshot()
	assert.Equal(t, route.Route{Env: "PROD", View: route.ViewEgressIPs, AppName: "app1"}, st.Route)
	require.Len(t, st.EgressIPs, 1)
	assert.Equal(t, "/apps/app1/egress_ips?env=PROD", f.router.Location())
}

func TestChangeEnv_StaleIntentIsDiscarded(t *testing.T) {
	f := newFixture(t, "/apps/app1/namespaces?env=A")
	f.session.envs = []string{"B"}
	require.NoError(t, f.router.Bootstrap(context.Background()))

	st := f.router.Snapshot()
	assert.Equal(t, "B", st.ActiveEnv)
	assert.Equal(t, route.Apps("B"), st.Route)
	assert.Nil(t, st.Pending)
	assert.Zero(t, f.ns.callCount(), "stale intent is never replayed")
	assert.Equal(t, "/apps?env=B", f.router.Location())
}

func TestScenario_DeepLinkToMissingApp(t *testing.T) {
	f := newFixture(t, "/apps/ghost/namespaces?env=DEV")
	f.ns.errs["ghost"] = &api.Error{Method: http.MethodGet, StatusCode: http.StatusNotFound, Message: "app not found"}

	err := f.router.Bootstrap(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))

	st := f.router.Snapshot()
	assert.Equal(t, route.TabRequestProvisioning, st.Tab)
	assert.Equal(t, route.Apps("DEV"), st.Route)
	assert.Nil(t, st.Pending)
	assert.Error(t, st.Err)
	assert.False(t, st.Loading)
	assert.Equal(t, "/apps?env=DEV", f.router.Location())
}

func TestScenario_BackFromDetailsLandsOnNamespaceList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/apps?env=DEV")
	require.NoError(t, f.router.Bootstrap(ctx))

	require.NoError(t, f.router.OpenNamespaces(ctx, "app1"))
	require.NoError(t, f.router.OpenNamespaceDetails(ctx, "app1", "team-a"))
	assert.Equal(t, "/apps/app1/ns_details?env=DEV&ns=team-a", f.router.Location())
	require.NotNil(t, f.router.Snapshot().Detail)

	require.True(t, f.router.Back(ctx))

	st := f.router.Snapshot()
	assert.Equal(t, route.Route{Env: "DEV", View: route.ViewNamespaces, AppName: "app1"}, st.Route)
	assert.Nil(t, st.Detail)
	assert.Len(t, st.Namespaces, 2)
	assert.Equal(t, "/apps/app1/namespaces?env=DEV", f.router.Location())

	require.True(t, f.router.Forward(ctx))
	st = f.router.Snapshot()
	assert.Equal(t, route.ViewNamespaceDetails, st.Route.View)
	require.NotNil(t, st.Detail)
	assert.Equal(t, "team-a", st.Detail.Name)
}

func TestPop_AcrossEnvironmentsReplaysRoute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/apps?env=DEV")
	require.NoError(t, f.router.Bootstrap(ctx))
	require.NoError(t, f.router.OpenL4Ingress(ctx, "app1"))
	require.NoError(t, f.router.ChangeEnv(ctx, "PROD"))
	assert.Equal(t, route.Apps("PROD"), f.router.Snapshot().Route)

	require.True(t, f.router.Back(ctx))

	st := f.router.Snapshot()
	assert.Equal(t, "DEV", st.ActiveEnv)
	assert.Equal(t, route.Route{Env: "DEV", View: route.ViewL4Ingress, AppName: "app1"}, st.Route)
	require.Len(t, st.L4Ingress, 1)
	assert.Equal(t, "DEV-c1", st.L4Ingress[0].Cluster)
	assert.Equal(t, "/apps/app1/l4_ingress?env=DEV", f.router.Location())
}

func TestNavigate_LocationBar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/home")
	require.NoError(t, f.router.Bootstrap(ctx))

	require.NoError(t, f.router.Navigate(ctx, "/apps/app1/ns_details?env=PROD&ns=team-b"))
	st := f.router.Snapshot()
	assert.Equal(t, "PROD", st.ActiveEnv)
	assert.Equal(t, route.ViewNamespaceDetails, st.Route.View)
	require.NotNil(t, st.Detail)
	assert.Equal(t, "team-b", st.Detail.Name)

	require.NoError(t, f.router.Navigate(ctx, "/settings"))
	assert.Equal(t, route.TabSettings, f.router.Snapshot().Tab)
	assert.Equal(t, "/settings", f.router.Location())

	require.NoError(t, f.router.Navigate(ctx, "garbage%zz"))
	st = f.router.Snapshot()
	assert.Equal(t, route.TabRequestProvisioning, st.Tab)
	assert.Equal(t, route.Apps("PROD"), st.Route)
}

func TestNavigate_FailedLoadKeepsLocationInSync(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/apps?env=DEV")
	require.NoError(t, f.router.Bootstrap(ctx))
	f.ns.errs["app1"] = errors.New("boom")

	err := f.router.Navigate(ctx, "/apps/app1/namespaces?env=DEV")
	require.EqualError(t, err, "boom")

	st := f.router.Snapshot()
	assert.Equal(t, route.Apps("DEV"), st.Route)
	assert.Equal(t, route.Encode(st.Route), f.router.Location())
	assert.Equal(t, 1, f.stack.Len())
}

func TestNavigate_ResolvesEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     route.Route
		wantURL  string
	}{
		{
			name:     "unknown env lands on the active roster",
			location: "/apps/app1/namespaces?env=NOPE",
			want:     route.Apps("DEV"),
			wantURL:  "/apps?env=DEV",
		},
		{
			name:     "env is matched ignoring case",
			location: "/apps/app1/namespaces?env=prod",
			want:     route.Route{Env: "PROD", View: route.ViewNamespaces, AppName: "app1"},
			wantURL:  "/apps/app1/namespaces?env=PROD",
		},
		{
			name:     "app without a view is normalized to the roster",
			location: "/apps/app1?env=DEV",
			want:     route.Apps("DEV"),
			wantURL:  "/apps?env=DEV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, "/home")
			require.NoError(t, f.router.Bootstrap(ctx))

			require.NoError(t, f.router.Navigate(ctx, tt.location))

			st := f.router.Snapshot()
			assert.Equal(t, tt.want, st.Route)
			assert.Equal(t, tt.wantURL, f.router.Location())
			assert.Equal(t, route.Encode(st.Route), f.router.Location())
		})
	}
}

func TestEnvironmentFailureForcesHome(t *testing.T) {
	f := newFixture(t, "/apps/app1/namespaces?env=DEV")
	f.session.envErr = errors.New("backend down")

	err := f.router.Bootstrap(context.Background())
	require.Error(t, err)

	st := f.router.Snapshot()
	assert.False(t, st.ConfigComplete)
	assert.Empty(t, st.EnvKeys)
	assert.Empty(t, st.ActiveEnv)
	assert.Equal(t, route.TabHome, st.Tab)
	assert.EqualError(t, st.Err, "backend down")
	assert.Equal(t, "/home", f.router.Location())
	assert.Equal(t, 1, f.stack.Len(), "the broken link is replaced, not kept")
}

func TestSetConfigCompleteFalseIsStandingReaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/apps?env=DEV")
	require.NoError(t, f.router.Bootstrap(ctx))
	require.NoError(t, f.router.ChangeTab(ctx, route.TabClusters, ""))

	require.NoError(t, f.router.SetConfigComplete(ctx, false))
	assert.Equal(t, route.TabHome, f.router.Snapshot().Tab)
	assert.Equal(t, "/home", f.router.Location())

	f.session.envErr = errors.New("boom")
	require.Error(t, f.router.SetConfigComplete(ctx, true))
	assert.False(t, f.router.Snapshot().ConfigComplete)
}

func TestGenerationGuard_LastRequestWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/apps?env=DEV")
	require.NoError(t, f.router.Bootstrap(ctx))

	release := make(chan struct{})
	f.ns.mu.Lock()
	f.ns.block["slow"] = release
	f.ns.started = make(chan struct{}, 1)
	f.ns.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- f.router.OpenNamespaces(ctx, "slow") }()
	<-f.ns.started

	require.NoError(t, f.router.OpenNamespaces(ctx, "fast"))
	close(release)
	require.NoError(t, <-done)

	st := f.router.Snapshot()
	assert.Equal(t, "fast", st.Route.AppName)
	require.Len(t, st.Namespaces, 1)
	assert.Equal(t, "fast-ns", st.Namespaces[0].Name)
	assert.Equal(t, "/apps/fast/namespaces?env=DEV", f.router.Location())
}

func TestCommitNamespaceUpdatesListAndDetail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/apps?env=DEV")
	require.NoError(t, f.router.Bootstrap(ctx))
	require.NoError(t, f.router.OpenNamespaces(ctx, "app1"))
	require.NoError(t, f.router.OpenNamespaceDetails(ctx, "app1", "team-a"))

	ref := api.NamespaceRef{Env: "DEV", App: "app1", Name: "team-a"}
	prev, ok := f.router.HeldNamespace(ref)
	require.True(t, ok)

	updated := prev.Clone()
	updated.Clusters = []string{"c1", "c2"}
	f.router.CommitNamespace(ref, updated)

	st := f.router.Snapshot()
	require.NotNil(t, st.Detail)
	assert.Equal(t, []string{"c1", "c2"}, st.Detail.Clusters)
	require.Len(t, st.Namespaces, 2)
	assert.Equal(t, []string{"c1", "c2"}, st.Namespaces[0].Clusters)

	_, ok = f.router.HeldNamespace(api.NamespaceRef{Env: "PROD", App: "app1", Name: "team-a"})
	assert.False(t, ok)
}

func TestRefreshRepublishesActiveRoster(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "/apps?env=DEV")
	require.NoError(t, f.router.Bootstrap(ctx))
	require.Len(t, f.router.Snapshot().Apps, 3)

	f.apps.byEnv["DEV"] = []api.App{{Name: "app1", Clusters: []string{"c1", "c2"}}}
	require.NoError(t, f.router.Refresh(ctx, "DEV"))

	st := f.router.Snapshot()
	require.Len(t, st.Apps, 1)
	assert.Equal(t, []string{"c1", "c2"}, st.Apps[0].Clusters)

	f.apps.byEnv["PROD"] = nil
	require.NoError(t, f.router.Refresh(ctx, "PROD"))
	assert.Len(t, f.router.Snapshot().Apps, 1, "rosters of other environments are left alone")
}

func TestAckErrorClearsSlot(t *testing.T) {
	f := newFixture(t, "/apps/ghost/ns_details?env=DEV&ns=x")
	require.Error(t, f.router.Bootstrap(context.Background()))
	require.Error(t, f.router.Snapshot().Err)

	f.router.AckError()
	assert.NoError(t, f.router.Snapshot().Err)
}
