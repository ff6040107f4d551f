package router

import (
	"context"
	"fmt"
	"strings"

	"portalctl/internal/api"
	"portalctl/internal/history"
	"portalctl/internal/route"
	"portalctl/pkg/logging"
)

// ChangeTab selects a top tab. Gated tabs redirect to Home while the configuration
// is incomplete. env is optional and only used by the Clusters and provisioning tabs.
func (r *Router) ChangeTab(ctx context.Context, tab route.TopTab, env string) error {
	r.mu.Lock()
	complete := r.st.ConfigComplete
	r.mu.Unlock()

	if tab.RequiresConfig() && !complete {
		logging.Info(subsystem, "Tab %s requires a complete configuration, redirecting to Home", tab)
		r.enforceHome()
		return nil
	}

	switch tab {
	case route.TabClusters:
		return r.loadClusters(ctx, r.effectiveEnv(env), navPush)
	case route.TabRequestProvisioning:
		return r.enterProvisioning(ctx, env)
	default:
		r.update(func(st *State) { st.Tab = tab })
		r.hist.PushURL(tab.Path())
		return nil
	}
}

// effectiveEnv resolves the requested env, else the active env, else the first key.
func (r *Router) effectiveEnv(requested string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if k, ok := matchEnv(r.st.EnvKeys, requested); ok {
		return k
	}
	if r.st.ActiveEnv != "" {
		return r.st.ActiveEnv
	}
	if len(r.st.EnvKeys) > 0 {
		return r.st.EnvKeys[0]
	}
	return ""
}

// enterProvisioning re-derives the pending intent from the current location so
// a deep link that was parked behind another tab can be resumed.
func (r *Router) enterProvisioning(ctx context.Context, env string) error {
	path, query := route.Split(r.hist.Location())
	_, literal := route.LiteralTab(path)

	var intent route.Route
	if !literal {
		intent = route.Decode(path, query)
	}
	target := env
	if target == "" {
		target = intent.Env
	}
	target = r.effectiveEnv(target)

	r.update(func(st *State) {
		st.Tab = route.TabRequestProvisioning
		st.Pending = nil
		if intent.IsNested() {
			p := intent
			st.Pending = &p
		}
	})

	mode := navPush
	if !literal {
		mode = navReplace
	}
	return r.changeEnv(ctx, target, mode)
}

// ChangeEnv switches the active environment from an explicit user choice.
func (r *Router) ChangeEnv(ctx context.Context, env string) error {
	r.mu.Lock()
	tab := r.st.Tab
	key, ok := matchEnv(r.st.EnvKeys, env)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown environment %q", env)
	}

	switch tab {
	case route.TabClusters:
		return r.loadClusters(ctx, key, navPush)
	case route.TabRequestProvisioning:
		return r.changeEnv(ctx, key, navPush)
	default:
		r.update(func(st *State) { st.ActiveEnv = key })
		return nil
	}
}

// changeEnv reloads the app roster for env, resets the nested view to apps and
// replays the pending intent when it was recorded for env. The intent is cleared
// either way.
func (r *Router) changeEnv(ctx context.Context, env string, mode navMode) error {
	r.mu.Lock()
	r.gen++
	g := r.gen
	r.st.ActiveEnv = env
	r.st.Route = route.Apps(env)
	resetNested(&r.st)
	r.st.Loading = env != ""
	if env == "" {
		r.st.Pending = nil
	}
	r.notifyLocked()

	r.navigate(mode, route.Apps(env))
	if env == "" {
		return nil
	}

	apps, err := r.cache.FetchApps(ctx, env)
	if err != nil {
		if r.commit(g, "apps of "+env, func(st *State) {
			st.Err = err
			st.Pending = nil
		}) {
			logging.Error(subsystem, err, "Loading apps of %s failed", env)
		}
		return err
	}

	var pending *route.Route
	committed := r.commit(g, "apps of "+env, func(st *State) {
		r.cache.SetApps(env, apps)
		_, st.Apps = r.cache.Apps()
		pending, st.Pending = st.Pending, nil
	})
	if !committed || pending == nil {
		return nil
	}

	if !strings.EqualFold(pending.Env, env) {
		logging.Info(subsystem, "Discarding stale intent %s (recorded for %q, active %q)", route.Encode(*pending), pending.Env, env)
		return nil
	}
	if pending.View == route.ViewNamespaceDetails && pending.Namespace == "" {
		logging.Info(subsystem, "Discarding intent %s without namespace", route.Encode(*pending))
		return nil
	}

	replayMode := navReplace
	if mode == navNone {
		replayMode = navNone
	}
	target := *pending
	target.Env = env
	logging.Debug(subsystem, "Replaying intent %s", route.Encode(target))
	return r.open(ctx, target, replayMode)
}

// loadClusters selects the Clusters tab for env and loads its cluster roster.
func (r *Router) loadClusters(ctx context.Context, env string, mode navMode) error {
	r.mu.Lock()
	r.gen++
	g := r.gen
	r.st.Tab = route.TabClusters
	r.st.ActiveEnv = env
	r.st.Loading = env != ""
	r.notifyLocked()

	r.navigateURL(mode, route.PathWithEnv(route.TabClusters.Path(), env))
	if env == "" {
		return nil
	}

	clusters, err := r.cache.FetchClusters(ctx, env)
	if err != nil {
		r.fail(g, "clusters of "+env, err)
		return err
	}
	r.commit(g, "clusters of "+env, func(st *State) {
		r.cache.SetClusters(env, clusters)
		_, st.Clusters = r.cache.Clusters()
	})
	return nil
}

// OpenNamespaces shows the namespace list of app in the active environment.
func (r *Router) OpenNamespaces(ctx context.Context, app string) error {
	return r.open(ctx, route.Route{View: route.ViewNamespaces, AppName: app}, navPush)
}

// OpenL4Ingress shows the L4 ingress allocations of app.
func (r *Router) OpenL4Ingress(ctx context.Context, app string) error {
	return r.open(ctx, route.Route{View: route.ViewL4Ingress, AppName: app}, navPush)
}

// OpenEgressIPs shows the egress IP allocations of app.
func (r *Router) OpenEgressIPs(ctx context.Context, app string) error {
	return r.open(ctx, route.Route{View: route.ViewEgressIPs, AppName: app}, navPush)
}

// OpenNamespaceDetails shows one namespace of app.
func (r *Router) OpenNamespaceDetails(ctx context.Context, app, namespace string) error {
	if namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	return r.open(ctx, route.Route{View: route.ViewNamespaceDetails, AppName: app, Namespace: namespace}, navPush)
}

// BackToApps leaves the nested view for the app roster of the active environment.
func (r *Router) BackToApps(ctx context.Context) error {
	r.mu.Lock()
	env := r.st.ActiveEnv
	r.mu.Unlock()

	if cached, _ := r.cache.Apps(); !strings.EqualFold(cached, env) {
		return r.changeEnv(ctx, env, navPush)
	}
	r.mu.Lock()
	r.gen++
	r.st.Tab = route.TabRequestProvisioning
	r.st.Route = route.Apps(env)
	r.st.Loading = false
	resetNested(&r.st)
	r.notifyLocked()
	r.hist.Push(route.Apps(env))
	return nil
}

// open loads the data behind a nested route and enters it on success. The route's
// env is the active environment.
func (r *Router) open(ctx context.Context, target route.Route, mode navMode) error {
	if target.AppName == "" {
		return fmt.Errorf("app name is required")
	}

	r.mu.Lock()
	r.gen++
	g := r.gen
	target.Env = r.st.ActiveEnv
	r.st.Loading = true
	r.notifyLocked()

	env, app := target.Env, target.AppName
	what := fmt.Sprintf("%s of %s", target.View, app)

	var apply func(st *State)
	switch target.View {
	case route.ViewNamespaces:
		list, err := r.src.Namespaces.List(ctx, env, app)
		if err != nil {
			r.fail(g, what, err)
			return err
		}
		apply = func(st *State) { st.Namespaces = list }
	case route.ViewL4Ingress:
		items, err := r.src.Allocations.L4Ingress(ctx, env, app)
		if err != nil {
			r.fail(g, what, err)
			return err
		}
		apply = func(st *State) { st.L4Ingress = items }
	case route.ViewEgressIPs:
		items, err := r.src.Allocations.EgressIPs(ctx, env, app)
		if err != nil {
			r.fail(g, what, err)
			return err
		}
		apply = func(st *State) { st.EgressIPs = items }
	case route.ViewNamespaceDetails:
		ns, err := r.src.Namespaces.Get(ctx, api.NamespaceRef{Env: env, App: app, Name: target.Namespace})
		if err != nil {
			r.fail(g, what, err)
			return err
		}
		apply = func(st *State) { st.Detail = &ns }
	default:
		err := fmt.Errorf("view %q cannot be opened", target.View)
		r.fail(g, what, err)
		return err
	}

	if !r.commit(g, what, func(st *State) {
		// the list stays held under its details so edits land in both
		keepList := target.View == route.ViewNamespaceDetails && st.Route.AppName == app
		list := st.Namespaces
		st.Tab = route.TabRequestProvisioning
		st.Route = target
		resetNested(st)
		if keepList {
			st.Namespaces = list
		}
		apply(st)
	}) {
		return nil
	}
	r.navigate(mode, target)
	return nil
}

// Back moves one entry back in history. It returns false at the start of history.
func (r *Router) Back(ctx context.Context) bool {
	return r.hist.Back(ctx)
}

// Forward moves one entry forward in history. It returns false at the end of history.
func (r *Router) Forward(ctx context.Context) bool {
	return r.hist.Forward(ctx)
}

// Navigate jumps to a typed location, as if it were entered in a location bar.
func (r *Router) Navigate(ctx context.Context, raw string) error {
	path, query := route.Split(strings.TrimSpace(raw))
	if tab, ok := route.LiteralTab(path); ok {
		return r.ChangeTab(ctx, tab, query.Get("env"))
	}
	rt := route.Decode(path, query)
	loc := route.Encode(rt)
	p, _ := route.Split(loc)
	err := r.reconcile(ctx, history.PopEvent{URL: loc, Path: p, Route: rt})

	// history records what was entered, which after a failed load or an
	// unknown env is not what was typed
	if entered := r.enteredLocation(); entered != r.hist.Location() {
		r.hist.PushURL(entered)
	}
	return err
}

// enteredLocation encodes the tab and route the router currently holds.
func (r *Router) enteredLocation() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.st.Tab {
	case route.TabRequestProvisioning:
		return route.Encode(r.st.Route)
	case route.TabClusters:
		return route.PathWithEnv(route.TabClusters.Path(), r.st.ActiveEnv)
	}
	return r.st.Tab.Path()
}

// Reload re-runs the load behind the current location without touching history.
func (r *Router) Reload(ctx context.Context) error {
	loc := r.hist.Location()
	path, query := route.Split(loc)
	r.mu.Lock()
	env := r.st.ActiveEnv
	tab := r.st.Tab
	r.mu.Unlock()

	switch tab {
	case route.TabClusters:
		return r.loadClusters(ctx, env, navNone)
	case route.TabRequestProvisioning:
		rt := route.Decode(path, query)
		if rt.IsNested() {
			return r.open(ctx, rt, navNone)
		}
		return r.changeEnv(ctx, env, navNone)
	}
	return r.ReloadEnvironments(ctx)
}

func (r *Router) handlePop(ctx context.Context, ev history.PopEvent) {
	if err := r.reconcile(ctx, ev); err != nil {
		logging.Debug(subsystem, "Reconciling %s after pop failed: %v", ev.URL, err)
	}
}

// reconcile re-derives the tab and route from a location that is already current in history.
func (r *Router) reconcile(ctx context.Context, ev history.PopEvent) error {
	r.mu.Lock()
	complete := r.st.ConfigComplete
	active := r.st.ActiveEnv
	keys := r.st.EnvKeys
	r.mu.Unlock()

	tab := route.ResolveTab(ev.Path, complete)
	if !complete {
		if tab == route.TabSettings {
			r.update(func(st *State) { st.Tab = tab })
			return nil
		}
		r.enforceHome()
		return nil
	}

	env := active
	rt := ev.Route
	if k, ok := matchEnv(keys, rt.Env); ok {
		env = k
	} else if rt.Env != "" {
		logging.Info(subsystem, "Unknown environment %q in %s, showing apps of %q", rt.Env, ev.URL, active)
		rt = route.Apps(active)
	}

	switch tab {
	case route.TabClusters:
		return r.loadClusters(ctx, env, navNone)
	case route.TabRequestProvisioning:
	default:
		r.update(func(st *State) { st.Tab = tab })
		return nil
	}

	r.update(func(st *State) {
		st.Tab = route.TabRequestProvisioning
		if rt.IsNested() {
			resetNested(st)
		}
	})

	if !strings.EqualFold(env, active) {
		if rt.IsNested() {
			r.update(func(st *State) {
				p := rt
				st.Pending = &p
			})
		}
		return r.changeEnv(ctx, env, navNone)
	}
	if rt.IsNested() {
		if rt.View == route.ViewNamespaceDetails && rt.Namespace == "" {
			return r.changeEnv(ctx, env, navNone)
		}
		return r.open(ctx, rt, navNone)
	}
	if cached, _ := r.cache.Apps(); !strings.EqualFold(cached, env) {
		return r.changeEnv(ctx, env, navNone)
	}
	r.mu.Lock()
	r.gen++
	r.st.Route = route.Apps(env)
	r.st.Loading = false
	resetNested(&r.st)
	r.notifyLocked()
	return nil
}
