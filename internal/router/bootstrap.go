package router

import (
	"context"
	"sync"

	"portalctl/internal/api"
	"portalctl/internal/route"
	"portalctl/pkg/logging"
)

// Bootstrap loads the session, portal mode and persisted config concurrently,
// records the current location as the pending intent, loads the environment
// keys when the configuration is complete and enters the tab the location names.
func (r *Router) Bootstrap(ctx context.Context) error {
	var (
		wg                       sync.WaitGroup
		user                     api.User
		mode                     api.PortalMode
		cfg                      api.PortalConfig
		userErr, modeErr, cfgErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		user, userErr = r.src.Session.CurrentUser(ctx)
	}()
	go func() {
		defer wg.Done()
		mode, modeErr = r.src.Session.PortalMode(ctx)
	}()
	go func() {
		defer wg.Done()
		cfg, cfgErr = r.src.Session.Config(ctx)
	}()
	wg.Wait()

	var firstErr error
	for _, err := range []error{userErr, modeErr, cfgErr} {
		if err != nil {
			logging.Error(subsystem, err, "Bootstrap request failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	path, query := route.Split(r.hist.Location())
	intent := route.Decode(path, query)
	complete := cfgErr == nil && cfg.ConfigComplete

	r.update(func(st *State) {
		st.User = user
		st.PortalMode = mode.Mode
		st.Config = cfg
		st.ConfigComplete = complete
		st.Err = firstErr
		st.Pending = nil
		if intent.IsNested() {
			p := intent
			st.Pending = &p
		}
	})

	var keys []string
	if complete {
		var err error
		keys, err = r.src.Session.Environments(ctx)
		if err != nil {
			r.failEnvironments(err)
			return err
		}
	}

	active, ok := matchEnv(keys, intent.Env)
	if !ok && len(keys) > 0 {
		active = keys[0]
	}
	tab := route.ResolveTab(path, complete)

	r.update(func(st *State) {
		st.EnvKeys = keys
		st.ActiveEnv = active
		st.Tab = tab
		st.Route = route.Apps(active)
		if tab != route.TabRequestProvisioning {
			st.Pending = nil
		}
	})
	logging.Info(subsystem, "Bootstrapped at %s (tab=%s env=%q configComplete=%v)", r.hist.Location(), tab, active, complete)

	switch tab {
	case route.TabRequestProvisioning:
		if err := r.changeEnv(ctx, active, navReplace); err != nil {
			return err
		}
	case route.TabClusters:
		if err := r.loadClusters(ctx, active, navReplace); err != nil {
			return err
		}
	}
	return firstErr
}

// ReloadEnvironments re-fetches the environment keys. The active environment is kept
// when it is still listed. A failure marks the configuration incomplete.
func (r *Router) ReloadEnvironments(ctx context.Context) error {
	keys, err := r.src.Session.Environments(ctx)
	if err != nil {
		r.failEnvironments(err)
		return err
	}
	r.update(func(st *State) {
		st.EnvKeys = keys
		active, ok := matchEnv(keys, st.ActiveEnv)
		if !ok && len(keys) > 0 {
			active = keys[0]
		}
		st.ActiveEnv = active
	})
	logging.Info(subsystem, "Loaded %d environments", len(keys))
	return nil
}

// SetConfigComplete flips the configuration gate. Turning it off forces Home;
// turning it on reloads the environment keys.
func (r *Router) SetConfigComplete(ctx context.Context, complete bool) error {
	if !complete {
		r.update(func(st *State) {
			st.ConfigComplete = false
		})
		r.enforceHome()
		return nil
	}
	r.update(func(st *State) { st.ConfigComplete = true })
	return r.ReloadEnvironments(ctx)
}

// failEnvironments downgrades the configuration after the environment list could not be loaded.
func (r *Router) failEnvironments(err error) {
	logging.Error(subsystem, err, "Loading environments failed, treating configuration as incomplete")
	r.cache.Clear()

	r.mu.Lock()
	r.gen++
	r.st.ConfigComplete = false
	r.st.EnvKeys = nil
	r.st.ActiveEnv = ""
	r.st.Route = route.Apps("")
	r.st.Pending = nil
	r.st.Apps = nil
	r.st.Clusters = nil
	resetNested(&r.st)
	r.st.Loading = false
	r.st.Err = err
	r.notifyLocked()

	r.enforceHome()
}

// enforceHome keeps Home selected while the configuration is incomplete. The URL is
// replaced so the gated location is not retained in history.
func (r *Router) enforceHome() {
	r.mu.Lock()
	if r.st.ConfigComplete {
		r.mu.Unlock()
		return
	}
	r.st.Tab = route.TabHome
	r.notifyLocked()

	if path, _ := route.Split(r.hist.Location()); path != route.TabHome.Path() {
		r.hist.ReplaceURL(route.TabHome.Path())
	}
}
