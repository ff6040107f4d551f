package router

import (
	"context"
	"strings"

	"portalctl/internal/api"
	"portalctl/pkg/logging"
)

// CommitNamespace writes an updated namespace into the detail buffer and the
// namespace list entry with the same name, when they belong to ref's app and env.
func (r *Router) CommitNamespace(ref api.NamespaceRef, ns api.Namespace) {
	r.update(func(st *State) {
		if !strings.EqualFold(st.ActiveEnv, ref.Env) || st.Route.AppName != ref.App {
			logging.Debug(subsystem, "Namespace %s/%s is not on screen, nothing to commit", ref.App, ref.Name)
			return
		}
		if st.Detail != nil && st.Detail.Name == ref.Name {
			d := ns.Clone()
			st.Detail = &d
		}
		for i := range st.Namespaces {
			if st.Namespaces[i].Name == ref.Name {
				st.Namespaces[i] = ns.Clone()
			}
		}
	})
}

// HeldNamespace returns the namespace held for ref, from the detail buffer or the list.
func (r *Router) HeldNamespace(ref api.NamespaceRef) (api.Namespace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := &r.st
	if !strings.EqualFold(st.ActiveEnv, ref.Env) || st.Route.AppName != ref.App {
		return api.Namespace{}, false
	}
	if st.Detail != nil && st.Detail.Name == ref.Name {
		return st.Detail.Clone(), true
	}
	for _, ns := range st.Namespaces {
		if ns.Name == ref.Name {
			return ns.Clone(), true
		}
	}
	return api.Namespace{}, false
}

// Refresh reloads the rosters held for env after a placement change and
// republishes those that belong to the active environment.
func (r *Router) Refresh(ctx context.Context, env string) error {
	if err := r.cache.Refresh(ctx, env); err != nil {
		return err
	}
	r.update(func(st *State) {
		if !strings.EqualFold(st.ActiveEnv, env) {
			return
		}
		if appsEnv, apps := r.cache.Apps(); appsEnv == env {
			st.Apps = apps
		}
		if clusterEnv, clusters := r.cache.Clusters(); clusterEnv == env {
			st.Clusters = clusters
		}
	})
	return nil
}
