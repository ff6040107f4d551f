// Package router is the console's view router: a state machine over the top
// tab, the nested provisioning route, the configuration gate and the active
// environment, kept in sync with a history adapter.
//
// Network calls run outside the router's lock. Every load captures a
// generation number when it starts and commits its result only if no newer
// load began in the meantime, so the last request wins regardless of the
// order responses arrive in.
package router

import (
	"context"
	"strings"
	"sync"

	"portalctl/internal/api"
	"portalctl/internal/cache"
	"portalctl/internal/history"
	"portalctl/internal/route"
	"portalctl/pkg/logging"
)

const subsystem = "Router"

// SessionSource provides the session, portal mode, persisted config and environment keys.
type SessionSource interface {
	CurrentUser(ctx context.Context) (api.User, error)
	PortalMode(ctx context.Context) (api.PortalMode, error)
	Config(ctx context.Context) (api.PortalConfig, error)
	Environments(ctx context.Context) ([]string, error)
}

// NamespaceSource reads namespaces of an app.
type NamespaceSource interface {
	List(ctx context.Context, env, app string) ([]api.Namespace, error)
	Get(ctx context.Context, ref api.NamespaceRef) (api.Namespace, error)
}

// AllocationSource reads the ingress and egress IP allocations of an app.
type AllocationSource interface {
	L4Ingress(ctx context.Context, env, app string) ([]api.L4IngressAllocation, error)
	EgressIPs(ctx context.Context, env, app string) ([]api.EgressIPAllocation, error)
}

// Sources bundles the read side collaborators of the router.
type Sources struct {
	Session     SessionSource
	Namespaces  NamespaceSource
	Allocations AllocationSource
}

// SourcesFrom adapts the HTTP gateways.
func SourcesFrom(gw *api.Gateways) Sources {
	return Sources{Session: gw.Session, Namespaces: gw.Namespaces, Allocations: gw.Apps}
}

// State is a snapshot of everything the router owns.
type State struct {
	Tab            route.TopTab
	Route          route.Route
	ConfigComplete bool
	EnvKeys        []string
	ActiveEnv      string
	// Pending is the deep link waiting for its environment's app roster.
	Pending *route.Route

	User       api.User
	PortalMode string
	Config     api.PortalConfig

	Loading bool
	Err     error

	Apps       []api.App
	Clusters   []api.Cluster
	Namespaces []api.Namespace
	L4Ingress  []api.L4IngressAllocation
	EgressIPs  []api.EgressIPAllocation
	Detail     *api.Namespace
}

// navMode says what a transition does to history.
type navMode int

const (
	navNone navMode = iota
	navPush
	navReplace
)

// Router is safe for concurrent use.
type Router struct {
	src   Sources
	cache *cache.Cache
	hist  *history.Adapter

	mu  sync.Mutex
	st  State
	gen uint64

	unsubscribe func()
	onChange    func(State)
}

// New creates a router and subscribes it to pop events of hist.
func New(src Sources, c *cache.Cache, hist *history.Adapter) *Router {
	r := &Router{src: src, cache: c, hist: hist}
	r.st.Route = route.Apps("")
	r.unsubscribe = hist.OnPop(r.handlePop)
	return r
}

// Close detaches the router from its history adapter.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// OnChange registers fn to be called with a snapshot after every committed transition.
func (r *Router) OnChange(fn func(State)) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (r *Router) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Location returns the current history location.
func (r *Router) Location() string {
	return r.hist.Location()
}

// AckError clears the current error slot.
func (r *Router) AckError() {
	r.update(func(st *State) { st.Err = nil })
}

func (r *Router) snapshotLocked() State {
	s := r.st
	s.EnvKeys = append([]string(nil), r.st.EnvKeys...)
	s.Apps = append([]api.App(nil), r.st.Apps...)
	s.Clusters = append([]api.Cluster(nil), r.st.Clusters...)
	s.Namespaces = make([]api.Namespace, len(r.st.Namespaces))
	for i, ns := range r.st.Namespaces {
		s.Namespaces[i] = ns.Clone()
	}
	if r.st.Namespaces == nil {
		s.Namespaces = nil
	}
	s.L4Ingress = append([]api.L4IngressAllocation(nil), r.st.L4Ingress...)
	s.EgressIPs = append([]api.EgressIPAllocation(nil), r.st.EgressIPs...)
	if r.st.Detail != nil {
		d := r.st.Detail.Clone()
		s.Detail = &d
	}
	if r.st.Pending != nil {
		p := *r.st.Pending
		s.Pending = &p
	}
	return s
}

// update applies fn under the lock and notifies the change listener.
func (r *Router) update(fn func(st *State)) {
	r.mu.Lock()
	fn(&r.st)
	r.notifyLocked()
}

// notifyLocked releases the lock held by the caller and publishes a snapshot.
func (r *Router) notifyLocked() {
	listener := r.onChange
	var snap State
	if listener != nil {
		snap = r.snapshotLocked()
	}
	r.mu.Unlock()
	if listener != nil {
		listener(snap)
	}
}

// begin starts a guarded load and returns its generation.
func (r *Router) begin() uint64 {
	r.mu.Lock()
	r.gen++
	g := r.gen
	r.st.Loading = true
	r.notifyLocked()
	return g
}

// commit applies fn only if g is still the newest generation.
func (r *Router) commit(g uint64, what string, fn func(st *State)) bool {
	r.mu.Lock()
	if g != r.gen {
		r.mu.Unlock()
		logging.Debug(subsystem, "Discarding stale %s (generation %d superseded)", what, g)
		return false
	}
	fn(&r.st)
	r.st.Loading = false
	r.notifyLocked()
	return true
}

// fail records err in the error slot if g is still the newest generation.
func (r *Router) fail(g uint64, what string, err error) {
	if r.commit(g, what, func(st *State) { st.Err = err }) {
		logging.Error(subsystem, err, "Loading %s failed", what)
	}
}

func resetNested(st *State) {
	st.Namespaces = nil
	st.L4Ingress = nil
	st.EgressIPs = nil
	st.Detail = nil
}

// matchEnv returns the key of keys equal to env ignoring case.
func matchEnv(keys []string, env string) (string, bool) {
	if env == "" {
		return "", false
	}
	for _, k := range keys {
		if strings.EqualFold(k, env) {
			return k, true
		}
	}
	return "", false
}

func (r *Router) navigate(mode navMode, rt route.Route) {
	switch mode {
	case navPush:
		r.hist.Push(rt)
	case navReplace:
		r.hist.Replace(rt)
	}
}

func (r *Router) navigateURL(mode navMode, url string) {
	switch mode {
	case navPush:
		r.hist.PushURL(url)
	case navReplace:
		r.hist.ReplaceURL(url)
	}
}
