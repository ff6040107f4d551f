// Package route maps console locations (path plus query) to Route values and back.
//
// Decoding is total: any location that does not match one of the known shapes
// degrades to the apps view with no app selected.
package route

import (
	"net/url"
	"strings"
)

// View is the nested provisioning view kind.
type View string

const (
	ViewApps             View = "apps"
	ViewNamespaces       View = "namespaces"
	ViewL4Ingress        View = "l4ingress"
	ViewEgressIPs        View = "egressips"
	ViewNamespaceDetails View = "namespaceDetails"
)

const (
	appsPrefix = "apps"
	envParam   = "env"
	nsParam    = "ns"
)

// segmentByView is the trailing path segment for each nested view under /apps/<app>.
var segmentByView = map[View]string{
	ViewNamespaces:       "namespaces",
	ViewL4Ingress:        "l4_ingress",
	ViewEgressIPs:        "egress_ips",
	ViewNamespaceDetails: "ns_details",
}

var viewBySegment = func() map[string]View {
	m := make(map[string]View, len(segmentByView))
	for v, s := range segmentByView {
		m[s] = v
	}
	return m
}()

// Route is the decoded navigable state of the provisioning view.
type Route struct {
	Env       string `json:"env"`
	View      View   `json:"view"`
	AppName   string `json:"appName"`
	Namespace string `json:"namespace"`
}

// Apps returns the neutral apps route for env.
func Apps(env string) Route {
	return Route{Env: env, View: ViewApps}
}

// IsNested reports whether the route points below an app (namespaces, ingress, egress, details).
func (r Route) IsNested() bool {
	_, ok := segmentByView[r.View]
	return ok && r.AppName != ""
}

// Normalize returns the canonical form of r, the form Encode produces and Decode returns.
func (r Route) Normalize() Route {
	if r.View == "" {
		r.View = ViewApps
	}
	if _, ok := segmentByView[r.View]; !ok && r.View != ViewApps {
		r.View = ViewApps
	}
	if r.View != ViewApps && r.AppName == "" {
		r.View = ViewApps
	}
	if r.View != ViewNamespaceDetails {
		r.Namespace = ""
	}
	return r
}

// Decode maps an escaped path and its query to a Route. It never fails.
func Decode(path string, query url.Values) Route {
	env := query.Get(envParam)
	fallback := Apps(env)

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[0] != appsPrefix {
		return fallback
	}
	segments = segments[1:]

	switch len(segments) {
	case 0:
		return fallback
	case 1, 2:
	default:
		return fallback
	}

	app, err := url.PathUnescape(segments[0])
	if err != nil || app == "" {
		return fallback
	}
	if len(segments) == 1 {
		return Route{Env: env, View: ViewApps, AppName: app}
	}

	view, ok := viewBySegment[segments[1]]
	if !ok {
		return fallback
	}
	r := Route{Env: env, View: view, AppName: app}
	if view == ViewNamespaceDetails {
		r.Namespace = query.Get(nsParam)
	}
	return r
}

// DecodeURL parses a raw location such as "/apps/a/namespaces?env=DEV".
func DecodeURL(raw string) Route {
	path, query := Split(raw)
	return Decode(path, query)
}

// Split separates a raw location into its escaped path and parsed query.
// Unparseable input yields an empty path and query.
func Split(raw string) (string, url.Values) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", url.Values{}
	}
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		query = url.Values{}
	}
	return u.EscapedPath(), query
}

// Encode renders r as a location. env is appended only when non-empty and ns only for namespaceDetails.
func Encode(r Route) string {
	r = r.Normalize()

	var b strings.Builder
	b.WriteString("/" + appsPrefix)
	if r.AppName != "" {
		b.WriteString("/" + url.PathEscape(r.AppName))
		if seg, ok := segmentByView[r.View]; ok {
			b.WriteString("/" + seg)
		}
	}

	q := url.Values{}
	if r.Env != "" {
		q.Set(envParam, r.Env)
	}
	if r.View == ViewNamespaceDetails && r.Namespace != "" {
		q.Set(nsParam, r.Namespace)
	}
	if len(q) > 0 {
		b.WriteString("?" + q.Encode())
	}
	return b.String()
}
