package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portalctl/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the backend saw.
type recordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	Accept      string
	ContentType string
	RequestID   string
	Auth        string
	Body        string
}

func newTestBackend(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Gateways, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			Accept:      r.Header.Get("Accept"),
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
			Auth:        r.Header.Get("Authorization"),
			Body:        string(body),
		})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(config.APIConfig{BaseURL: srv.URL + "/", Token: "tok"}, srv.Client())
	return NewGateways(client), &seen
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestEnvelope_Headers(t *testing.T) {
	gws, seen := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"clusters": []string{"c1"}})
	})
	ref := NamespaceRef{Env: "DEV", App: "app1", Name: "team-a"}

	_, err := gws.Namespaces.UpdateBasic(context.Background(), ref, []string{"c1"})
	require.NoError(t, err)
	require.NoError(t, gws.ArgoCD.Delete(context.Background(), ref))

	require.Len(t, *seen, 2)
	put, del := (*seen)[0], (*seen)[1]

	assert.Equal(t, http.MethodPut, put.Method)
	assert.Equal(t, "/api/v1/apps/app1/namespaces/team-a/namespace_info/basic", put.Path)
	assert.Equal(t, "env=DEV", put.RawQuery)
	assert.Equal(t, "application/json", put.Accept)
	assert.Equal(t, "application/json", put.ContentType)
	assert.NotEmpty(t, put.RequestID)
	assert.Equal(t, "Bearer tok", put.Auth)
	assert.JSONEq(t, `{"clusters":["c1"]}`, put.Body)

	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/api/v1/apps/app1/namespaces/team-a/nsargocd", del.Path)
	assert.Equal(t, "application/json", del.Accept)
	assert.Empty(t, del.ContentType, "requests without a body carry no content type")
	assert.NotEqual(t, put.RequestID, del.RequestID)
}

func TestEnvelope_FailureMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", http.StatusConflict, `{"detail":"namespace is locked"}`, "namespace is locked"},
		{"detail structured", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body"]}]}`, `[{"loc":["body"]}]`},
		{"raw body", http.StatusInternalServerError, "upstream exploded\n", "upstream exploded"},
		{"json without detail", http.StatusBadRequest, `{"error":"x"}`, `{"error":"x"}`},
		{"empty body", http.StatusNotFound, "", "HTTP 404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gws, _ := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := gws.Apps.List(context.Background(), "DEV")
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, tt.want, Message(err))
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestEnvelope_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	gws := NewGateways(NewClient(config.APIConfig{BaseURL: srv.URL}, nil))

	_, err := gws.Session.Environments(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
	assert.False(t, IsNotFound(err))
}

func TestGateways_Paths(t *testing.T) {
	gws, seen := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/envs":
			writeJSON(w, http.StatusOK, map[string][]string{"envs": {"DEV", "PROD"}})
		case "/api/v1/config":
			writeJSON(w, http.StatusOK, PortalConfig{ConfigComplete: true, Workspace: "ws"})
		default:
			writeJSON(w, http.StatusOK, []interface{}{})
		}
	})
	ctx := context.Background()

	envs, err := gws.Session.Environments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"DEV", "PROD"}, envs)

	cfg, err := gws.Session.Config(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.ConfigComplete)

	_, _ = gws.Apps.List(ctx, "DEV")
	_, _ = gws.Clusters.List(ctx, "DEV")
	_, _ = gws.Apps.L4Ingress(ctx, "DEV", "a/b")
	_, _ = gws.Apps.EgressIPs(ctx, "DEV", "a/b")
	_, _ = gws.Namespaces.List(ctx, "DEV", "a/b")

	paths := []string{}
	for _, r := range (*seen)[2:] {
		paths = append(paths, r.Method+" "+r.Path+"?"+r.RawQuery)
	}
	assert.Equal(t, []string{
		"GET /api/v1/apps?env=DEV",
		"GET /api/v1/clusters?env=DEV",
		"GET /api/v1/apps/a%2Fb/l4_ingress?env=DEV",
		"GET /api/v1/apps/a%2Fb/egress_ips?env=DEV",
		"GET /api/v1/apps/a%2Fb/namespaces?env=DEV",
	}, paths)
}

func TestRoleBindings_ReplaceEchoesSubmittedWhenOmitted(t *testing.T) {
	gws, seen := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	ref := NamespaceRef{Env: "DEV", App: "app1", Name: "ns1"}

	got, err := gws.RoleBindings.Replace(context.Background(), ref, nil)
	require.NoError(t, err)
	assert.Equal(t, []Binding{}, got)
	assert.JSONEq(t, `{"bindings":[]}`, (*seen)[0].Body)
	assert.Equal(t, "/api/v1/apps/app1/namespaces/ns1/rolebinding_requests", (*seen)[0].Path)
}

func TestResources_UpdateQuotaDecodesNestedResources(t *testing.T) {
	gws, seen := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"resources": map[string]interface{}{"requests": map[string]string{"cpu": "2"}},
		})
	})
	ref := NamespaceRef{Env: "DEV", App: "app1", Name: "ns1"}

	patch, err := gws.Resources.UpdateQuota(context.Background(), ref, QuotaUpdate{Requests: ResourceList{"cpu": "2"}})
	require.NoError(t, err)
	assert.Equal(t, ResourceList{"cpu": "2"}, patch.Requests)
	assert.Nil(t, patch.QuotaLimits)
	assert.Nil(t, patch.Limits)
	assert.JSONEq(t, `{"requests":{"cpu":"2"}}`, (*seen)[0].Body)
	assert.Equal(t, "/api/v1/apps/app1/namespaces/ns1/resources/quota", (*seen)[0].Path)
}

func TestNamespace_CloneIsDeep(t *testing.T) {
	orig := Namespace{
		Name:                "ns1",
		Clusters:            []string{"c1"},
		Resources:           Resources{Requests: ResourceList{"cpu": "1"}},
		RoleBindings:        []Binding{{Subject: "g", Kind: "Group", Role: "admin"}},
		EgressFirewallRules: []EgressRule{{EgressType: EgressTypeDNSName, To: "x.com", Ports: []RulePort{{Protocol: "TCP", Port: 443}}}},
	}
	c := orig.Clone()
	c.Clusters[0] = "changed"
	c.Resources.Requests["cpu"] = "9"
	c.RoleBindings[0].Role = "view"
	c.EgressFirewallRules[0].Ports[0].Port = 80

	assert.Equal(t, "c1", orig.Clusters[0])
	assert.Equal(t, "1", orig.Resources.Requests["cpu"])
	assert.Equal(t, "admin", orig.RoleBindings[0].Role)
	assert.Equal(t, 443, orig.EgressFirewallRules[0].Ports[0].Port)
}
