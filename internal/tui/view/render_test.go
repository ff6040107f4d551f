package view

import (
	"errors"
	"strings"
	"testing"

	"portalctl/internal/api"
	"portalctl/internal/route"
	"portalctl/internal/tui/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"
)

func newModel() *model.Model {
	return &model.Model{
		CurrentAppMode: model.ModeMain,
		Width:          160,
		Keys:           model.DefaultKeyMap(),
		Help:           help.New(),
		Spinner:        spinner.New(),
		LocationInput:  textinput.New(),
	}
}

func TestCell(t *testing.T) {
	assert.Equal(t, "ab   ", cell("ab", 5))
	assert.Equal(t, "abcd…", cell("abcdefgh", 5))
	assert.Equal(t, "", cell("abc", 0))
}

func TestFitColumns(t *testing.T) {
	cols := fitColumns([]column{{"A", 10}, {"B", 30}}, 25)
	assert.Equal(t, 10, cols[0].width)
	assert.Equal(t, 14, cols[1].width)

	unchanged := fitColumns([]column{{"A", 5}}, 80)
	assert.Equal(t, 5, unchanged[0].width)
}

func TestRender_AppsView(t *testing.T) {
	m := newModel()
	m.Location = "/apps?env=DEV"
	m.State.Tab = route.TabRequestProvisioning
	m.State.ConfigComplete = true
	m.State.ActiveEnv = "DEV"
	m.State.Route = route.Apps("DEV")
	m.State.Apps = []api.App{{Name: "payments", TotalNamespaces: 3, Clusters: []string{"c1"}}}

	out := Render(m)
	assert.Contains(t, out, "payments")
	assert.Contains(t, out, "/apps?env=DEV")
	assert.Contains(t, out, "env DEV")
}

func TestRender_ErrorBanner(t *testing.T) {
	m := newModel()
	m.State.Tab = route.TabHome
	m.State.Err = errors.New("backend unreachable")

	out := Render(m)
	assert.Contains(t, out, "backend unreachable")
	assert.Contains(t, out, "Configuration incomplete")
}

func TestRender_NamespaceDetails(t *testing.T) {
	m := newModel()
	m.State.Tab = route.TabRequestProvisioning
	m.State.Route = route.Route{Env: "DEV", View: route.ViewNamespaceDetails, AppName: "payments", Namespace: "pay-api"}
	m.State.Detail = &api.Namespace{
		Name:         "pay-api",
		NeedArgo:     true,
		GitRepoURL:   "https://git.example.com/pay.git",
		Resources:    api.Resources{Requests: api.ResourceList{"memory": "1Gi", "cpu": "2"}},
		RoleBindings: []api.Binding{{Subject: "alice", Kind: "User", Role: "admin"}},
	}

	out := Render(m)
	assert.Contains(t, out, "pay-api")
	assert.Contains(t, out, "cpu=2 memory=1Gi")
	assert.Contains(t, out, "User alice -> admin")
	assert.Contains(t, out, "https://git.example.com/pay.git")
}

func TestRender_Quitting(t *testing.T) {
	m := newModel()
	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = "Bye."
	assert.True(t, strings.Contains(Render(m), "Bye."))
}

func TestBreadcrumb(t *testing.T) {
	r := route.Route{Env: "DEV", View: route.ViewNamespaceDetails, AppName: "a", Namespace: "n"}
	assert.Equal(t, "apps (DEV) › a › namespaces › n", breadcrumb(r))
	assert.Equal(t, "apps", breadcrumb(route.Route{View: route.ViewApps}))
}
