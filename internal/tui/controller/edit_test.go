package controller

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"portalctl/internal/api"
	"portalctl/internal/orchestrator"
	"portalctl/internal/route"
	"portalctl/internal/router"
	"portalctl/internal/tui/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeUpdater struct {
	ref  api.NamespaceRef
	prev api.Namespace
	req  *orchestrator.UpdateRequest
	err  error
}

func (f *fakeUpdater) Apply(_ context.Context, ref api.NamespaceRef, prev api.Namespace, req orchestrator.UpdateRequest) (api.Namespace, error) {
	f.ref, f.prev, f.req = ref, prev, &req
	return prev, f.err
}

func detailState() router.State {
	st := appsState()
	st.Route = route.Route{Env: "DEV", View: route.ViewNamespaceDetails, AppName: "app1", Namespace: "pay-api"}
	st.Detail = &api.Namespace{Name: "pay-api", Clusters: []string{"c1"}, EgressNameID: "eg-1"}
	return st
}

// writeEdit saves req the way the editor would leave it.
func writeEdit(t *testing.T, req orchestrator.UpdateRequest) string {
	t.Helper()
	data, err := yaml.Marshal(req)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "pay-api.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

var detailRef = api.NamespaceRef{Env: "DEV", App: "app1", Name: "pay-api"}

func TestEditKey_IgnoredOutsideDetails(t *testing.T) {
	nav := &fakeNav{state: appsState()}
	m := newTestModel(nav)
	m.State = nav.state
	m.Updater = &fakeUpdater{}

	_, cmd := Update(keyRunes("e"), m)
	assert.Nil(t, cmd)
	assert.Empty(t, nav.calls)
}

func TestEditKey_ReadOnlyConsole(t *testing.T) {
	nav := &fakeNav{state: detailState()}
	m := newTestModel(nav)
	m.State = nav.state

	m, cmd := Update(keyRunes("e"), m)
	assert.NotNil(t, cmd)
	assert.Equal(t, model.StatusBarWarning, m.StatusBarMessageType)
	assert.Equal(t, "Editing is not available", m.StatusBarMessage)
}

func TestEditorFinished_AppliesChangedParts(t *testing.T) {
	nav := &fakeNav{state: detailState()}
	upd := &fakeUpdater{}
	m := newTestModel(nav)
	m.State = nav.state
	m.Updater = upd

	base := orchestrator.RequestFor(*nav.state.Detail)
	edited := orchestrator.RequestFor(*nav.state.Detail)
	*edited.NamespaceInfo.Clusters = []string{"c1", "c2"}
	path := writeEdit(t, edited)

	m, cmd := Update(model.EditorFinishedMsg{Ref: detailRef, Base: base, Path: path}, m)
	m = run(t, m, cmd)

	require.NotNil(t, upd.req)
	assert.Equal(t, detailRef, upd.ref)
	assert.Equal(t, "pay-api", upd.prev.Name)
	assert.Equal(t, []string{orchestrator.StepBasic}, orchestrator.Plan(*upd.req))
	assert.Equal(t, []string{"c1", "c2"}, *upd.req.NamespaceInfo.Clusters)
	assert.Equal(t, model.StatusBarSuccess, m.StatusBarMessageType)
	assert.Equal(t, "Updated pay-api", m.StatusBarMessage)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "edit file is removed")
}

func TestEditorFinished_NoChanges(t *testing.T) {
	nav := &fakeNav{state: detailState()}
	upd := &fakeUpdater{}
	m := newTestModel(nav)
	m.Updater = upd

	base := orchestrator.RequestFor(*nav.state.Detail)
	path := writeEdit(t, base)

	m, _ = Update(model.EditorFinishedMsg{Ref: detailRef, Base: base, Path: path}, m)
	assert.Nil(t, upd.req)
	assert.Equal(t, "No changes", m.StatusBarMessage)
}

func TestEditorFinished_InvalidYAML(t *testing.T) {
	nav := &fakeNav{state: detailState()}
	upd := &fakeUpdater{}
	m := newTestModel(nav)
	m.Updater = upd

	path := filepath.Join(t.TempDir(), "pay-api.yaml")
	require.NoError(t, os.WriteFile(path, []byte("namespace_info: ["), 0o600))

	m, _ = Update(model.EditorFinishedMsg{Ref: detailRef, Path: path}, m)
	assert.Nil(t, upd.req)
	assert.Equal(t, model.StatusBarError, m.StatusBarMessageType)
	assert.Contains(t, m.StatusBarMessage, "Edit failed")
}

func TestEditorFinished_NamespaceNoLongerHeld(t *testing.T) {
	nav := &fakeNav{state: appsState()}
	upd := &fakeUpdater{}
	m := newTestModel(nav)
	m.Updater = upd

	ns := *detailState().Detail
	base := orchestrator.RequestFor(ns)
	edited := orchestrator.RequestFor(ns)
	*edited.NamespaceInfo.EgressNameID = "eg-2"

	m, _ = Update(model.EditorFinishedMsg{Ref: detailRef, Base: base, Path: writeEdit(t, edited)}, m)
	assert.Nil(t, upd.req)
	assert.Equal(t, model.StatusBarWarning, m.StatusBarMessageType)
}

func TestUpdateDone_ReportsFailure(t *testing.T) {
	nav := &fakeNav{state: detailState()}
	m := newTestModel(nav)

	err := &orchestrator.PartialUpdateError{Ref: detailRef, Applied: []string{orchestrator.StepBasic}, Failed: orchestrator.StepQuota, Err: errors.New("quota rejected")}
	m, _ = Update(model.UpdateDoneMsg{Ref: detailRef, Err: err}, m)
	assert.Equal(t, model.StatusBarError, m.StatusBarMessageType)
	assert.Contains(t, m.StatusBarMessage, "Update of pay-api failed")
}
