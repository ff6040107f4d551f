package orchestrator

import (
	"testing"

	"portalctl/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRequestFor_CoversEverySection(t *testing.T) {
	req := RequestFor(previous())
	assert.Equal(t, []string{
		StepBasic, StepEgress, StepQuota, StepLimits, StepRoleBindings, StepArgoCD, StepEgressFirewall,
	}, Plan(req))
	require.NoError(t, Validate(ref, req))
}

func TestChanged_UneditedYAMLHasNoChanges(t *testing.T) {
	base := RequestFor(previous())
	data, err := yaml.Marshal(base)
	require.NoError(t, err)

	var edited UpdateRequest
	require.NoError(t, yaml.Unmarshal(data, &edited))

	assert.Empty(t, Plan(Changed(base, edited)))
	assert.Equal(t, "no changes", Describe(Changed(base, edited)))
}

func TestChanged_KeepsEditedParts(t *testing.T) {
	base := RequestFor(previous())

	edited := RequestFor(previous())
	*edited.NamespaceInfo.Clusters = []string{"c1", "c2"}
	edited.Resources.Limits = api.ResourceList{"default.cpu": "1"}
	edited.EgressFirewall.Rules = &[]api.EgressRule{}
	edited.RoleBindings = nil

	got := Changed(base, edited)
	assert.Equal(t, []string{StepBasic, StepLimits, StepEgressFirewall}, Plan(got))
	assert.Equal(t, []string{"c1", "c2"}, *got.NamespaceInfo.Clusters)
	assert.Nil(t, got.NamespaceInfo.EgressNameID)
	assert.Nil(t, got.Resources.Requests)
	assert.Nil(t, got.RoleBindings, "a removed section is absent")
}

func TestChanged_ArgoSectionIsCompared(t *testing.T) {
	base := RequestFor(previous())

	edited := RequestFor(previous())
	edited.ArgoCD.NeedArgo = Ptr(false)

	got := Changed(base, edited)
	require.NotNil(t, got.ArgoCD)
	assert.False(t, *got.ArgoCD.NeedArgo)
	assert.Equal(t, []string{StepArgoCD}, Plan(got))
}
