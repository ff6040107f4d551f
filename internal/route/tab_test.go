package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTab(t *testing.T) {
	tests := []struct {
		path     string
		complete bool
		want     TopTab
	}{
		{"/home", true, TabHome},
		{"/home", false, TabHome},
		{"/settings", false, TabSettings},
		{"/settings/", true, TabSettings},
		{"/prs", true, TabPRsAndApproval},
		{"/prs", false, TabHome},
		{"/clusters", true, TabClusters},
		{"/clusters", false, TabHome},
		{"/apps/app1/namespaces", true, TabRequestProvisioning},
		{"/apps/app1/namespaces", false, TabHome},
		{"/", true, TabRequestProvisioning},
		{"", false, TabHome},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveTab(tt.path, tt.complete), "path %q complete=%v", tt.path, tt.complete)
	}
}

func TestTabPathsResolveBack(t *testing.T) {
	for _, tab := range AllTabs {
		assert.Equal(t, tab, ResolveTab(tab.Path(), true), "tab %s", tab)
	}
}

func TestRequiresConfig(t *testing.T) {
	assert.False(t, TabHome.RequiresConfig())
	assert.False(t, TabSettings.RequiresConfig())
	assert.True(t, TabRequestProvisioning.RequiresConfig())
	assert.True(t, TabPRsAndApproval.RequiresConfig())
	assert.True(t, TabClusters.RequiresConfig())
}

func TestPathWithEnvAndParseTab(t *testing.T) {
	assert.Equal(t, "/clusters?env=DEV", PathWithEnv("/clusters", "DEV"))
	assert.Equal(t, "/clusters", PathWithEnv("/clusters", ""))

	tab, ok := ParseTab("Clusters")
	assert.True(t, ok)
	assert.Equal(t, TabClusters, tab)
	_, ok = ParseTab("bogus")
	assert.False(t, ok)
}

func TestLiteralTab(t *testing.T) {
	tab, ok := LiteralTab("/clusters/")
	assert.True(t, ok)
	assert.Equal(t, TabClusters, tab)

	_, ok = LiteralTab("/apps/a/namespaces")
	assert.False(t, ok)
	_, ok = LiteralTab("/")
	assert.False(t, ok)
}
