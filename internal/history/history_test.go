package history

import (
	"context"
	"testing"

	"portalctl/internal/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_PushReplaceLocation(t *testing.T) {
	stack := NewMemoryStack("/home", 0)
	a := New(stack)

	a.Push(route.Route{Env: "DEV", View: route.ViewNamespaces, AppName: "app1"})
	assert.Equal(t, "/apps/app1/namespaces?env=DEV", a.Location())

	a.Replace(route.Apps("DEV"))
	assert.Equal(t, "/apps?env=DEV", a.Location())
	assert.Equal(t, 2, stack.Len())

	e, _ := stack.Current()
	assert.True(t, e.HasState)
	assert.Equal(t, route.Apps("DEV"), e.State)

	a.PushURL("/clusters?env=DEV")
	e, _ = stack.Current()
	assert.False(t, e.HasState)
}

func TestAdapter_PopDecodesCurrentURL(t *testing.T) {
	a := New(NewMemoryStack("/apps/app1/namespaces?env=DEV", 0))
	a.Push(route.Route{Env: "DEV", View: route.ViewNamespaceDetails, AppName: "app1", Namespace: "team-a"})

	var events []PopEvent
	unregister := a.OnPop(func(_ context.Context, ev PopEvent) { events = append(events, ev) })

	require.True(t, a.Back(context.Background()))
	require.Len(t, events, 1)
	assert.Equal(t, "/apps/app1/namespaces", events[0].Path)
	assert.Equal(t, route.Route{Env: "DEV", View: route.ViewNamespaces, AppName: "app1"}, events[0].Route)

	assert.False(t, a.Back(context.Background()), "initial entry is the start of history")

	require.True(t, a.Forward(context.Background()))
	assert.Equal(t, route.ViewNamespaceDetails, events[1].Route.View)
	assert.Equal(t, "team-a", events[1].Route.Namespace)

	unregister()
	a.Back(context.Background())
	assert.Len(t, events, 2)
}

func TestMemoryStack_PushTruncatesForwardAndHonoursLimit(t *testing.T) {
	s := NewMemoryStack("/a", 3)
	s.Push(Entry{URL: "/b"})
	s.Push(Entry{URL: "/c"})
	s.Back()
	s.Push(Entry{URL: "/d"})

	_, ok := s.Forward()
	assert.False(t, ok, "forward entries are dropped by a push")

	s.Push(Entry{URL: "/e"})
	assert.Equal(t, 3, s.Len())
	e, _ := s.Current()
	assert.Equal(t, "/e", e.URL)

	e, _ = s.Back()
	assert.Equal(t, "/d", e.URL)
	e, _ = s.Back()
	assert.Equal(t, "/b", e.URL)
	_, ok = s.Back()
	assert.False(t, ok)
}
