package model

import (
	"context"
	"time"

	"portalctl/internal/api"
	"portalctl/internal/kube"
	"portalctl/internal/orchestrator"
	"portalctl/internal/route"
	"portalctl/internal/router"
	"portalctl/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppMode represents the current mode of the application
type AppMode int

const (
	ModeInitializing AppMode = iota
	ModeMain
	ModeLocationInput
	ModeHelpOverlay
	ModeLogOverlay
	ModeQuitting
)

func (m AppMode) String() string {
	switch m {
	case ModeInitializing:
		return "Initializing"
	case ModeMain:
		return "Main"
	case ModeLocationInput:
		return "LocationInput"
	case ModeHelpOverlay:
		return "HelpOverlay"
	case ModeLogOverlay:
		return "LogOverlay"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

const MaxActivityLogLines = 1000

// Navigator is the router surface the console drives.
type Navigator interface {
	Bootstrap(ctx context.Context) error
	Snapshot() router.State
	Location() string
	ChangeTab(ctx context.Context, tab route.TopTab, env string) error
	ChangeEnv(ctx context.Context, env string) error
	OpenNamespaces(ctx context.Context, app string) error
	OpenL4Ingress(ctx context.Context, app string) error
	OpenEgressIPs(ctx context.Context, app string) error
	OpenNamespaceDetails(ctx context.Context, app, namespace string) error
	BackToApps(ctx context.Context) error
	Back(ctx context.Context) bool
	Forward(ctx context.Context) bool
	Navigate(ctx context.Context, raw string) error
	Reload(ctx context.Context) error
	AckError()
	HeldNamespace(ref api.NamespaceRef) (api.Namespace, bool)
}

// Updater applies namespace updates and commits them back into the router.
type Updater interface {
	Apply(ctx context.Context, ref api.NamespaceRef, prev api.Namespace, req orchestrator.UpdateRequest) (api.Namespace, error)
}

// KeyMap defines all the key bindings for the application
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	Esc         key.Binding
	TabHome     key.Binding
	TabSettings key.Binding
	TabApps     key.Binding
	TabPRs      key.Binding
	TabClusters key.Binding
	NextEnv     key.Binding
	Ingress     key.Binding
	EgressIPs   key.Binding
	Back        key.Binding
	Forward     key.Binding
	Location    key.Binding
	CopyURL     key.Binding
	Reload      key.Binding
	Edit        key.Binding
	Dismiss     key.Binding
	ToggleLog   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// Model is the console state. Navigation state is owned by the router;
// State is the latest snapshot of it.
type Model struct {
	Width  int
	Height int

	CurrentAppMode  AppMode
	LastAppMode     AppMode
	QuittingMessage string
	ColorMode       string

	Ctx   context.Context
	Nav   Navigator
	State router.State
	// Updater is nil when the console is read-only.
	Updater Updater
	Editor  string
	// Location is the history location matching State.
	Location string
	Cursor   int

	KubeContexts *kube.ContextIndex

	ActivityLog      []string
	ActivityLogDirty bool
	LogViewport      viewport.Model
	Spinner          spinner.Model
	LocationInput    textinput.Model
	Keys             KeyMap
	Help             help.Model

	TUIChannel chan tea.Msg
	LogChannel <-chan logging.LogEntry

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}
}

// SetStatusMessage updates the status bar message and clears it after clearAfter.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// Rows returns the number of selectable rows in the current view.
func (m *Model) Rows() int {
	st := m.State
	switch st.Tab {
	case route.TabClusters:
		return len(st.Clusters)
	case route.TabRequestProvisioning:
		switch st.Route.View {
		case route.ViewApps:
			return len(st.Apps)
		case route.ViewNamespaces:
			return len(st.Namespaces)
		case route.ViewL4Ingress:
			return len(st.L4Ingress)
		case route.ViewEgressIPs:
			return len(st.EgressIPs)
		}
	}
	return 0
}

// ClampCursor keeps the cursor inside the current view's rows.
func (m *Model) ClampCursor() {
	n := m.Rows()
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// SelectedApp returns the app under the cursor in the apps view, or the route's app.
func (m *Model) SelectedApp() string {
	st := m.State
	if st.Route.View == route.ViewApps {
		if m.Cursor >= 0 && m.Cursor < len(st.Apps) {
			return st.Apps[m.Cursor].Name
		}
		return ""
	}
	return st.Route.AppName
}

// SelectedNamespace returns the namespace under the cursor in the namespaces view.
func (m *Model) SelectedNamespace() string {
	st := m.State
	if st.Route.View != route.ViewNamespaces || m.Cursor < 0 || m.Cursor >= len(st.Namespaces) {
		return ""
	}
	return st.Namespaces[m.Cursor].Name
}

// NextEnv returns the environment after the active one, wrapping around.
func (m *Model) NextEnv() string {
	keys := m.State.EnvKeys
	if len(keys) == 0 {
		return ""
	}
	for i, k := range keys {
		if k == m.State.ActiveEnv {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}
