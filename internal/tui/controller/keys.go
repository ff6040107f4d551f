package controller

import (
	"strings"
	"time"

	"portalctl/internal/api"
	"portalctl/internal/route"
	"portalctl/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsgGlobal processes key presses outside the location bar.
func handleKeyMsgGlobal(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	k := m.Keys
	ctx, nav := m.Ctx, m.Nav

	if key.Matches(msg, k.Quit) {
		m.CurrentAppMode = model.ModeQuitting
		m.QuittingMessage = "Bye."
		return m, tea.Quit
	}

	switch m.CurrentAppMode {
	case model.ModeHelpOverlay:
		if key.Matches(msg, k.Help) || msg.String() == "esc" {
			m.CurrentAppMode = m.LastAppMode
		}
		return m, nil
	case model.ModeLogOverlay:
		if key.Matches(msg, k.ToggleLog) || msg.String() == "esc" {
			m.CurrentAppMode = m.LastAppMode
			return m, nil
		}
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(msg)
		return m, cmd
	case model.ModeInitializing:
		return m, nil
	}

	st := m.State
	switch {
	case key.Matches(msg, k.Up):
		m.Cursor--
		m.ClampCursor()
	case key.Matches(msg, k.Down):
		m.Cursor++
		m.ClampCursor()

	case key.Matches(msg, k.TabHome):
		return m, changeTab(m, route.TabHome)
	case key.Matches(msg, k.TabSettings):
		return m, changeTab(m, route.TabSettings)
	case key.Matches(msg, k.TabApps):
		return m, changeTab(m, route.TabRequestProvisioning)
	case key.Matches(msg, k.TabPRs):
		return m, changeTab(m, route.TabPRsAndApproval)
	case key.Matches(msg, k.TabClusters):
		return m, changeTab(m, route.TabClusters)

	case key.Matches(msg, k.NextEnv):
		env := m.NextEnv()
		if env == "" {
			return m, m.SetStatusMessage("No environments configured", model.StatusBarWarning, 3*time.Second)
		}
		m.Cursor = 0
		return m, model.NavCmd("switch to "+env, func() error { return nav.ChangeEnv(ctx, env) })

	case key.Matches(msg, k.Enter):
		return m, openSelected(m)

	case key.Matches(msg, k.Ingress), key.Matches(msg, k.EgressIPs):
		app := m.SelectedApp()
		if st.Tab != route.TabRequestProvisioning || app == "" {
			return m, nil
		}
		m.Cursor = 0
		if key.Matches(msg, k.Ingress) {
			return m, model.NavCmd("l4 ingress", func() error { return nav.OpenL4Ingress(ctx, app) })
		}
		return m, model.NavCmd("egress ips", func() error { return nav.OpenEgressIPs(ctx, app) })

	case key.Matches(msg, k.Esc):
		if st.Tab == route.TabRequestProvisioning && st.Route.View != route.ViewApps {
			m.Cursor = 0
			return m, model.NavCmd("apps", func() error { return nav.BackToApps(ctx) })
		}

	case key.Matches(msg, k.Edit):
		return m, editDetail(m)

	case key.Matches(msg, k.Back):
		m.Cursor = 0
		return m, model.HistoryCmd("back", func() bool { return nav.Back(ctx) })
	case key.Matches(msg, k.Forward):
		m.Cursor = 0
		return m, model.HistoryCmd("forward", func() bool { return nav.Forward(ctx) })

	case key.Matches(msg, k.Location):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeLocationInput
		m.LocationInput.SetValue(m.Location)
		m.LocationInput.CursorEnd()
		return m, m.LocationInput.Focus()

	case key.Matches(msg, k.CopyURL):
		return m, model.CopyToClipboardCmd(m.Location)

	case key.Matches(msg, k.Reload):
		return m, model.NavCmd("reload", func() error { return nav.Reload(ctx) })

	case key.Matches(msg, k.Dismiss):
		nav.AckError()
		syncState(m)

	case key.Matches(msg, k.ToggleLog):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeLogOverlay
		m.LogViewport.SetContent(strings.Join(m.ActivityLog, "\n"))
		m.LogViewport.GotoBottom()
		m.ActivityLogDirty = false

	case key.Matches(msg, k.Help):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeHelpOverlay
	}
	return m, nil
}

func changeTab(m *model.Model, tab route.TopTab) tea.Cmd {
	ctx, nav := m.Ctx, m.Nav
	m.Cursor = 0
	return model.NavCmd(strings.ToLower(tab.String()), func() error { return nav.ChangeTab(ctx, tab, "") })
}

// openSelected descends into the row under the cursor.
func openSelected(m *model.Model) tea.Cmd {
	ctx, nav, st := m.Ctx, m.Nav, m.State
	if st.Tab != route.TabRequestProvisioning {
		return nil
	}
	switch st.Route.View {
	case route.ViewApps:
		app := m.SelectedApp()
		if app == "" {
			return nil
		}
		m.Cursor = 0
		return model.NavCmd("namespaces", func() error { return nav.OpenNamespaces(ctx, app) })
	case route.ViewNamespaces:
		ns := m.SelectedNamespace()
		if ns == "" {
			return nil
		}
		app := st.Route.AppName
		return model.NavCmd("namespace details", func() error { return nav.OpenNamespaceDetails(ctx, app, ns) })
	}
	return nil
}

// editDetail opens the namespace on the details view in the editor.
func editDetail(m *model.Model) tea.Cmd {
	st := m.State
	if st.Tab != route.TabRequestProvisioning || st.Route.View != route.ViewNamespaceDetails || st.Detail == nil {
		return nil
	}
	if m.Updater == nil {
		return m.SetStatusMessage("Editing is not available", model.StatusBarWarning, 3*time.Second)
	}
	ref := api.NamespaceRef{Env: st.ActiveEnv, App: st.Route.AppName, Name: st.Detail.Name}
	return model.EditNamespaceCmd(m.Editor, ref, st.Detail.Clone())
}

// handleLocationInput edits the location bar; enter navigates, esc cancels.
func handleLocationInput(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.LocationInput.Blur()
		m.CurrentAppMode = m.LastAppMode
		return m, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(m.LocationInput.Value())
		m.LocationInput.Blur()
		m.LocationInput.Reset()
		m.CurrentAppMode = m.LastAppMode
		if raw == "" {
			return m, nil
		}
		ctx, nav := m.Ctx, m.Nav
		m.Cursor = 0
		return m, model.NavCmd("go to "+raw, func() error { return nav.Navigate(ctx, raw) })
	}

	var cmd tea.Cmd
	m.LocationInput, cmd = m.LocationInput.Update(msg)
	return m, cmd
}
