package controller

import (
	"fmt"
	"strings"
	"time"

	"portalctl/internal/api"
	"portalctl/internal/orchestrator"
	"portalctl/internal/tui/model"
	"portalctl/pkg/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const subsystem = "TUI"

// Update is the central message routing function of the console.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.CurrentAppMode == model.ModeLocationInput {
			return handleLocationInput(m, msg)
		}
		return handleKeyMsgGlobal(m, msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case model.BootstrapDoneMsg:
		if m.CurrentAppMode == model.ModeInitializing {
			m.CurrentAppMode = model.ModeMain
		}
		syncState(m)
		if msg.Err != nil {
			return m, m.SetStatusMessage("Bootstrap: "+api.Message(msg.Err), model.StatusBarError, 5*time.Second)
		}
		return m, nil

	case model.NavDoneMsg:
		syncState(m)
		if msg.Err != nil {
			return m, m.SetStatusMessage(fmt.Sprintf("%s failed: %s", msg.Op, api.Message(msg.Err)), model.StatusBarError, 5*time.Second)
		}
		return m, nil

	case model.StateChangedMsg:
		m.State = msg.State
		m.Location = m.Nav.Location()
		m.ClampCursor()
		return m, m.ListenForState()

	case model.ChannelReaderFailedMsg:
		return m, nil

	case model.NewLogEntryMsg:
		model.AddRawLineToActivityLog(m, msg.Entry.String())
		if m.CurrentAppMode == model.ModeLogOverlay {
			m.LogViewport.SetContent(strings.Join(m.ActivityLog, "\n"))
			m.LogViewport.GotoBottom()
			m.ActivityLogDirty = false
		}
		return m, model.ListenForLogs(m.LogChannel)

	case model.ClipboardResultMsg:
		if msg.Err != nil {
			logging.Error(subsystem, msg.Err, "Copying %s to the clipboard failed", msg.URL)
			return m, m.SetStatusMessage("Copy failed", model.StatusBarError, 3*time.Second)
		}
		return m, m.SetStatusMessage("Copied "+msg.URL, model.StatusBarSuccess, 3*time.Second)

	case model.EditorFinishedMsg:
		return m, finishEdit(m, msg)

	case model.UpdateDoneMsg:
		syncState(m)
		if msg.Err != nil {
			return m, m.SetStatusMessage(fmt.Sprintf("Update of %s failed: %s", msg.Ref.Name, api.Message(msg.Err)), model.StatusBarError, 5*time.Second)
		}
		return m, m.SetStatusMessage("Updated "+msg.Ref.Name, model.StatusBarSuccess, 3*time.Second)

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		return m, nil
	}
	return m, nil
}

// finishEdit turns a saved edit file into an update of the parts that changed.
func finishEdit(m *model.Model, msg model.EditorFinishedMsg) tea.Cmd {
	if msg.Path == "" {
		logging.Error(subsystem, msg.Err, "Editing namespace %s failed", msg.Ref.Name)
		return m.SetStatusMessage("Edit failed: "+api.Message(msg.Err), model.StatusBarError, 5*time.Second)
	}
	edited, err := model.ReadEdit(msg.Path)
	if msg.Err != nil {
		err = msg.Err
	}
	if err != nil {
		logging.Error(subsystem, err, "Editing namespace %s failed", msg.Ref.Name)
		return m.SetStatusMessage("Edit failed: "+api.Message(err), model.StatusBarError, 5*time.Second)
	}

	req := orchestrator.Changed(msg.Base, edited)
	if len(orchestrator.Plan(req)) == 0 {
		return m.SetStatusMessage("No changes", model.StatusBarInfo, 3*time.Second)
	}
	prev, ok := m.Nav.HeldNamespace(msg.Ref)
	if !ok {
		return m.SetStatusMessage(fmt.Sprintf("Namespace %s is no longer loaded", msg.Ref.Name), model.StatusBarWarning, 3*time.Second)
	}
	logging.Info(subsystem, "Updating namespace %s: %s", msg.Ref.Name, orchestrator.Describe(req))
	return model.UpdateCmd(m.Ctx, m.Updater, msg.Ref, prev, req)
}

// syncState pulls a fresh router snapshot into the model.
func syncState(m *model.Model) {
	m.State = m.Nav.Snapshot()
	m.Location = m.Nav.Location()
	m.ClampCursor()
}
