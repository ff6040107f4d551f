package controller

import (
	"context"

	"portalctl/internal/config"
	"portalctl/internal/kube"
	"portalctl/internal/router"
	"portalctl/internal/tui/model"
	"portalctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the console program over r. Router snapshots published
// while an operation runs are forwarded to the update loop. A nil upd keeps
// the console read-only.
func NewProgram(ctx context.Context, r *router.Router, upd model.Updater, cfg config.ConsoleConfig, logChannel <-chan logging.LogEntry) *tea.Program {
	idx, err := kube.LoadContextIndex()
	if err != nil {
		logging.Debug(subsystem, "No local kubeconfig, clusters are shown without contexts: %v", err)
		idx = nil
	}

	m := model.InitialModel(ctx, r, cfg, logChannel, idx)
	m.Updater = upd
	r.OnChange(m.PublishState)

	return tea.NewProgram(NewAppModel(m), tea.WithAltScreen(), tea.WithContext(ctx))
}
