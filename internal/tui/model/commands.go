package model

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"portalctl/internal/api"
	"portalctl/internal/orchestrator"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"
)

// BootstrapCmd runs the router bootstrap off the update loop.
func BootstrapCmd(ctx context.Context, nav Navigator) tea.Cmd {
	return func() tea.Msg {
		return BootstrapDoneMsg{Err: nav.Bootstrap(ctx)}
	}
}

// NavCmd runs a router operation off the update loop and reports its result.
func NavCmd(op string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return NavDoneMsg{Op: op, Err: fn()}
	}
}

// HistoryCmd moves through history. Reaching either end is not an error.
func HistoryCmd(op string, fn func() bool) tea.Cmd {
	return func() tea.Msg {
		fn()
		return NavDoneMsg{Op: op}
	}
}

// clipboardWriteAll is swapped in tests.
var clipboardWriteAll = clipboard.WriteAll

// CopyToClipboardCmd copies url to the system clipboard.
func CopyToClipboardCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardResultMsg{URL: url, Err: clipboardWriteAll(url)}
	}
}

// EditNamespaceCmd writes the editable form of ns to a temporary YAML file and
// suspends the program while editor runs on it.
func EditNamespaceCmd(editor string, ref api.NamespaceRef, ns api.Namespace) tea.Cmd {
	base := orchestrator.RequestFor(ns)
	fail := func(err error) tea.Cmd {
		return func() tea.Msg {
			return EditorFinishedMsg{Ref: ref, Base: base, Err: err}
		}
	}

	args := strings.Fields(editor)
	if len(args) == 0 {
		return fail(fmt.Errorf("no editor configured"))
	}

	data, err := yaml.Marshal(base)
	if err != nil {
		return fail(fmt.Errorf("failed to encode namespace %s: %w", ref.Name, err))
	}
	f, err := os.CreateTemp("", "portalctl-"+ref.Name+"-*.yaml")
	if err != nil {
		return fail(fmt.Errorf("failed to create edit file: %w", err))
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fail(fmt.Errorf("failed to write edit file: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fail(fmt.Errorf("failed to write edit file: %w", err))
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return EditorFinishedMsg{Ref: ref, Base: base, Path: path, Err: err}
	})
}

// ReadEdit loads the request saved in path and removes the file.
func ReadEdit(path string) (orchestrator.UpdateRequest, error) {
	var req orchestrator.UpdateRequest
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read edit file: %w", err)
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("invalid YAML in edit file: %w", err)
	}
	return req, nil
}

// UpdateCmd applies req to the namespace at ref off the update loop.
func UpdateCmd(ctx context.Context, upd Updater, ref api.NamespaceRef, prev api.Namespace, req orchestrator.UpdateRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := upd.Apply(ctx, ref, prev, req)
		return UpdateDoneMsg{Ref: ref, Err: err}
	}
}
