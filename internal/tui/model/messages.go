package model

import (
	"portalctl/internal/api"
	"portalctl/internal/orchestrator"
	"portalctl/internal/router"
	"portalctl/pkg/logging"
)

// BootstrapDoneMsg is sent once the router finished its initial load.
type BootstrapDoneMsg struct {
	Err error
}

// NavDoneMsg is sent when a router operation started from a key press returns.
type NavDoneMsg struct {
	Op  string
	Err error
}

// StateChangedMsg carries a router snapshot published while an operation is in flight.
type StateChangedMsg struct {
	State router.State
}

// NewLogEntryMsg carries one entry from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// ClipboardResultMsg reports the outcome of copying the current location.
type ClipboardResultMsg struct {
	URL string
	Err error
}

// EditorFinishedMsg is sent when the editor opened on a namespace exits.
// Base is the request the file was written from.
type EditorFinishedMsg struct {
	Ref  api.NamespaceRef
	Base orchestrator.UpdateRequest
	Path string
	Err  error
}

// UpdateDoneMsg reports the outcome of a namespace update.
type UpdateDoneMsg struct {
	Ref api.NamespaceRef
	Err error
}

type ClearStatusBarMsg struct{}

// ChannelReaderFailedMsg is sent when the TUI channel was closed.
type ChannelReaderFailedMsg struct{}
