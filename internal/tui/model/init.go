package model

import (
	"context"
	"os"
	"strings"

	"portalctl/internal/color"
	"portalctl/internal/config"
	"portalctl/internal/kube"
	"portalctl/internal/router"
	"portalctl/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultKeyMap returns a KeyMap with the default bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Esc:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "apps")),
		TabHome:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		TabSettings: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "settings")),
		TabApps:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "provisioning")),
		TabPRs:      key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "prs")),
		TabClusters: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "clusters")),
		NextEnv:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "next env")),
		Ingress:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "l4 ingress")),
		EgressIPs:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "egress ips")),
		Back:        key.NewBinding(key.WithKeys("left", "b"), key.WithHelp("←/b", "back")),
		Forward:     key.NewBinding(key.WithKeys("right", "f"), key.WithHelp("→/f", "forward")),
		Location:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to url")),
		CopyURL:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit namespace")),
		Dismiss:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "dismiss error")),
		ToggleLog:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log")),
		Help:        key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back, k.Location, k.NextEnv, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Esc, k.Ingress, k.EgressIPs, k.Edit},
		{k.TabHome, k.TabSettings, k.TabApps, k.TabPRs, k.TabClusters, k.NextEnv},
		{k.Back, k.Forward, k.Location, k.CopyURL, k.Reload},
		{k.Dismiss, k.ToggleLog, k.Help, k.Quit},
	}
}

// InitialModel constructs the console model. kubeContexts may be nil.
func InitialModel(ctx context.Context, nav Navigator, cfg config.ConsoleConfig, logChannel <-chan logging.LogEntry, kubeContexts *kube.ContextIndex) *Model {
	ti := textinput.New()
	ti.Placeholder = "/apps/<app>/namespaces?env=<env>"
	ti.CharLimit = 512
	ti.Width = 60
	ti.Prompt = "go to: "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = color.HeaderStyle

	return &Model{
		CurrentAppMode: ModeInitializing,
		ColorMode:      cfg.ColorMode,
		Ctx:            ctx,
		Nav:            nav,
		Editor:         editorCommand(cfg.Editor),
		Location:       nav.Location(),
		KubeContexts:   kubeContexts,
		LogViewport:    viewport.New(80, 20),
		Spinner:        s,
		LocationInput:  ti,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		TUIChannel:     make(chan tea.Msg, 64),
		LogChannel:     logChannel,
	}
}

// editorCommand returns configured, else $VISUAL, else $EDITOR, else vi.
func editorCommand(configured string) string {
	if v := strings.TrimSpace(configured); v != "" {
		return v
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return "vi"
}

func channelReaderCmd(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return ChannelReaderFailedMsg{}
		}
		return msg
	}
}

// ListenForLogs waits for the next log entry.
func ListenForLogs(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// ListenForState waits for the next message published on the TUI channel.
func (m *Model) ListenForState() tea.Cmd {
	return channelReaderCmd(m.TUIChannel)
}

// PublishState forwards a router snapshot to the program without blocking the router.
func (m *Model) PublishState(st router.State) {
	select {
	case m.TUIChannel <- StateChangedMsg{State: st}:
	default:
	}
}

// Init starts the spinner, the channel readers and the router bootstrap.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		m.ListenForState(),
		ListenForLogs(m.LogChannel),
		BootstrapCmd(m.Ctx, m.Nav),
	)
}
