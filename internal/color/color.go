package color

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Initialize sets the background mode used to resolve adaptive colors.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// ResolveDarkMode maps a console color mode (auto, dark, light) to a dark background flag.
// PORTALCTL_THEME overrides "auto".
func ResolveDarkMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "dark":
		return true
	case "light":
		return false
	}
	switch strings.ToLower(os.Getenv("PORTALCTL_THEME")) {
	case "dark":
		return true
	case "light":
		return false
	}
	return lipgloss.HasDarkBackground()
}

var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}
	ColorText      = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#404040"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#EEF2FF", Dark: "#312E81"}
	ColorSurface   = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#262626"}
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorHighlight).
			Padding(0, 1)

	DisabledTabStyle = TabStyle.
				Strikethrough(true)

	LocationStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorMuted)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorHighlight)

	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	ErrorBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorError).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(ColorError).
				PaddingLeft(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface).
			Padding(0, 1)

	StatusMsgInfoStyle    = StatusStyle.Foreground(ColorInfo)
	StatusMsgSuccessStyle = StatusStyle.Foreground(ColorSuccess)
	StatusMsgErrorStyle   = StatusStyle.Foreground(ColorError)
	StatusMsgWarningStyle = StatusStyle.Foreground(ColorWarning)

	LogOverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
