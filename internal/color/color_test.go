package color

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		isDarkMode bool
		expected   bool
	}{
		{"set dark mode", true, true},
		{"set light mode", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.isDarkMode)
			assert.Equal(t, tt.expected, lipgloss.HasDarkBackground())
		})
	}
}

func TestResolveDarkMode(t *testing.T) {
	t.Setenv("PORTALCTL_THEME", "")
	assert.True(t, ResolveDarkMode("dark"))
	assert.False(t, ResolveDarkMode(" Light "))

	t.Setenv("PORTALCTL_THEME", "light")
	assert.False(t, ResolveDarkMode("auto"))
	t.Setenv("PORTALCTL_THEME", "dark")
	assert.True(t, ResolveDarkMode(""))
	assert.False(t, ResolveDarkMode("light"), "explicit mode wins over the environment")
}
