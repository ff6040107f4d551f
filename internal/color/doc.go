// Package color holds the console's lipgloss styles.
//
// Colors are adaptive: Initialize picks the dark or light variant for the
// whole process, and ResolveDarkMode turns the console.colorMode setting
// (auto, dark, light) into that choice. In auto mode the PORTALCTL_THEME
// environment variable wins over terminal background detection.
package color
