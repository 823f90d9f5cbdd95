package debug

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColorScheme maps log levels to terminal styles.
type ColorScheme struct {
	name   string
	styles map[LogLevel]lipgloss.Style
}

// render applies the style for the given level to a full log line.
func (s *ColorScheme) render(level LogLevel, line string) string {
	style, ok := s.styles[level]
	if !ok {
		return line
	}
	return style.Render(line)
}

// Schemes tuned for terminals with dark and light backgrounds.
var (
	darkScheme = &ColorScheme{
		name: "dark",
		styles: map[LogLevel]lipgloss.Style{
			LogLevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			LogLevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			LogLevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			LogLevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
	lightScheme = &ColorScheme{
		name: "light",
		styles: map[LogLevel]lipgloss.Style{
			LogLevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
			LogLevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
			LogLevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			LogLevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
)

// schemeByName resolves a scheme name given on the command line.
func schemeByName(name string) (*ColorScheme, error) {
	switch name {
	case "":
		return nil, nil
	case "dark":
		return darkScheme, nil
	case "light":
		return lightScheme, nil
	default:
		return nil, fmt.Errorf("unknown color scheme '%s'", name)
	}
}
