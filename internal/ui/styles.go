package ui

import "github.com/charmbracelet/lipgloss"

// theme is the color palette for the browser.
type theme struct {
	Primary  lipgloss.Color
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color
	BgCursor lipgloss.Color
	Success  lipgloss.Color
	Error    lipgloss.Color
}

var palette = theme{
	Primary:  lipgloss.Color("#a78bfa"),
	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),
	BgCursor: lipgloss.Color("#303030"),
	Success:  lipgloss.Color("#42b883"),
	Error:    lipgloss.Color("#ff5555"),
}

var (
	styleBase    = lipgloss.NewStyle().Foreground(palette.FgBase)
	styleMuted   = lipgloss.NewStyle().Foreground(palette.FgMuted)
	styleSubtle  = lipgloss.NewStyle().Foreground(palette.FgSubtle)
	styleTitle   = lipgloss.NewStyle().Foreground(palette.FgBase).Bold(true)
	stylePlaying = lipgloss.NewStyle().Foreground(palette.Primary).Bold(true)
	styleCursor  = lipgloss.NewStyle().Background(palette.BgCursor).Foreground(palette.FgBase)
	styleError   = lipgloss.NewStyle().Foreground(palette.Error)
	styleAccent  = lipgloss.NewStyle().Foreground(palette.Primary)
	stylePopup   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 1)
)
