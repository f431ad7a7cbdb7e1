package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	neonCyan    = lipgloss.Color("#00FFFF")
	neonMagenta = lipgloss.Color("#FF00FF")
	neonGreen   = lipgloss.Color("#39FF14")
	neonYellow  = lipgloss.Color("#FFFF00")
	neonOrange  = lipgloss.Color("#FF6700")
	dimWhite    = lipgloss.Color("#B0B0B0")
	red         = lipgloss.Color("#FF0000")
)

// styles are bound to a renderer so colors follow the output's capabilities
type styles struct {
	title      lipgloss.Style
	subtitle   lipgloss.Style
	panel      lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	success    lipgloss.Style
	warning    lipgloss.Style
	error      lipgloss.Style
	dim        lipgloss.Style
	barPosts   lipgloss.Style
	barReels   lipgloss.Style
	barLabel   lipgloss.Style
	sectionGap string
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Foreground(neonCyan).
			Bold(true),
		subtitle: r.NewStyle().
			Foreground(dimWhite).
			Italic(true),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(neonMagenta).
			Padding(0, 2),
		label: r.NewStyle().
			Foreground(neonCyan).
			Bold(true).
			Width(16),
		value: r.NewStyle().
			Foreground(neonYellow),
		success: r.NewStyle().
			Foreground(neonGreen).
			Bold(true),
		warning: r.NewStyle().
			Foreground(neonOrange).
			Bold(true),
		error: r.NewStyle().
			Foreground(red).
			Bold(true),
		dim: r.NewStyle().
			Foreground(dimWhite).
			Faint(true),
		barPosts: r.NewStyle().
			Foreground(neonGreen),
		barReels: r.NewStyle().
			Foreground(neonMagenta),
		barLabel: r.NewStyle().
			Width(7),
		sectionGap: "\n",
	}
}
